package labels

import (
	"maps"
	"regexp"
	"strings"
)

// Label keys, namespaced under rlcluster.io.
const (
	KeyNamespace = "rlcluster.io/namespace"
	KeyKind      = "rlcluster.io/kind"
	KeyName      = "rlcluster.io/name"
	KeyManagedBy = "rlcluster.io/managed-by"

	KeyPlacement  = "rlcluster.io/placement"
	KeyAffinity   = "rlcluster.io/affinity"
	KeyAffinityOK = "rlcluster.io/affinity-satisfied"
	KeyDiscovery  = "rlcluster.io/discovery"
)

// Kind values.
const (
	KindJob     = "job"
	KindNetwork = "network"
)

// ManagedBy is the value of KeyManagedBy on every resource.
const ManagedBy = "rlcluster"

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the namespace and manager set.
func NewLabelBuilder(namespace string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyNamespace: Value(namespace),
			KeyManagedBy: ManagedBy,
		},
	}
}

// WithKind sets the resource kind.
func (lb *LabelBuilder) WithKind(kind string) *LabelBuilder {
	lb.labels[KeyKind] = kind
	return lb
}

// WithName records the platform-level resource name.
func (lb *LabelBuilder) WithName(name string) *LabelBuilder {
	lb.labels[KeyName] = Value(name)
	return lb
}

// WithIfSet adds key only when value is not empty.
func (lb *LabelBuilder) WithIfSet(key, value string) *LabelBuilder {
	if value != "" {
		lb.labels[key] = Value(value)
	}
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	maps.Copy(lb.labels, extra)
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	return maps.Clone(lb.labels)
}

var invalidValue = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Value sanitizes s into a valid label value: at most 63 characters of
// alphanumerics, '-', '_' and '.', starting and ending alphanumeric.
func Value(s string) string {
	v := invalidValue.ReplaceAllString(s, "-")
	if len(v) > 63 {
		v = v[:63]
	}
	return strings.Trim(v, "-_.")
}

// SelectorForNamespace returns a label selector for every managed resource
// of a kind in a namespace.
func SelectorForNamespace(namespace, kind string) string {
	return KeyNamespace + "=" + Value(namespace) + "," + KeyKind + "=" + kind
}
