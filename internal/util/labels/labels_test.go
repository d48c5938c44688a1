package labels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelBuilder(t *testing.T) {
	t.Parallel()
	got := NewLabelBuilder("rlcluster").
		WithKind(KindJob).
		WithName("vehicle0worker").
		WithIfSet(KeyPlacement, "fsn1").
		WithIfSet(KeyAffinity, "").
		Build()

	assert.Equal(t, map[string]string{
		KeyNamespace: "rlcluster",
		KeyManagedBy: ManagedBy,
		KeyKind:      KindJob,
		KeyName:      "vehicle0worker",
		KeyPlacement: "fsn1",
	}, got)
}

func TestLabelBuilder_BuildCopies(t *testing.T) {
	t.Parallel()
	lb := NewLabelBuilder("ns")
	first := lb.Build()
	first[KeyKind] = "mutated"
	assert.NotContains(t, lb.Build(), KeyKind)
}

func TestLabelBuilder_Merge(t *testing.T) {
	t.Parallel()
	got := NewLabelBuilder("ns").Merge(map[string]string{"team": "rl"}).Build()
	assert.Equal(t, "rl", got["team"])
}

func TestValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"rlcluster", "rlcluster"},
		{"/sandbox/admin", "sandbox-admin"},
		{"a b::c", "a-b-c"},
		{"-edge-", "edge"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Value(tt.in), tt.in)
	}
	assert.Len(t, Value(strings.Repeat("a", 100)), 63)
}

func TestSelectorForNamespace(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "rlcluster.io/namespace=rl,rlcluster.io/kind=network", SelectorForNamespace("rl", KindNetwork))
}
