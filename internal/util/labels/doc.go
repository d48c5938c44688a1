// Package labels provides consistent labeling for Hetzner Cloud resources.
//
// Every resource the hcloud driver creates carries the namespace it belongs
// to, the platform-level name it was created under and the managing tool.
// Listing by [SelectorForNamespace] is how the driver discovers resources.
package labels
