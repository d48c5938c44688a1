// Package memory implements platform.Client in process.
//
// The namespace lives in maps guarded by a mutex. Every call, successful or
// not, is appended to a sequenced call log so tests can assert ordering and
// `rlcluster deploy --dry-run` can print what a real deployment would do.
// Failures can be injected per operation and resource with [Client.Fail].
package memory
