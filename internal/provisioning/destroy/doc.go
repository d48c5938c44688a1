// Package destroy handles teardown of a deployment namespace.
//
// Every job, then every network, then every service visible in the
// namespace is deleted, one at a time. A failed deletion is recorded and
// teardown moves on to the next resource; nothing is retried.
package destroy
