// Package naming provides consistent naming functions for deployment resources.
//
// Job names are fixed by role: the parameter server is ps<i>, each gym is
// vehicle<i> (unless named by the user) and its paired worker is the gym name
// with a "worker" suffix. A second run rediscovers everything it created by
// listing the namespace, so these names must never change between runs.
package naming
