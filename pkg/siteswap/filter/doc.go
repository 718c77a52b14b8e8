// Package filter holds the pruning and acceptance rules shared by the
// pattern generator and the transition finder.
//
// Rules that can be decided while a candidate is still being built (exclude
// terms, multiplex catch collisions, the passing delay) are incremental and
// cheap; rules that need a whole period (include terms, connectivity,
// juggler permutations, lame holds) run once on a closed loop.
//
// None of the types here are safe for concurrent use; each search owns its
// own instances.
package filter
