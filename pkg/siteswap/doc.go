// Package siteswap holds the state model shared by the pattern generator and
// the transition finder.
//
// # Hands and rhythm
//
// A [Rhythm] fixes how many hands take part and on which beats each hand may
// throw. Three modes exist:
//
//   - [Async]: one abstract hand per juggler, throwing on every beat. This
//     is the model behind plain siteswap digits like 531.
//   - [Sync]: two hands per juggler, both throwing on even beats, as in
//     (4,2x).
//   - [Physical]: two hands per juggler, each allowed to throw on any beat.
//     Parsed patterns and transitions between them live in this model.
//
// # States
//
// A [State] records, for every hand, how many objects will land in it 0, 1,
// 2... beats from now. The total is the object count and never changes.
// [GroundState] packs the objects into the lowest slots; [CompareStates]
// is a deterministic total order used for rotation pruning.
//
// # Search plumbing
//
// Searches report patterns through a [Target] and end with an [Outcome].
// A [Budget] counts emitted patterns and samples the clock every
// [CheckInterval] recursive calls; when it runs out, recursion unwinds with
// [Stop], which is not an error.
package siteswap
