// Package trans finds throw sequences that carry one pattern's state into
// another's.
//
// [Find] is the search itself: it walks every transition length from
// [MinLength] to [MaxLength], fills the holes of each beat with throws that
// never overfill the target state, and reports the transitions of the
// shortest length that has any. [FindFirst] stops after one and is used for
// the short return loop and for the generator's start and end sequences.
//
// [Run] is the transitioner driver: it parses the two patterns, finds the
// transitions between them and emits each one, rendered in siteswap
// notation, to a [siteswap.Target].
package trans
