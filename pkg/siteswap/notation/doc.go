// Package notation renders throw sequences as siteswap text and parses
// siteswap text back into a physical throw matrix.
//
// # Output grammar
//
// A throw is one base-36 lowercase digit, followed by "x" when it lands on
// the side opposite its default (an even throw returns to the same side, an
// odd one crosses) and by "p" when it goes to another juggler; with more than
// two jugglers "p" carries the 1-based destination juggler digit. Several
// throws from one hand on one beat are bracketed: "[43]". Both hands of a
// juggler throwing together form "(left,right)", which takes two beats, or one
// beat when followed by "!". Jugglers are written side by side in
// "<a|b|...>" groups, either one group per beat or one group for the whole
// pattern.
//
// Asynchronous throws alternate hands starting with the right hand. An "R" or
// "L" before a throw forces the hand; a trailing "R" or "L" sets the hand that
// throws next.
//
// # Parsing
//
// [Parse] reads a periodic pattern into a [Pattern] on the physical rhythm
// (two hands per juggler, any beat). When the text does not bring every
// juggler back to the right hand, the loop is read twice. [ParseSequence]
// reads a non-periodic sequence such as a transition.
package notation
