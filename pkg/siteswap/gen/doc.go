// Package gen enumerates periodic juggling patterns.
//
// A run walks the periods of its range in order. For each period it lists
// the start states that can close a loop of that length and, from each,
// searches the throws that return to it, pruning as early as the filters
// allow. Every accepted loop is rendered and delivered to a
// [siteswap.Target].
//
// # Duplicates
//
// Without rotations a loop is listed once, from the ground state when it
// visits it and otherwise from the greatest state it visits in the order
// of [siteswap.CompareStates]. A loop that returns to its start state
// early is a repetition; it is listed once, in its shortest form, at the
// first searched period that its length divides. Full enumeration lists
// composite loops as well, and prime enumeration drops every loop that
// visits a state twice.
//
// # Usage
//
//	cfg, err := gen.ParseArgs(strings.Fields("3 5 3"))
//	if err != nil {
//	    return err
//	}
//	outcome, err := gen.Run(ctx, cfg, target)
package gen
