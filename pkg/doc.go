// Package pkg provides the libraries behind jugglesearch, a search engine
// for juggling patterns in siteswap notation.
//
// # Overview
//
// Every juggling pattern is a loop in a graph whose nodes are states: which
// hands will catch how many objects on each of the next beats. jugglesearch
// walks that graph in two ways:
//
//  1. [siteswap/gen] enumerates every loop up to a maximum throw and a
//     period range, with filters for ground or excited states, passing,
//     multiplexing and excluded or required sub-patterns.
//  2. [siteswap/trans] finds the shortest throw sequences that lead from
//     one pattern's state into another's.
//
// # Architecture
//
//	argument vector / Config
//	         ↓
//	    [siteswap/gen] or [siteswap/trans] (search)
//	         ↓
//	    [siteswap.Target] (display, notation, animation)
//	         ↓
//	    [sink] (text, JSON, YAML, MongoDB, live channel)
//
// [pipeline] sits in front of the searches for every entry point: it keys a
// run by its configuration, replays cached results from [cache] and fires
// the [observability] hooks.
//
// # Quick Start
//
//	cfg, err := gen.ParseArgs([]string{"3", "5", "3"})
//	if err != nil {
//	    return err
//	}
//	mem := &sink.Memory{}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Generate(ctx, cfg, mem)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(mem.Displays(), res.Outcome)
//
// # Main Packages
//
// [siteswap] - Rhythms, states, throws and the Target and Outcome types
// shared by both searches.
//
// [siteswap/notation] - Rendering throw sequences as siteswap text and
// parsing it back into physical throws.
//
// [siteswap/filter] - Exclude and include terms, catch bookkeeping and the
// passing and multiplex filters.
//
// [stategraph] - The state cycle of one pattern as a graph, rendered to
// DOT, SVG or PNG.
//
// [cache] - Result caches: null, file, bbolt and Redis.
//
// [errors] - Error codes separating user errors from internal ones.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include the MongoDB archive test
package pkg
