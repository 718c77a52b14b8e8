// Package stategraph draws the states a pattern passes through.
//
// [Build] parses a pattern, starts from the state it leaves behind after
// running forever and applies one beat at a time until the loop closes.
// Nodes are distinct states, edges are beats labelled with their throws.
// With [Options.Full], an excited pattern also gets the shortest way in
// from the ground state and back out, drawn dashed.
//
//	g, err := stategraph.Build(ctx, "531", stategraph.Options{})
//	dot := stategraph.ToDOT(g)
//	svg, err := stategraph.Render(ctx, dot, stategraph.FormatSVG)
//
// Rendering uses [github.com/goccy/go-graphviz] in process; no Graphviz
// installation is needed.
package stategraph
