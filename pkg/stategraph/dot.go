package stategraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jugglesearch/pkg/errors"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG, FormatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown graph format %q (want dot, svg or png)", format)
}

// ToDOT converts a graph to Graphviz DOT source. The start state is drawn
// bold and the ground state filled.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph states {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", g.Pattern)
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Courier\"];\n")
	buf.WriteString("  edge [fontname=\"Courier\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmt.Sprintf("label=%q", n.State)
		switch {
		case n.Ground && n.Start:
			attrs += ", penwidth=2, fillcolor=lightgrey"
		case n.Ground:
			attrs += ", fillcolor=lightgrey"
		case n.Start:
			attrs += ", penwidth=2"
		}
		fmt.Fprintf(&buf, "  s%d [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := fmt.Sprintf("label=%q", e.Label)
		if e.Entry {
			attrs += ", style=dashed, color=grey40"
		}
		fmt.Fprintf(&buf, "  s%d -> s%d [%s];\n", e.From, e.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render renders DOT source as format. FormatDOT returns the source.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(dot), nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	out := graphviz.SVG
	if format == FormatPNG {
		out = graphviz.PNG
	}
	var buf bytes.Buffer
	if err := gv.Render(ctx, g, out, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG renders DOT source as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a plain
// viewBox so the image scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
