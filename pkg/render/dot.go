package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tobim/smartgraph/pkg/diagram"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes point IDs and image references in node labels.
	// When false, only the node text is shown.
	Detailed bool
}

// ToDOT converts the logical layer of a model to Graphviz DOT format.
// The resulting DOT string can be rendered with [SVG] or [PNG].
//
// Nodes with an embedded image reference get a distinct fill so picture
// slots are visible in the structural view.
func ToDOT(m *diagram.Model, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, p := range m.Points() {
		switch p.Kind {
		case diagram.KindDocument:
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n",
				p.ID, "root")
		case diagram.KindDataNode, diagram.KindAssistant:
			label := fmtLabel(p, opts.Detailed)
			attrs := fmtAttrs(p, label)
			fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for _, c := range m.Connections() {
		if c.Kind != diagram.ConnParentChild {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.SourceID, c.DestID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p *diagram.Point, detailed bool) string {
	label := p.PlainText()
	if label == "" {
		label = p.ID
	}
	if !detailed {
		return label
	}

	parts := []string{"id: " + p.ID}
	if p.ImageRef != "" {
		parts = append(parts, "image: "+p.ImageRef)
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(p *diagram.Point, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if p.ImageRef != "" {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderAs(dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderAs(dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderAs(dot string, format graphviz.Format, buf *bytes.Buffer) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
