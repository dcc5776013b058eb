// Package icons renders the outline glyphs used by the navigation shell as
// inline SVG. Glyphs are referenced symbolically by Name so navigation data
// stays free of markup.
package icons

import (
	"html/template"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

type Name string

const (
	Heart         Name = "heart"
	MessageCircle Name = "message-circle"
	User          Name = "user"
	MapPin        Name = "map-pin"
	Lightbulb     Name = "lightbulb"
	Info          Name = "info"
	Phone         Name = "phone"
	Menu          Name = "menu"
	X             Name = "x"
)

type shape struct {
	tag   string
	attrs [][2]string
}

func path(d string) shape {
	return shape{tag: "path", attrs: [][2]string{{"d", d}}}
}

func circle(cx, cy, r string) shape {
	return shape{tag: "circle", attrs: [][2]string{{"cx", cx}, {"cy", cy}, {"r", r}}}
}

var glyphs = map[Name][]shape{
	Heart: {
		path("M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"),
	},
	MessageCircle: {
		path("M7.9 20A9 9 0 1 0 4 16.1L2 22Z"),
	},
	User: {
		path("M19 21v-2a4 4 0 0 0-4-4H9a4 4 0 0 0-4 4v2"),
		circle("12", "7", "4"),
	},
	MapPin: {
		path("M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0Z"),
		circle("12", "10", "3"),
	},
	Lightbulb: {
		path("M15 14c.2-1 .7-1.7 1.5-2.5 1-.9 1.5-2.2 1.5-3.5A6 6 0 0 0 6 8c0 1 .2 2.2 1.5 3.5.7.7 1.3 1.5 1.5 2.5"),
		path("M9 18h6"),
		path("M10 22h4"),
	},
	Info: {
		circle("12", "12", "10"),
		path("M12 16v-4"),
		path("M12 8h.01"),
	},
	Phone: {
		path("M22 16.92v3a2 2 0 0 1-2.18 2 19.79 19.79 0 0 1-8.63-3.07 19.5 19.5 0 0 1-6-6 19.79 19.79 0 0 1-3.07-8.67A2 2 0 0 1 4.11 2h3a2 2 0 0 1 2 1.72 12.84 12.84 0 0 0 .7 2.81 2 2 0 0 1-.45 2.11L8.09 9.91a16 16 0 0 0 6 6l1.27-1.27a2 2 0 0 1 2.11-.45 12.84 12.84 0 0 0 2.81.7A2 2 0 0 1 22 16.92z"),
	},
	Menu: {
		path("M4 12h16"),
		path("M4 6h16"),
		path("M4 18h16"),
	},
	X: {
		path("M18 6 6 18"),
		path("m6 6 12 12"),
	},
}

// Known reports whether name refers to a glyph this package can render.
func Known(name Name) bool {
	_, ok := glyphs[name]
	return ok
}

// Node builds the SVG element for name. Unknown names yield nil.
func Node(name Name, class string) g.Node {
	shapes, ok := glyphs[name]
	if !ok {
		return nil
	}

	children := []g.Node{
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("stroke-width", "2"),
		g.Attr("stroke-linecap", "round"),
		g.Attr("stroke-linejoin", "round"),
		g.Attr("aria-hidden", "true"),
		g.Attr("data-icon", string(name)),
	}
	if class != "" {
		children = append(children, html.Class(class))
	}

	for _, s := range shapes {
		attrs := make([]g.Node, 0, len(s.attrs))
		for _, kv := range s.attrs {
			attrs = append(attrs, g.Attr(kv[0], kv[1]))
		}
		children = append(children, g.El(s.tag, attrs...))
	}

	return g.El("svg", children...)
}

// Render returns the glyph as trusted markup for html/template.
func Render(name Name, class string) template.HTML {
	node := Node(name, class)
	if node == nil {
		return ""
	}

	var b strings.Builder
	if err := node.Render(&b); err != nil {
		return ""
	}
	return template.HTML(b.String())
}
