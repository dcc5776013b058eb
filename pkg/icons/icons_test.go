package icons

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderKnownGlyphs(t *testing.T) {
	for _, name := range []Name{Heart, MessageCircle, User, MapPin, Lightbulb, Info, Phone, Menu, X} {
		t.Run(string(name), func(t *testing.T) {
			assert.True(t, Known(name))

			out := string(Render(name, "w-5 h-5"))
			assert.True(t, strings.HasPrefix(out, "<svg"), out)
			assert.True(t, strings.HasSuffix(out, "</svg>"), out)
			assert.Contains(t, out, `class="w-5 h-5"`)
			assert.Contains(t, out, `data-icon="`+string(name)+`"`)
			assert.Contains(t, out, `stroke="currentColor"`)
		})
	}
}

func TestRenderWithoutClass(t *testing.T) {
	out := string(Render(Menu, ""))
	assert.NotContains(t, out, "class=")
	assert.Equal(t, 3, strings.Count(out, "<path"))
}

func TestRenderUnknownGlyph(t *testing.T) {
	assert.False(t, Known("sparkles"))
	assert.Nil(t, Node("sparkles", "w-5"))
	assert.Empty(t, string(Render("sparkles", "w-5")))
}
