package report

import (
	"github.com/charmbracelet/glamour"
)

// RenderTerm renders markdown for terminal display. When the renderer
// cannot be built the raw markdown comes back unchanged, so output never
// disappears on exotic terminals.
func RenderTerm(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
