package render

import (
	"embed"

	"github.com/flosch/pongo2/v6"
)

//go:embed assets/og/roast.html
var embeddedOGAssets embed.FS

// MaxHighlightLength bounds the highlight query parameter.
const MaxHighlightLength = 500

// ogHighlightDisplayMax bounds what the card actually shows; longer
// highlights are cut for visual balance.
const ogHighlightDisplayMax = 200

// OGTemplate renders the Open Graph share card HTML. Variable output is
// HTML-escaped by pongo2's autoescaping.
type OGTemplate struct {
	tpl *pongo2.Template
}

// LoadOGTemplate parses the embedded roast share card template.
func LoadOGTemplate() (*OGTemplate, error) {
	raw, err := embeddedOGAssets.ReadFile("assets/og/roast.html")
	if err != nil {
		return nil, NewError(KindInternal, "og template asset missing", err)
	}
	tpl, err := pongo2.FromBytes(raw)
	if err != nil {
		return nil, NewError(KindInternal, "og template parse failed", err)
	}
	return &OGTemplate{tpl: tpl}, nil
}

// LoadOGTemplateFile parses a share card template from disk, for
// deployments that override the embedded card.
func LoadOGTemplateFile(path string) (*OGTemplate, error) {
	tpl, err := pongo2.FromFile(path)
	if err != nil {
		return nil, NewError(KindInternal, "og template parse failed", err)
	}
	return &OGTemplate{tpl: tpl}, nil
}

// Render produces the share card HTML for a score and highlight.
func (t *OGTemplate) Render(score int, highlight string) (string, error) {
	if t == nil || t.tpl == nil {
		return "", NewError(KindInternal, "og template is not loaded", nil)
	}
	out, err := t.tpl.Execute(pongo2.Context{
		"score":     score,
		"highlight": truncateHighlight(highlight),
	})
	if err != nil {
		return "", NewError(KindInternal, "og template render failed", err)
	}
	return out, nil
}

// truncateHighlight cuts by rune so multi-byte text is never split
// mid-character.
func truncateHighlight(s string) string {
	runes := []rune(s)
	if len(runes) <= ogHighlightDisplayMax {
		return s
	}
	return string(runes[:ogHighlightDisplayMax-3]) + "..."
}
