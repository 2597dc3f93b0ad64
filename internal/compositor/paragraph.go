package compositor

import (
	"strings"

	"github.com/stjet/ming-wm/internal/proto"
	"github.com/stjet/ming-wm/internal/wmtypes"
)

// paragraph is a scrollable block of lines, shared by About and Help.
// Grounded on the components::paragraph::Paragraph usage in
// essential/{about,help}.rs: arrow-key/j-k scrolling over pre-split lines,
// drawn as one Text instruction per visible line.
type paragraph struct {
	topLeft    wmtypes.Point
	size       wmtypes.Dimensions
	lines      []string
	scroll     int
	lineHeight int
}

func newParagraph(topLeft wmtypes.Point, size wmtypes.Dimensions, text string) *paragraph {
	return &paragraph{topLeft: topLeft, size: size, lines: strings.Split(text, "\n"), lineHeight: 16}
}

func (p *paragraph) setText(text string) {
	p.lines = strings.Split(text, "\n")
	p.scroll = 0
}

// handleKey returns true if it consumed the key (and a redraw is needed).
func (p *paragraph) handleKey(key rune) bool {
	visible := p.size[1] / p.lineHeight
	maxScroll := len(p.lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	switch {
	case key == 'j' || proto.IsDownArrow(key):
		if p.scroll < maxScroll {
			p.scroll++
			return true
		}
	case key == 'k' || proto.IsUpArrow(key):
		if p.scroll > 0 {
			p.scroll--
			return true
		}
	}
	return false
}

func (p *paragraph) draw(theme proto.ThemeInfo) []proto.DrawInstruction {
	families := []string{"nimbus-romono"}
	visible := p.size[1] / p.lineHeight
	var instructions []proto.DrawInstruction
	for i := 0; i < visible; i++ {
		idx := p.scroll + i
		if idx >= len(p.lines) {
			break
		}
		instructions = append(instructions, proto.DrawText(
			wmtypes.Point{p.topLeft[0], p.topLeft[1] + i*p.lineHeight},
			families, p.lines[idx], theme.Text, theme.Background, nil, nil,
		))
	}
	return instructions
}
