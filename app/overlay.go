package app

import (
	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/render"
)

var (
	hintColor      = catalog.RGB{R: 110, G: 110, B: 128}
	titleColor     = catalog.RGB{R: 235, G: 225, B: 180}
	youColor       = catalog.RGB{R: 120, G: 200, B: 255}
	assistantColor = catalog.RGB{R: 220, G: 220, B: 220}
	systemColor    = catalog.RGB{R: 160, G: 140, B: 90}
	inputColor     = catalog.RGB{R: 255, G: 255, B: 255}
)

// overlay builds the glyph lines for the current view. Called once per
// frame on the select loop, right before the draw call.
func (a *App) overlay() []render.OverlayLine {
	w, h := a.surface.Size()
	if w <= 0 || h <= 0 {
		return nil
	}

	switch a.view {
	case ViewChat:
		return a.chatOverlay(w, h)
	default:
		return []render.OverlayLine{
			{X: 1, Y: 0, Text: "orrery", Fg: titleColor},
			{X: 1, Y: h - 1, Text: "tab:chat  q:quit", Fg: hintColor},
		}
	}
}

// chatOverlay lays the transcript over the lower half of the portal with
// the input line pinned to the bottom row.
func (a *App) chatOverlay(w, h int) []render.OverlayLine {
	lines := []render.OverlayLine{
		{X: 1, Y: 0, Text: "orrery — documents", Fg: titleColor},
		{X: 1, Y: h - 1, Text: "> " + string(a.input), Fg: inputColor},
	}

	// Most recent messages fill upward from above the input line.
	top := h / 3
	y := h - 3
	for i := len(a.messages) - 1; i >= 0 && y >= top; i-- {
		m := a.messages[i]
		fg := assistantColor
		prefix := ""
		switch m.Role {
		case "you":
			fg = youColor
			prefix = "you: "
		case "system":
			fg = systemColor
		}
		wrapped := wrap(prefix+m.Text, w-2)
		for j := len(wrapped) - 1; j >= 0 && y >= top; j-- {
			lines = append(lines, render.OverlayLine{X: 1, Y: y, Text: wrapped[j], Fg: fg})
			y--
		}
	}

	if a.pending {
		lines = append(lines, render.OverlayLine{X: 1, Y: h - 2, Text: "thinking…", Fg: hintColor})
	}
	return lines
}

// wrap splits text into rune-width segments, honoring embedded newlines.
func wrap(text string, width int) []string {
	if width < 1 {
		return nil
	}
	var out []string
	for _, para := range splitLines(text) {
		runes := []rune(para)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > width {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		out = append(out, string(runes))
	}
	return out
}

func splitLines(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	return append(out, text[start:])
}
