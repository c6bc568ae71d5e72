package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayModel splices boxes such as the tooltip and the reset modal on top
// of the rendered board.
type OverlayModel struct {
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{
		bgColor: lipgloss.Color(""),
	}
}

// SetBackground updates the color reapplied after resets inside overlay
// content.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Center draws content in the middle of the screen.
func (o OverlayModel) Center(base string, width, height int, content string) string {
	lines := o.contentLines(content)
	w, h := o.contentSize(lines)
	return o.Place(base, width, height, (width-w)/2, (height-h)/2, content)
}

// Place draws content with its top-left corner at (x, y). The box is
// shifted back on screen when it would overflow the right or bottom edge.
func (o OverlayModel) Place(base string, width, height, x, y int, content string) string {
	if width <= 0 || height <= 0 {
		return base
	}

	contentLines := o.contentLines(content)
	boxW, boxH := o.contentSize(contentLines)
	if boxW == 0 || boxH == 0 {
		return base
	}
	if boxW > width {
		boxW = width
	}
	if boxH > height {
		boxH = height
	}

	left := clamp(x, 0, width-boxW)
	top := clamp(y, 0, height-boxH)

	baseLines := o.normalizeBase(base, width, height)
	overlayLines := o.fitContent(contentLines, boxW, boxH)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxH {
			lines = append(lines, baseLines[row])
			continue
		}

		overlayLine := overlayLines[row-top]
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+boxW, width)
		lines = append(lines, leftSlice+overlayLine+rightSlice)
	}

	return strings.Join(lines, "\n")
}

// fitContent pads or cuts every content line to exactly width columns.
func (o OverlayModel) fitContent(content []string, width, height int) []string {
	bgSeq := o.backgroundSeq()
	lines := make([]string, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(content) {
			line = content[i]
		}
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			line = ansi.Cut(line, 0, width)
			lineWidth = width
		}
		line = o.applyOverlayBackgroundResets(line, bgSeq)
		if lineWidth < width {
			line += bgSeq + strings.Repeat(" ", width-lineWidth)
		}
		lines[i] = line + ansi.ResetStyle
	}
	return lines
}

func (o OverlayModel) backgroundSeq() string {
	if o.bgColor == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
}

func (o OverlayModel) contentLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (o OverlayModel) contentSize(lines []string) (int, int) {
	if len(lines) == 0 {
		return 0, 0
	}
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth, len(lines)
}

func (o OverlayModel) applyOverlayBackgroundResets(line, bgSeq string) string {
	if bgSeq == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

func (o OverlayModel) normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = ansi.Cut(line, 0, width)
			continue
		}
		if lineWidth < width {
			lines[i] = line + strings.Repeat(" ", width-lineWidth)
		}
	}

	return lines
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
