// Package view provides view composition helpers for the TUI.
package view

// OverlayRenderer splices overlay content on top of base content.
type OverlayRenderer interface {
	// Place draws content with its top-left corner at (x, y), clamped so
	// the whole box stays on screen.
	Place(base string, width, height, x, y int, content string) string
	// Center draws content in the middle of the screen.
	Center(base string, width, height int, content string) string
}

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	TooltipContent   string
	TooltipX         int
	TooltipY         int
	ShowTooltip      bool
	ModalContent     string
	ShowModal        bool
	Overlay          OverlayRenderer
	EmptyPlaceholder string
}

// Render composes the final view output. The modal is drawn above the
// tooltip.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	out := state.BaseContent
	if state.Overlay == nil {
		return out
	}
	if state.ShowTooltip && state.TooltipContent != "" {
		out = state.Overlay.Place(out, state.Width, state.Height, state.TooltipX, state.TooltipY, state.TooltipContent)
	}
	if state.ShowModal {
		out = state.Overlay.Center(out, state.Width, state.Height, state.ModalContent)
	}
	return out
}
