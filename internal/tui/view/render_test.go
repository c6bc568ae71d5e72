package view

import "testing"

type recordingOverlay struct {
	calls []string
}

func (o *recordingOverlay) Place(base string, _, _, _, _ int, content string) string {
	o.calls = append(o.calls, "place:"+content)
	return base + "|" + content
}

func (o *recordingOverlay) Center(base string, _, _ int, content string) string {
	o.calls = append(o.calls, "center:"+content)
	return base + "|" + content
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		state ViewState
		want  string
		calls int
	}{
		{
			name:  "no size shows placeholder",
			state: ViewState{EmptyPlaceholder: "wait"},
			want:  "wait",
		},
		{
			name:  "base only",
			state: ViewState{Width: 1, Height: 1, BaseContent: "base"},
			want:  "base",
		},
		{
			name: "tooltip below modal",
			state: ViewState{
				Width: 1, Height: 1, BaseContent: "base",
				TooltipContent: "tip", ShowTooltip: true,
				ModalContent: "modal", ShowModal: true,
			},
			want:  "base|tip|modal",
			calls: 2,
		},
		{
			name: "hidden tooltip",
			state: ViewState{
				Width: 1, Height: 1, BaseContent: "base",
				TooltipContent: "tip",
			},
			want: "base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &recordingOverlay{}
			tt.state.Overlay = o
			if got := Render(tt.state); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if len(o.calls) != tt.calls {
				t.Errorf("overlay calls = %v, want %d", o.calls, tt.calls)
			}
		})
	}
}
