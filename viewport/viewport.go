package viewport

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/reikx/ascia/types"
)

// Viewport draws frames onto a terminal using the xterm 256 color palette.
type Viewport struct {
	out *termenv.Output

	// Size of the last displayed frame.
	width, height int
}

// Create a viewport writing to w. The ANSI256 profile is forced so output
// looks the same whether or not w is a tty.
func New(w io.Writer) *Viewport {
	return &Viewport{
		out: termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI256)),
	}
}

// Clear the screen and show the cursor again.
func (v *Viewport) Clear() {
	v.out.ClearScreen()
	v.out.ShowCursor()
	v.width, v.height = 0, 0
}

// Restore the cursor leaving the last frame on screen.
func (v *Viewport) Close() {
	v.out.ShowCursor()
}

// Display a frame starting at the top left corner of the terminal. The screen
// is cleared when the frame size changes so no stale rows remain.
func (v *Viewport) Display(frame types.Frame) error {
	if frame.Width() != v.width || frame.Height() != v.height {
		v.out.ClearScreen()
		v.width, v.height = frame.Width(), frame.Height()
	}
	v.out.HideCursor()
	v.out.MoveCursor(1, 1)

	var sb strings.Builder
	for _, row := range frame {
		writeRow(&sb, v.out, row)
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(v.out, sb.String()); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	return nil
}

// Write a row grouping consecutive cells of the same color into one styled
// span. Background cells are written unstyled.
func writeRow(sb *strings.Builder, out *termenv.Output, row []types.Cell) {
	for start := 0; start < len(row); {
		end := start + 1
		for end < len(row) && sameStyle(row[start], row[end]) {
			end++
		}

		run := make([]rune, 0, end-start)
		for _, cell := range row[start:end] {
			run = append(run, cell.Char)
		}

		if row[start].Char == ' ' {
			sb.WriteString(string(run))
		} else {
			color := termenv.ANSI256Color(int(row[start].Color.ANSI256()))
			sb.WriteString(out.String(string(run)).Foreground(color).String())
		}
		start = end
	}
}

func sameStyle(a, b types.Cell) bool {
	if a.Char == ' ' || b.Char == ' ' {
		return a.Char == b.Char
	}
	return a.Color == b.Color
}
