package types

// Cell is a single character of a rendered frame.
type Cell struct {
	Char  rune
	Color RGB8
}

// The cell used for pixels that no ray hit.
var BackgroundCell = Cell{Char: ' '}

// Frame is a rendered character grid indexed as [y][x].
type Frame [][]Cell

// Allocate a frame filled with background cells.
func NewFrame(width, height int) Frame {
	frame := make(Frame, height)
	for y := range frame {
		row := make([]Cell, width)
		for x := range row {
			row[x] = BackgroundCell
		}
		frame[y] = row
	}
	return frame
}

// Get frame width.
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Get frame height.
func (f Frame) Height() int {
	return len(f)
}

// String returns the frame glyphs without color information, one line per row.
func (f Frame) String() string {
	buf := make([]rune, 0, (f.Width()+1)*f.Height())
	for _, row := range f {
		for _, cell := range row {
			buf = append(buf, cell.Char)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
