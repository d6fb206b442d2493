// Package grid provides the boolean module matrix consumed by the renderer.
package grid

// Grid is an immutable square matrix of QR modules.
// Get reports false for coordinates outside [0, Size()).
type Grid interface {
	Size() int
	Get(x, y int) bool
}

// Bitmap is a Grid backed by rows of booleans, indexed [y][x].
type Bitmap [][]bool

func (b Bitmap) Size() int { return len(b) }

func (b Bitmap) Get(x, y int) bool {
	if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
		return false
	}
	return b[y][x]
}

// Parse builds a Bitmap from rows of '#' (set) and any other rune (unset).
// It is meant for fixtures and small hand-written grids.
func Parse(rows ...string) Bitmap {
	out := make(Bitmap, len(rows))
	for y, row := range rows {
		out[y] = make([]bool, 0, len(row))
		for _, r := range row {
			out[y] = append(out[y], r == '#')
		}
	}
	return out
}

// Filled returns an n×n grid with every module set.
func Filled(n int) Bitmap {
	out := make(Bitmap, n)
	for y := range out {
		out[y] = make([]bool, n)
		for x := range out[y] {
			out[y][x] = true
		}
	}
	return out
}
