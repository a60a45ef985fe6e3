package viz

import (
	"strings"

	"github.com/san-kum/isingsim/internal/ising"
)

const brailleBlank rune = 0x2800

// brailleBits[y%4][x%2] is the dot bit for a sub-cell position.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas packs dots into braille characters, two columns by four rows per
// character. Width and Height count characters.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

// NewLatticeCanvas returns the smallest canvas holding one dot per cell of a
// dim x dim lattice.
func NewLatticeCanvas(dim int) *Canvas {
	return NewCanvas((dim+1)/2, (dim+3)/4)
}

func (c *Canvas) locate(x, y int) (int, rune, bool) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return 0, 0, false
	}
	return (y/4)*c.Width + x/2, brailleBits[y%4][x%2], true
}

// Set turns on the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if k, bit, ok := c.locate(x, y); ok {
		c.cells[k] |= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	k, bit, ok := c.locate(x, y)
	return ok && c.cells[k]&bit != 0
}

func (c *Canvas) Clear() {
	for k := range c.cells {
		c.cells[k] = brailleBlank
	}
}

// DrawLattice clears the canvas and puts a dot at (j, i) for every up spin.
func (c *Canvas) DrawLattice(rows [][]ising.Spin) {
	c.Clear()
	for i, row := range rows {
		for j, s := range row {
			if s == ising.Up {
				c.Set(j, i)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}
