package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/isingsim/internal/ising"
)

// BlockLimit is the largest dimension drawn with RenderBlocks; larger
// lattices go through the braille canvas.
const BlockLimit = 48

// RenderLattice picks blocks or braille depending on the lattice size.
func RenderLattice(rows [][]ising.Spin) string {
	if len(rows) <= BlockLimit {
		return RenderBlocks(rows)
	}
	c := NewLatticeCanvas(len(rows))
	c.DrawLattice(rows)
	return lipgloss.NewStyle().Foreground(CurrentTheme.Up).Render(c.String())
}

// RenderBlocks draws every spin as two full blocks in the theme's up or
// down color.
func RenderBlocks(rows [][]ising.Spin) string {
	up := lipgloss.NewStyle().Foreground(CurrentTheme.Up).Render("██")
	down := lipgloss.NewStyle().Foreground(CurrentTheme.Down).Render("██")

	var b strings.Builder
	for _, row := range rows {
		for _, s := range row {
			if s == ising.Up {
				b.WriteString(up)
			} else {
				b.WriteString(down)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
