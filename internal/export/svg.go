package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/isingsim/internal/ising"
)

const (
	UpColor   = "#00ccff"
	DownColor = "#0a0a0a"
)

// LatticeToSVG renders each spin as a scale x scale square: up spins in
// UpColor over a DownColor background.
func LatticeToSVG(rows [][]ising.Spin, scale float64) string {
	if len(rows) == 0 {
		return ""
	}

	width := float64(len(rows[0])) * scale
	height := float64(len(rows)) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, DownColor, UpColor))

	for i, row := range rows {
		for j, s := range row {
			if s != ising.Up {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(j)*scale, float64(i)*scale, scale, scale))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func WriteSVGFile(path string, rows [][]ising.Spin, scale float64) error {
	return os.WriteFile(path, []byte(LatticeToSVG(rows, scale)), 0644)
}
