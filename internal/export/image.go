package export

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/san-kum/isingsim/internal/ising"
)

var (
	upRGBA   = color.RGBA{R: 0x00, G: 0xcc, B: 0xff, A: 0xff}
	downRGBA = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
)

// LatticeImage draws each spin as a scale x scale block in the same colors
// as LatticeToSVG.
func LatticeImage(rows [][]ising.Spin, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w := 0
	if len(rows) > 0 {
		w = len(rows[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, w*scale, len(rows)*scale))
	up := image.NewUniform(upRGBA)
	down := image.NewUniform(downRGBA)
	for i, row := range rows {
		for j, s := range row {
			src := down
			if s == ising.Up {
				src = up
			}
			r := image.Rect(j*scale, i*scale, (j+1)*scale, (i+1)*scale)
			draw.Draw(img, r, src, image.Point{}, draw.Src)
		}
	}
	return img
}
