package export

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/icza/mjpeg"
	"github.com/san-kum/isingsim/internal/ising"
)

// Movie writes lattice frames into an MJPEG AVI file.
type Movie struct {
	w      mjpeg.AviWriter
	scale  int
	opts   *jpeg.Options
	buf    bytes.Buffer
	frames int
	err    error
}

// NewMovie creates the AVI file for a dim x dim lattice drawn at scale
// pixels per spin.
func NewMovie(path string, dim, scale, fps int) (*Movie, error) {
	if scale < 1 {
		scale = 1
	}
	if fps < 1 {
		fps = 1
	}
	size := int32(dim * scale)
	w, err := mjpeg.New(path, size, size, int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create movie %s: %w", path, err)
	}
	return &Movie{w: w, scale: scale, opts: &jpeg.Options{Quality: 90}}, nil
}

func (m *Movie) AddFrame(rows [][]ising.Spin) error {
	m.buf.Reset()
	if err := jpeg.Encode(&m.buf, LatticeImage(rows, m.scale), m.opts); err != nil {
		return err
	}
	if err := m.w.AddFrame(m.buf.Bytes()); err != nil {
		return err
	}
	m.frames++
	return nil
}

// OnSweep adds a frame after every sweep. After the first failure no more
// frames are written and Close reports the error.
func (m *Movie) OnSweep(_ int, e *ising.Ensemble, _ time.Duration) {
	if m.err != nil {
		return
	}
	m.err = m.AddFrame(e.Rows())
}

func (m *Movie) Frames() int { return m.frames }

// Close finalizes the AVI index.
func (m *Movie) Close() error {
	cerr := m.w.Close()
	if m.err != nil {
		return m.err
	}
	return cerr
}
