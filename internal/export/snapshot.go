package export

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/isingsim/internal/ising"
)

// WriteState writes one lattice row per line with spins separated by single
// spaces, e.g. "1 -1 1".
func WriteState(w io.Writer, rows [][]ising.Spin) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for j, s := range row {
			if j > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.Itoa(int(s))); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteStateFile writes the lattice to path in the WriteState format.
func WriteStateFile(path string, rows [][]ising.Spin) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteState(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
