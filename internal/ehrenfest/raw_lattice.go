package ehrenfest

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveRaw dumps the lattice as little-endian int32: Size, then Size*Size
// occupations in row-major (x, y) order.
func (l *Lattice) SaveRaw(path string) error {
	if l.Size <= 0 || len(l.Cells) != l.Size*l.Size {
		return fmt.Errorf("Cells length mismatch: got %d, expected %d (Size*Size)", len(l.Cells), l.Size*l.Size)
	}

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(l.Size)); err != nil {
		return err
	}
	body := make([]int32, len(l.Cells))
	for i, v := range l.Cells {
		body[i] = int32(v)
	}
	if err := binary.Write(w, binary.LittleEndian, body); err != nil {
		return err
	}
	return w.Flush()
}
