package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/cwbudde/traffic-vmd/vmd"
)

// FileKey derives a cache key from a workbook's identity on disk. The
// key changes whenever the file is replaced or rewritten, so stale
// series entries are simply never referenced again.
func FileKey(path string, size int64, modTime time.Time) string {
	h := sha256.New()
	io.WriteString(h, path)
	fmt.Fprintf(h, "|%d|%d", size, modTime.UTC().UnixNano())
	return hex.EncodeToString(h.Sum(nil))
}

// WindowKey derives a cache key from the exact window content and the
// solver parameters that process it. Equal windows under equal
// parameters share one decomposition.
func WindowKey(values []float64, p vmd.Params) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%g|%g|%t|%d|%g|%d|%d|", p.K, p.Alpha, p.Tau, p.DCMode, p.Init, p.Tol, p.MaxIter, p.Seed)
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
