package trk

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrUnencodableTrack is returned when a track cannot be represented in a
// file that the decoder would read back in full.
var ErrUnencodableTrack = errors.New("track cannot be encoded")

// Encode writes h followed by tracks in TRK format. The magic, hdr_size and
// n_count fields of h are overwritten. Per-track properties are written as
// zeros.
func Encode(w io.Writer, h Header, tracks []FiberTrack) error {
	copy(h.Magic[:], Magic)
	h.HeaderSize = HeaderSize
	h.NumTracks = uint32(len(tracks))

	bw := bufio.NewWriterSize(w, 64*1024)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	numScalars := int(h.NumScalars)
	buf := make([]byte, 4*h.PointStride())
	props := make([]byte, 4*int(h.NumProperties))

	for i, track := range tracks {
		if len(track) == 0 || len(track) > MaxTrackPoints {
			return fmt.Errorf("%w: track %d has %d points (want 1..%d)",
				ErrUnencodableTrack, i, len(track), MaxTrackPoints)
		}

		var countBuf [4]byte
		binary.LittleEndian.PutUint32(countBuf[:], uint32(len(track)))
		if _, err := bw.Write(countBuf[:]); err != nil {
			return fmt.Errorf("writing track %d: %w", i, err)
		}

		for j, p := range track {
			if p.Scalars != nil && len(p.Scalars) != numScalars {
				return fmt.Errorf("%w: track %d point %d has %d scalars, header declares %d",
					ErrUnencodableTrack, i, j, len(p.Scalars), numScalars)
			}

			putFloat(buf, 0, p.X)
			putFloat(buf, 1, p.Y)
			putFloat(buf, 2, p.Z)
			for s := 0; s < numScalars; s++ {
				var v float32
				if p.Scalars != nil {
					v = p.Scalars[s]
				}
				putFloat(buf, 3+s, v)
			}

			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("writing track %d: %w", i, err)
			}
		}

		if _, err := bw.Write(props); err != nil {
			return fmt.Errorf("writing track %d properties: %w", i, err)
		}
	}

	return bw.Flush()
}

// WriteFile encodes tracks to a file on disk.
func WriteFile(path string, h Header, tracks []FiberTrack) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, h, tracks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func putFloat(buf []byte, i int, v float32) {
	binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
}
