package trk

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// TRK load errors.
var (
	ErrFileOpen         = errors.New("cannot open tractography file")
	ErrFormat           = errors.New("invalid file format")
	ErrHeaderValidation = errors.New("invalid TRK header")
	ErrTrackIndex       = errors.New("track index out of range")
)

// MaxTrackPoints is the largest point count accepted for a single track.
// A record declaring more (or zero) points ends track extraction.
const MaxTrackPoints = 10000

// initialTrackCap bounds the up-front point allocation for one track.
const initialTrackCap = 256

// LoadFile loads a TRK file from disk.
func LoadFile(path string) (*Tractogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer f.Close()

	return Decode(f)
}

// Parse parses a TRK file from raw bytes.
func Parse(data []byte) (*Tractogram, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a header and all track records from r.
//
// Header problems abort the load. Problems in the record stream do not: a
// zero or oversized point count, or a record cut short by end of stream,
// stops extraction and the tracks read so far are returned as a success.
func Decode(r io.ReadSeeker) (*Tractogram, error) {
	h, warnings, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	// Track data always starts at the fixed header end, not at hdr_size.
	if _, err := r.Seek(HeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to track data: %w", ErrFileOpen, err)
	}

	tracks := decodeTracks(bufio.NewReaderSize(r, 64*1024), &h)

	return &Tractogram{
		Header:   h,
		Tracks:   tracks,
		Status:   fmt.Sprintf("Successfully loaded %d fiber tracks", len(tracks)),
		Warnings: warnings,
	}, nil
}

// decodeHeader reads and validates the fixed 1000-byte header.
func decodeHeader(r io.Reader) (Header, []string, error) {
	var h Header
	var raw [HeaderSize]byte

	n, err := io.ReadFull(r, raw[:])
	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return h, nil, fmt.Errorf("%w: reading header: %w", ErrFileOpen, err)
		}
		if n >= len(Magic) && string(raw[:len(Magic)]) != Magic {
			return h, nil, fmt.Errorf("%w: not a valid tractography file", ErrFormat)
		}
		return h, nil, fmt.Errorf("%w: truncated header (%d of %d bytes)", ErrFormat, n, HeaderSize)
	}

	if err := binary.Read(bytes.NewReader(raw[:]), binary.LittleEndian, &h); err != nil {
		return h, nil, fmt.Errorf("%w: decoding header: %w", ErrFormat, err)
	}

	if !h.HasValidMagic() {
		return h, nil, fmt.Errorf("%w: not a valid tractography file", ErrFormat)
	}

	var warnings []string
	if h.HeaderSize != HeaderSize {
		warnings = append(warnings, fmt.Sprintf(
			"header size %d != %d, file may need byte order conversion", h.HeaderSize, HeaderSize))
	}

	if err := h.validate(); err != nil {
		return h, nil, err
	}

	return h, warnings, nil
}

// decodeTracks reads track records until end of stream or until the
// corruption guard trips.
func decodeTracks(r *bufio.Reader, h *Header) []FiberTrack {
	// n_count is not trusted for sizing; tracks grow as records arrive.
	var tracks []FiberTrack

	stride := h.PointStride()
	pointBuf := make([]byte, 4*stride)
	skip := 4 * int(h.NumProperties)

	var countBuf [4]byte
	for {
		if _, err := io.ReadFull(r, countBuf[:]); err != nil {
			break
		}

		count := binary.LittleEndian.Uint32(countBuf[:])
		if count == 0 || count > MaxTrackPoints {
			break
		}

		track, ok := decodeTrack(r, int(count), int(h.NumScalars), pointBuf)
		if !ok {
			break
		}
		tracks = append(tracks, track)

		if skip > 0 {
			// A short skip leaves the reader at EOF; the next count read ends the loop.
			_, _ = r.Discard(skip)
		}
	}

	return tracks
}

// decodeTrack reads count points. It reports false if the stream ends
// before the last point is complete. Memory grows with the points actually
// read, never with the declared count alone.
func decodeTrack(r io.Reader, count, numScalars int, buf []byte) (FiberTrack, bool) {
	track := make(FiberTrack, 0, min(count, initialTrackCap))

	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, false
		}

		p := TrackPoint{
			X: readFloat(buf, 0),
			Y: readFloat(buf, 1),
			Z: readFloat(buf, 2),
		}
		if numScalars > 0 {
			p.Scalars = make([]float32, numScalars)
			for s := range p.Scalars {
				p.Scalars[s] = readFloat(buf, 3+s)
			}
		}
		track = append(track, p)
	}

	return track, true
}

func readFloat(buf []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
}
