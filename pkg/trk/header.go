// Package trk provides a reader and writer for TrackVis tractography (.trk) files.
package trk

import (
	"bytes"
	"fmt"
	"strings"
)

// HeaderSize is the fixed size of a TRK header in bytes. Track records always
// start at this offset regardless of the declared hdr_size field.
const HeaderSize = 1000

// Magic is the tag expected at the start of every TRK file. Only these 5
// bytes are compared; the sixth magic byte is padding.
const Magic = "TRACK"

// Header is the on-disk TRK header. Field order and widths match the file
// layout exactly so it can be read with encoding/binary.
type Header struct {
	Magic         [6]byte
	Dim           [3]uint16
	VoxelSize     [3]float32
	Origin        [3]float32
	NumScalars    uint16
	ScalarName    [10][20]byte
	NumProperties uint16
	PropertyName  [10][20]byte
	VoxToRAS      [4][4]float32
	Reserved      [444]byte
	VoxelOrder    [4]byte
	Pad2          [4]byte

	ImageOrientationPatient [6]float32

	Pad1    [2]byte
	InvertX uint8
	InvertY uint8
	InvertZ uint8
	SwapXY  uint8
	SwapYZ  uint8
	SwapZX  uint8

	NumTracks  uint32 // n_count; 0 means unknown
	Version    uint32
	HeaderSize uint32 // hdr_size; expected to be 1000
}

// NewHeader returns a valid version 2 header for the given volume.
func NewHeader(dim [3]uint16, voxelSize [3]float32) Header {
	h := Header{
		Dim:        dim,
		VoxelSize:  voxelSize,
		Version:    2,
		HeaderSize: HeaderSize,
	}
	copy(h.Magic[:], Magic)
	copy(h.VoxelOrder[:], "LPS")
	for i := 0; i < 4; i++ {
		h.VoxToRAS[i][i] = 1
	}
	return h
}

// HasValidMagic reports whether the first 5 magic bytes equal "TRACK".
func (h *Header) HasValidMagic() bool {
	return string(h.Magic[:len(Magic)]) == Magic
}

// MagicString returns the magic tag without padding.
func (h *Header) MagicString() string {
	return cString(h.Magic[:])
}

// VoxelOrderString returns the voxel order, e.g. "LPS".
func (h *Header) VoxelOrderString() string {
	return cString(h.VoxelOrder[:])
}

// ScalarNames returns the declared per-point scalar names.
func (h *Header) ScalarNames() []string {
	return names(h.ScalarName[:], int(h.NumScalars))
}

// PropertyNames returns the declared per-track property names.
func (h *Header) PropertyNames() []string {
	return names(h.PropertyName[:], int(h.NumProperties))
}

// PointStride returns the number of float32 values stored per point.
func (h *Header) PointStride() int {
	return 3 + int(h.NumScalars)
}

// validate checks the volume geometry fields.
func (h *Header) validate() error {
	if h.Dim[0] == 0 || h.Dim[1] == 0 || h.Dim[2] == 0 {
		return fmt.Errorf("%w: invalid volume dimensions %dx%dx%d",
			ErrHeaderValidation, h.Dim[0], h.Dim[1], h.Dim[2])
	}
	if !(h.VoxelSize[0] > 0 && h.VoxelSize[1] > 0 && h.VoxelSize[2] > 0) {
		return fmt.Errorf("%w: invalid voxel size %gx%gx%g",
			ErrHeaderValidation, h.VoxelSize[0], h.VoxelSize[1], h.VoxelSize[2])
	}
	return nil
}

// Summary returns a multi-line description of the header.
func (h *Header) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Magic:         %s\n", h.MagicString())
	fmt.Fprintf(&b, "Dimensions:    %d x %d x %d\n", h.Dim[0], h.Dim[1], h.Dim[2])
	fmt.Fprintf(&b, "Voxel size:    %g x %g x %g\n", h.VoxelSize[0], h.VoxelSize[1], h.VoxelSize[2])
	fmt.Fprintf(&b, "Origin:        %g, %g, %g\n", h.Origin[0], h.Origin[1], h.Origin[2])
	fmt.Fprintf(&b, "Voxel order:   %s\n", h.VoxelOrderString())
	fmt.Fprintf(&b, "Tracks (hdr):  %d\n", h.NumTracks)
	fmt.Fprintf(&b, "Version:       %d\n", h.Version)
	fmt.Fprintf(&b, "Scalars:       %d %v\n", h.NumScalars, h.ScalarNames())
	fmt.Fprintf(&b, "Properties:    %d %v\n", h.NumProperties, h.PropertyNames())
	fmt.Fprintf(&b, "Header size:   %d\n", h.HeaderSize)
	return b.String()
}

// names extracts up to n NUL-terminated strings from fixed 20-byte slots.
// Counts above the slot count are clamped.
func names(slots [][20]byte, n int) []string {
	n = min(n, len(slots))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, cString(slots[i][:]))
	}
	return out
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
