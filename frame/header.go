// Package frame implements BFAST's framing layer (spec component C5):
// the fixed header, the interning table's on-wire form, and the
// LZ4-based compression envelope with magic-byte auto-detection.
package frame

import (
	"github.com/bfastfmt/bfast/cursor"
	"github.com/bfastfmt/bfast/errs"
	"github.com/bfastfmt/bfast/intern"
)

// MagicByte1 and MagicByte2 are the "BF" header magic octets that begin
// every uncompressed BFAST document.
const (
	MagicByte1 = 0x42 // 'B'
	MagicByte2 = 0x46 // 'F'
	magicWord  = uint16(MagicByte1)<<8 | uint16(MagicByte2)

	// Version is the only header version this codec emits or accepts.
	Version = 0x01

	// flagCompressionHint is informational only; actual framing
	// detection is always by magic bytes, never this bit.
	flagCompressionHint = 1 << 0

	// flagReservedMask covers the endianness bit (bit 1, spec §9 Open
	// Question 3) and the reserved bits 2-7. Decoders must reject any
	// header whose flags byte sets one of these.
	flagReservedMask = ^byte(flagCompressionHint)
)

// Header is the fixed 6-byte document header.
type Header struct {
	Flags       byte
	Version     byte
	InternCount uint16
}

// WriteHeaderAndTable writes the 6-byte header followed by the
// interning table entries, each as [len:u8][UTF-8 bytes].
func WriteHeaderAndTable(w *cursor.Writer, table *intern.Table, compressHint bool) error {
	if table.Len() > intern.MaxEntries {
		return errs.AtPath("", errs.ErrInternOverflow)
	}

	w.WriteU16BE(magicWord)

	var flags byte
	if compressHint {
		flags |= flagCompressionHint
	}
	w.WriteU8(flags)
	w.WriteU8(Version)
	w.WriteU16LE(uint16(table.Len())) //nolint:gosec

	for _, key := range table.Entries() {
		if len(key) > intern.MaxKeyLen {
			return errs.AtPath(key, errs.ErrKeyTooLong)
		}
		w.WriteU8(byte(len(key)))
		w.WriteString(key)
	}

	return nil
}

// ReadHeaderAndTable reads the 6-byte header and the interning table
// that follows it, returning the materialized table. The caller must
// have already determined (via magic-byte detection) that r begins
// with an uncompressed BFAST document.
func ReadHeaderAndTable(r *cursor.Reader) (*intern.Table, error) {
	magic, err := r.ReadU16BE()
	if err != nil {
		return nil, errs.AtOffset(r.Offset(), err)
	}
	if magic != magicWord {
		return nil, errs.AtOffset(r.Offset(), errs.ErrBadFraming)
	}

	flags, err := r.ReadU8()
	if err != nil {
		return nil, errs.AtOffset(r.Offset(), err)
	}
	if flags&flagReservedMask != 0 {
		return nil, errs.AtOffset(r.Offset(), errs.ErrBadVersion)
	}

	version, err := r.ReadU8()
	if err != nil {
		return nil, errs.AtOffset(r.Offset(), err)
	}
	if version != Version {
		return nil, errs.AtOffset(r.Offset(), errs.ErrBadVersion)
	}

	count, err := r.ReadU16LE()
	if err != nil {
		return nil, errs.AtOffset(r.Offset(), err)
	}

	entries := make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		n, err := r.ReadU8()
		if err != nil {
			return nil, errs.AtOffset(r.Offset(), err)
		}
		key, err := r.ReadUTF8(int(n))
		if err != nil {
			return nil, errs.AtOffset(r.Offset(), err)
		}
		entries = append(entries, key)
	}

	return intern.FromEntries(entries), nil
}
