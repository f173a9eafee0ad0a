package codec

import (
	"github.com/bfastfmt/bfast/cursor"
	"github.com/bfastfmt/bfast/errs"
	"github.com/bfastfmt/bfast/internal/options"
	"github.com/bfastfmt/bfast/intern"
	"github.com/bfastfmt/bfast/tag"
	"github.com/bfastfmt/bfast/value"
)

// MaxDecodedValues bounds the total number of values a single document
// may decode to, independent of any individual length prefix. Decoders
// must not pre-allocate containers from an attacker-controlled length
// prefix; this running counter is the actual resource guard.
const MaxDecodedValues = 16 * 1024 * 1024

// Decoder reads a single BFAST payload (tag + body, no header or
// interning table) from a cursor.Reader, resolving object keys against
// an already-materialized interning table.
type Decoder struct {
	r           *cursor.Reader
	table       *intern.Table
	decoded     int
	maxDepth    int
	maxElements int
}

// NewDecoder creates a Decoder reading from r, resolving object keys
// against table. By default it enforces MaxDepth and MaxDecodedValues;
// WithMaxDepth and WithMaxElements override either bound.
func NewDecoder(r *cursor.Reader, table *intern.Table, opts ...DecodeOption) *Decoder {
	d := &Decoder{r: r, table: table, maxDepth: MaxDepth, maxElements: MaxDecodedValues}
	_ = options.Apply(d, opts...)

	return d
}

// Decode reads exactly one top-level value. It does not check for
// trailing garbage; callers (the frame package) do that after Decode
// returns, per spec §4.5.
func (d *Decoder) Decode() (value.Value, error) {
	return d.decode(0)
}

func (d *Decoder) decode(depth int) (value.Value, error) {
	if depth > d.maxDepth {
		return value.Value{}, errs.AtOffset(d.r.Offset(), errs.ErrDepthExceeded)
	}

	d.decoded++
	if d.decoded > d.maxElements {
		return value.Value{}, errs.AtOffset(d.r.Offset(), errs.ErrResourceLimit)
	}

	b, err := d.r.ReadU8()
	if err != nil {
		return value.Value{}, errs.AtOffset(d.r.Offset(), err)
	}

	fam := tag.Classify(b)
	switch fam {
	case tag.FamilyNull:
		return value.Null(), nil
	case tag.FamilyBool:
		return value.Bool(b == tag.BoolTrue), nil
	case tag.FamilySmallInt:
		return value.Int64(tag.SmallIntValue(b)), nil
	case tag.FamilyInt64:
		i, err := d.r.ReadI64LE()
		if err != nil {
			return value.Value{}, errs.AtOffset(d.r.Offset(), err)
		}

		return value.Int64(i), nil
	case tag.FamilyFloat64:
		f, err := d.r.ReadF64LE()
		if err != nil {
			return value.Value{}, errs.AtOffset(d.r.Offset(), err)
		}

		return value.Float64(f), nil
	case tag.FamilyString:
		s, err := d.decodeString()
		if err != nil {
			return value.Value{}, err
		}

		return value.String(s), nil
	case tag.FamilyBytes:
		bs, err := d.decodeBytes()
		if err != nil {
			return value.Value{}, err
		}

		return value.Bytes(bs), nil
	case tag.FamilyList:
		return d.decodeList(depth)
	case tag.FamilyFloatArray:
		return d.decodeFloatArray()
	case tag.FamilyObjectStart:
		return d.decodeObject(depth)
	case tag.FamilyObjectEnd:
		return value.Value{}, errs.AtOffset(d.r.Offset(), errs.ErrUnterminatedObject)
	case tag.FamilyTimestamp:
		s, err := d.decodeString()
		if err != nil {
			return value.Value{}, err
		}

		return value.Timestamp(s), nil
	case tag.FamilyDate:
		s, err := d.decodeString()
		if err != nil {
			return value.Value{}, err
		}

		return value.Date(s), nil
	case tag.FamilyTime:
		s, err := d.decodeString()
		if err != nil {
			return value.Value{}, err
		}

		return value.Time(s), nil
	case tag.FamilyUUID:
		return d.decodeUUID()
	case tag.FamilyDecimal:
		return d.decodeDecimal()
	default:
		return value.Value{}, errs.AtOffset(d.r.Offset(), errs.ErrUnknownTag)
	}
}

func (d *Decoder) readLength() (int, error) {
	n, err := d.r.ReadU32LE()
	if err != nil {
		return 0, errs.AtOffset(d.r.Offset(), err)
	}

	return int(n), nil
}

func (d *Decoder) decodeString() (string, error) {
	n, err := d.readLength()
	if err != nil {
		return "", err
	}

	s, err := d.r.ReadUTF8(n)
	if err != nil {
		return "", errs.AtOffset(d.r.Offset(), err)
	}

	return s, nil
}

func (d *Decoder) decodeBytes() ([]byte, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	b, err := d.r.ReadBytes(n)
	if err != nil {
		return nil, errs.AtOffset(d.r.Offset(), err)
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out, nil
}

func (d *Decoder) decodeList(depth int) (value.Value, error) {
	n, err := d.readLength()
	if err != nil {
		return value.Value{}, err
	}

	items := make([]value.Value, 0, minInt(n, 1024))
	for i := 0; i < n; i++ {
		v, err := d.decode(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}

	return value.List(items...), nil
}

func (d *Decoder) decodeFloatArray() (value.Value, error) {
	n, err := d.readLength()
	if err != nil {
		return value.Value{}, err
	}

	fs := make([]float64, 0, minInt(n, 1024))
	for i := 0; i < n; i++ {
		f, err := d.r.ReadF64LE()
		if err != nil {
			return value.Value{}, errs.AtOffset(d.r.Offset(), err)
		}
		fs = append(fs, f)
	}

	return value.FloatArray(fs), nil
}

// decodeObject reads key/value pairs until the 0x7F sentinel, applying
// last-occurrence-wins semantics for duplicate keys per spec §4.4.
func (d *Decoder) decodeObject(depth int) (value.Value, error) {
	obj := value.NewObject()

	for {
		b, err := d.r.PeekU8()
		if err != nil {
			return value.Value{}, errs.AtOffset(d.r.Offset(), errs.ErrUnterminatedObject)
		}
		if b == tag.ObjectEnd {
			_, _ = d.r.ReadU8()
			break
		}

		id, err := d.r.ReadU32LE()
		if err != nil {
			return value.Value{}, errs.AtOffset(d.r.Offset(), err)
		}
		key, err := d.table.Lookup(id)
		if err != nil {
			return value.Value{}, errs.AtOffset(d.r.Offset(), err)
		}

		v, err := d.decode(depth + 1)
		if err != nil {
			return value.Value{}, err
		}

		obj.Append(key, v)
	}

	return value.Obj(obj), nil
}

func (d *Decoder) decodeUUID() (value.Value, error) {
	hex, err := d.decodeString()
	if err != nil {
		return value.Value{}, err
	}
	canonical, err := uuidHexToCanonical(hex)
	if err != nil {
		return value.Value{}, errs.AtOffset(d.r.Offset(), err)
	}

	return value.UUID(canonical), nil
}

func (d *Decoder) decodeDecimal() (value.Value, error) {
	s, err := d.decodeString()
	if err != nil {
		return value.Value{}, err
	}
	if !value.ValidDecimal(s) {
		return value.Value{}, errs.AtOffset(d.r.Offset(), errs.ErrBadDecimal)
	}

	return value.Decimal(s), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
