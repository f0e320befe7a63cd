package bigint

import (
	"encoding/binary"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/bigcalc/internal/digits"
)

// encodingVersion is stored in the high bits of the flag byte of the binary
// form so the layout can evolve.
const encodingVersion byte = 1

// MarshalBinary implements encoding.BinaryMarshaler. The layout is one flag
// byte (encoding version << 1 | sign) followed by the magnitude digits, least
// significant first, as 4-byte little-endian words.
func (x *Int) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 1+4*len(x.abs))
	buf[0] = encodingVersion << 1
	if x.neg {
		buf[0] |= 1
	}
	for i, d := range x.abs {
		binary.LittleEndian.PutUint32(buf[1+4*i:], d)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. z must not have
// been shared yet: this is the one place an Int is written after creation.
func (z *Int) UnmarshalBinary(buf []byte) error {
	if len(buf) == 0 || (len(buf)-1)%4 != 0 {
		return &ArgumentError{Op: "UnmarshalBinary", Err: ErrInvalidEncoding}
	}
	if v := buf[0] >> 1; v != encodingVersion {
		return &ArgumentError{Op: "UnmarshalBinary", Err: ErrUnsupportedEncoding}
	}
	abs := make(digits.Nat, (len(buf)-1)/4)
	for i := range abs {
		abs[i] = binary.LittleEndian.Uint32(buf[1+4*i:])
	}
	*z = *newInt(buf[0]&1 == 1, abs)
	return nil
}

// MarshalText implements encoding.TextMarshaler using radix 10.
func (x *Int) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	return x.appendText(nil, 10), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for radix 10.
func (z *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text), 10)
	if err != nil {
		return err
	}
	*z = *v
	return nil
}

// MarshalJSON implements json.Marshaler. Values are written as bare JSON
// numbers of arbitrary length.
func (x *Int) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte("null"), nil
	}
	return x.appendText(nil, 10), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a bare number, a
// quoted decimal string, or null (which leaves z unchanged).
func (z *Int) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if n := len(text); n >= 2 && text[0] == '"' && text[n-1] == '"' {
		text = text[1 : n-1]
	}
	return z.UnmarshalText(text)
}

var (
	_ msgpack.CustomEncoder = (*Int)(nil)
	_ msgpack.CustomDecoder = (*Int)(nil)
)

// EncodeMsgpack implements msgpack.CustomEncoder by writing the binary form
// as a msgpack bin value.
func (x *Int) EncodeMsgpack(enc *msgpack.Encoder) error {
	buf, err := x.MarshalBinary()
	if err != nil {
		return err
	}
	return enc.EncodeBytes(buf)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (z *Int) DecodeMsgpack(dec *msgpack.Decoder) error {
	buf, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	return z.UnmarshalBinary(buf)
}
