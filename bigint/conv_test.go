package bigint

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    string
		radix int
		want  string
	}{
		{"0", 10, "0"},
		{"-0", 10, "0"},
		{"+42", 10, "42"},
		{"-42", 10, "-42"},
		{"ff", 16, "255"},
		{"FF", 16, "255"},
		{"-1010", 2, "-10"},
		{"zz", 36, "1295"},
		{"000000000000000000000000000001", 10, "1"},
		{"123456789012345678901234567890", 10, "123456789012345678901234567890"},
		{"ffffffffffffffffffffffffffffffff", 16, "340282366920938463463374607431768211455"},
		{"777", 8, "511"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in, tt.radix)
		if err != nil {
			t.Fatalf("Parse(%q, %d): %v", tt.in, tt.radix, err)
		}
		checkValid(t, "Parse", got)
		if got.String() != tt.want {
			t.Errorf("Parse(%q, %d) = %s, want %s", tt.in, tt.radix, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		radix  int
		err    error
		offset int
	}{
		{"", 10, ErrInvalidDigit, 0},
		{"-", 10, ErrInvalidDigit, 1},
		{"12a", 10, ErrInvalidDigit, 2},
		{"102", 2, ErrInvalidDigit, 2},
		{"1 2", 10, ErrInvalidDigit, 1},
		{"--1", 10, ErrInvalidDigit, 1},
		{"0x10", 16, ErrInvalidDigit, 1},
		{"10", 1, ErrInvalidRadix, -1},
		{"10", 37, ErrInvalidRadix, -1},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in, tt.radix)
		if !errors.Is(err, tt.err) {
			t.Errorf("Parse(%q, %d) err = %v, want %v", tt.in, tt.radix, err, tt.err)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse(%q, %d) err is %T, want *ParseError", tt.in, tt.radix, err)
		}
		if pe.Offset != tt.offset {
			t.Errorf("Parse(%q, %d) offset = %d, want %d", tt.in, tt.radix, pe.Offset, tt.offset)
		}
	}
}

func TestText(t *testing.T) {
	t.Parallel()
	x := MustParse("-340282366920938463463374607431768211455", 10)
	tests := []struct {
		radix int
		want  string
	}{
		{2, "-" + string(make128Ones())},
		{16, "-ffffffffffffffffffffffffffffffff"},
		{36, "-f5lxx1zz5pnorynqglhzmsp33"},
		{10, "-340282366920938463463374607431768211455"},
	}
	for _, tt := range tests {
		got, err := x.Text(tt.radix)
		if err != nil || got != tt.want {
			t.Errorf("Text(%d) = %q, %v; want %q", tt.radix, got, err, tt.want)
		}
	}
	if _, err := x.Text(37); !errors.Is(err, ErrInvalidRadix) {
		t.Errorf("Text(37) err = %v", err)
	}
	if s, _ := new(Int).Text(7); s != "0" {
		t.Errorf("zero Text(7) = %q", s)
	}
}

func make128Ones() []byte {
	b := make([]byte, 128)
	for i := range b {
		b[i] = '1'
	}
	return b
}

// TestTextPadsInnerChunks checks values whose inner chunks contain leading
// zeros in every radix.
func TestTextPadsInnerChunks(t *testing.T) {
	t.Parallel()
	for radix := MinRadix; radix <= MaxRadix; radix++ {
		b := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(40), nil)
		b.Add(b, big.NewInt(1))
		x := FromBig(b)
		got, _ := x.Text(radix)
		if want := b.Text(radix); got != want {
			t.Errorf("radix %d: Text = %s, want %s", radix, got, want)
		}
	}
}

func TestRadixRoundTrip(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(71, 72))
	for i := range 400 {
		x := randInt(r, 10)
		radix := MinRadix + i%(MaxRadix-MinRadix+1)
		s, err := x.Text(radix)
		if err != nil {
			t.Fatal(err)
		}
		if want := x.ToBig().Text(radix); s != want {
			t.Fatalf("Text(%d) = %s, math/big gives %s", radix, s, want)
		}
		back, err := Parse(s, radix)
		if err != nil {
			t.Fatalf("Parse(%q, %d): %v", s, radix, err)
		}
		if !back.Equal(x) {
			t.Fatalf("round trip in radix %d: got %s, want %s", radix, back, x)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	x := NewInt64(-255)
	tests := []struct {
		format string
		want   string
	}{
		{"%d", "-255"},
		{"%v", "-255"},
		{"%x", "-ff"},
		{"%X", "-FF"},
		{"%b", "-11111111"},
		{"%o", "-377"},
		{"%6d", "  -255"},
	}
	for _, tt := range tests {
		if got := fmt.Sprintf(tt.format, x); got != tt.want {
			t.Errorf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
	if got := fmt.Sprintf("%+d", NewInt64(7)); got != "+7" {
		t.Errorf("Sprintf(%%+d) = %q", got)
	}
}

func FuzzParseText(f *testing.F) {
	f.Add("0", 10)
	f.Add("-123456789012345678901234567890", 10)
	f.Add("ZzZz", 36)
	f.Add("+1010101", 2)
	f.Add("", 16)

	f.Fuzz(func(t *testing.T, s string, radix int) {
		if len(s) > 2000 {
			return
		}
		x, err := Parse(s, radix)
		if err != nil {
			return
		}
		checkValid(t, "Parse", x)
		ref, ok := new(big.Int).SetString(s, radix)
		if ok && !sameAsBig(x, ref) {
			t.Fatalf("Parse(%q, %d) = %s, math/big gives %s", s, radix, x, ref)
		}
		out, err := x.Text(radix)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Parse(out, radix)
		if err != nil || !back.Equal(x) {
			t.Fatalf("re-parse of %q failed: %v, %v", out, back, err)
		}
	})
}
