package bigint

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"
)

func TestConstructors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  *Int
		want string
	}{
		{"NewInt32_min", NewInt32(math.MinInt32), "-2147483648"},
		{"NewUint32_max", NewUint32(math.MaxUint32), "4294967295"},
		{"NewInt64_min", NewInt64(math.MinInt64), "-9223372036854775808"},
		{"NewInt64_zero", NewInt64(0), "0"},
		{"NewUint64_max", NewUint64(math.MaxUint64), "18446744073709551615"},
		{"zero_value", new(Int), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkValid(t, tt.name, tt.got)
			if s := tt.got.String(); s != tt.want {
				t.Errorf("String() = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestNoNegativeZero(t *testing.T) {
	t.Parallel()
	zero := new(Int)
	five := NewInt64(5)
	results := map[string]*Int{
		"Neg":     zero.Neg(),
		"Sub":     five.Sub(five),
		"Add":     NewInt64(-5).Add(five),
		"Mul":     NewInt64(-5).Mul(zero),
		"Parse":   MustParse("-0", 10),
		"Exp":     zero.Neg().Exp(3),
		"FromBig": FromBig(new(big.Int).Neg(new(big.Int))),
	}
	q, _, err := NewInt64(-3).QuoRem(NewInt64(7))
	if err != nil {
		t.Fatal(err)
	}
	_, r, err := NewInt64(-14).QuoRem(NewInt64(7))
	if err != nil {
		t.Fatal(err)
	}
	results["QuoRem.q"] = q
	results["QuoRem.r"] = r
	for name, x := range results {
		checkValid(t, name, x)
		if x.Sign() != 0 {
			t.Errorf("%s: Sign() = %d, want 0", name, x.Sign())
		}
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x               *Int
		zero, even, odd bool
		sign            int
	}{
		{new(Int), true, true, false, 0},
		{NewInt64(-3), false, false, true, -1},
		{NewInt64(4), false, true, false, 1},
		{MustParse("-18446744073709551616", 10), false, true, false, -1},
	}
	for _, tt := range tests {
		if tt.x.IsZero() != tt.zero || tt.x.IsEven() != tt.even || tt.x.IsOdd() != tt.odd || tt.x.Sign() != tt.sign {
			t.Errorf("%s: IsZero=%v IsEven=%v IsOdd=%v Sign=%d", tt.x,
				tt.x.IsZero(), tt.x.IsEven(), tt.x.IsOdd(), tt.x.Sign())
		}
	}
}

func TestNativeTruncation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in    string
		i32   int32
		i64   int64
		u64   uint64
		isI64 bool
		isU64 bool
	}{
		{"0", 0, 0, 0, true, true},
		{"-1", -1, -1, math.MaxUint64, true, false},
		{"4294967296", 0, 4294967296, 4294967296, true, true},
		{"-9223372036854775808", 0, math.MinInt64, 1 << 63, true, false},
		{"9223372036854775808", 0, math.MinInt64, 1 << 63, false, true},
		{"18446744073709551617", 1, 1, 1, false, false},
		{"-18446744073709551617", -1, -1, math.MaxUint64, false, false},
	}
	for _, tt := range tests {
		x := MustParse(tt.in, 10)
		want := new(big.Int)
		want.SetString(tt.in, 10)
		if got := x.Int32(); got != tt.i32 {
			t.Errorf("%s.Int32() = %d, want %d", tt.in, got, tt.i32)
		}
		if got := x.Int64(); got != tt.i64 {
			t.Errorf("%s.Int64() = %d, want %d", tt.in, got, tt.i64)
		}
		if got := x.Uint64(); got != tt.u64 {
			t.Errorf("%s.Uint64() = %d, want %d", tt.in, got, tt.u64)
		}
		if got := x.IsInt64(); got != tt.isI64 || got != want.IsInt64() {
			t.Errorf("%s.IsInt64() = %v, want %v", tt.in, got, tt.isI64)
		}
		if got := x.IsUint64(); got != tt.isU64 || got != want.IsUint64() {
			t.Errorf("%s.IsUint64() = %v, want %v", tt.in, got, tt.isU64)
		}
	}
}

func TestBytes(t *testing.T) {
	t.Parallel()
	x := MustParse("-1234567890abcdef01", 16)
	want := []byte{0x12, 0x34, 0x56, 0x78, 0x90, 0xab, 0xcd, 0xef, 0x01}
	if got := x.Bytes(); string(got) != string(want) {
		t.Errorf("Bytes() = %x, want %x", got, want)
	}
	if got := new(Int).Bytes(); len(got) != 0 {
		t.Errorf("zero Bytes() = %x, want empty", got)
	}
}

func TestFillBytes(t *testing.T) {
	t.Parallel()
	x := MustParse("1234567890abcdef01", 16)

	buf := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	n, err := x.FillBytes(buf)
	if err != nil || n != 9 {
		t.Fatalf("FillBytes(12) = %d, %v", n, err)
	}
	if got, want := fmt.Sprintf("%x", buf), "0000001234567890abcdef01"; got != want {
		t.Errorf("FillBytes(12) = %s, want %s", got, want)
	}

	short := make([]byte, 4)
	n, err = x.FillBytes(short)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("FillBytes(4) err = %v, want ErrBufferTooSmall", err)
	}
	if n != 4 || short[0] != 0x90 || short[3] != 0x01 {
		t.Errorf("FillBytes(4) = %d, %x; want the low-order bytes 90abcdef01", n, short)
	}
}

func TestBit(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0", "1", "-1", "-6", "123456789012345678901234567890", "-4294967296"} {
		x := MustParse(s, 10)
		ref := x.ToBig()
		for i := 0; i < 140; i++ {
			if got, want := x.Bit(i), ref.Bit(i); got != want {
				t.Fatalf("%s.Bit(%d) = %d, want %d", s, i, got, want)
			}
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	t.Parallel()
	x := MustParse("340282366920938463463374607431768211457", 10)
	c := x.Clone()
	c.abs[0] = 0
	if x.abs[0] == 0 {
		t.Fatal("Clone shares its digit buffer")
	}
	for name, y := range map[string]*Int{"Abs": x.Abs(), "Neg": x.Neg()} {
		y.abs[0]++
		if !x.Equal(MustParse("340282366920938463463374607431768211457", 10)) {
			t.Fatalf("%s shares its digit buffer", name)
		}
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	vals := []string{"-100000000000000000000", "-5", "-1", "0", "1", "5", "100000000000000000000"}
	for i, a := range vals {
		for j, b := range vals {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := MustParse(a, 10).Cmp(MustParse(b, 10)); got != want {
				t.Errorf("Cmp(%s, %s) = %d, want %d", a, b, got, want)
			}
		}
	}
	if NewInt64(-7).CmpAbs(NewInt64(5)) != 1 {
		t.Error("CmpAbs(-7, 5) should be +1")
	}
}
