package primes

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/logging"
)

// sieve returns the primes below n.
func sieve(n int) []int64 {
	composite := make([]bool, n)
	var out []int64
	for i := 2; i < n; i++ {
		if composite[i] {
			continue
		}
		out = append(out, int64(i))
		for j := i * i; j < n; j += i {
			composite[j] = true
		}
	}
	return out
}

type countingCounter struct {
	mu         sync.Mutex
	candidates int
	found      int
}

func (c *countingCounter) AddPrimeCandidates(n int) {
	c.mu.Lock()
	c.candidates += n
	c.mu.Unlock()
}

func (c *countingCounter) AddPrimesFound(n int) {
	c.mu.Lock()
	c.found += n
	c.mu.Unlock()
}

func toInt64s(xs []*bigint.Int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = x.Int64()
	}
	return out
}

func equalInt64s(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRangeMatchesSieve(t *testing.T) {
	t.Parallel()
	want := sieve(5000)
	tests := []struct {
		name string
		opts Options
	}{
		{"defaults", Options{}},
		{"single worker", Options{Workers: 1, BatchSize: 100}},
		{"tiny batches", Options{Workers: 4, BatchSize: 7}},
		{"explicit rounds", Options{Workers: 3, BatchSize: 333, Rounds: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			counter := &countingCounter{}
			s := NewScanner(tt.opts, nil, counter)
			got, err := s.Range(context.Background(), bigint.NewInt64(-100), bigint.NewInt64(5000))
			if err != nil {
				t.Fatalf("Range error: %v", err)
			}
			if !equalInt64s(toInt64s(got), want) {
				t.Fatalf("Range found %d primes, want %d", len(got), len(want))
			}
			if counter.found != len(want) {
				t.Errorf("counter.found = %d, want %d", counter.found, len(want))
			}
			// 2 plus the 2499 odd integers in [3, 5000).
			if counter.candidates != 1+2499 {
				t.Errorf("counter.candidates = %d, want %d", counter.candidates, 1+2499)
			}
		})
	}
}

func TestRangeBounds(t *testing.T) {
	t.Parallel()
	s := NewScanner(Options{Workers: 2, BatchSize: 4}, nil, nil)
	tests := []struct {
		from, to int64
		want     []int64
	}{
		{11, 11, nil},
		{11, 12, []int64{11}},
		{12, 13, nil},
		{0, 3, []int64{2}},
		{-5, 2, nil},
		{90, 110, []int64{97, 101, 103, 107, 109}},
	}
	for _, tt := range tests {
		got, err := s.Range(context.Background(), bigint.NewInt64(tt.from), bigint.NewInt64(tt.to))
		if err != nil {
			t.Fatalf("Range(%d, %d) error: %v", tt.from, tt.to, err)
		}
		if !equalInt64s(toInt64s(got), tt.want) {
			t.Errorf("Range(%d, %d) = %v, want %v", tt.from, tt.to, toInt64s(got), tt.want)
		}
	}

	if _, err := s.Range(context.Background(), bigint.NewInt64(10), bigint.NewInt64(9)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range error = %v, want ErrInvalidRange", err)
	}
}

func TestNext(t *testing.T) {
	t.Parallel()
	s := NewScanner(Options{Workers: 2, BatchSize: 8}, nil, nil)
	tests := []struct {
		from  int64
		count int
		want  []int64
	}{
		{0, 3, []int64{2, 3, 5}},
		{-1000, 1, []int64{2}},
		{7, 2, []int64{11, 13}},
		{9973, 1, []int64{10007}},
		{100, 0, []int64{}},
	}
	for _, tt := range tests {
		got, err := s.Next(context.Background(), bigint.NewInt64(tt.from), tt.count)
		if err != nil {
			t.Fatalf("Next(%d, %d) error: %v", tt.from, tt.count, err)
		}
		if !equalInt64s(toInt64s(got), tt.want) {
			t.Errorf("Next(%d, %d) = %v, want %v", tt.from, tt.count, toInt64s(got), tt.want)
		}
	}
	if _, err := s.Next(context.Background(), bigint.NewInt64(1), -1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("negative count error = %v, want ErrInvalidRange", err)
	}
}

func TestNextAgreesWithNextProbablePrime(t *testing.T) {
	t.Parallel()
	from := bigint.MustParse("18446744073709551557", 10) // largest prime below 2^64
	s := NewScanner(Options{Workers: 4, BatchSize: 16}, nil, nil)
	got, err := s.Next(context.Background(), from, 3)
	if err != nil {
		t.Fatal(err)
	}
	x := from
	for i, p := range got {
		x = x.NextProbablePrime()
		if !p.Equal(x) {
			t.Errorf("Next[%d] = %s, NextProbablePrime chain gives %s", i, p, x)
		}
	}
}

func TestRangeCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewScanner(Options{Workers: 2, BatchSize: 64}, nil, nil)
	_, err := s.Range(ctx, bigint.NewInt64(0), bigint.NewInt64(100000))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Range with canceled context = %v, want context.Canceled", err)
	}
	if _, err := s.Next(ctx, bigint.NewInt64(0), 5); !errors.Is(err, context.Canceled) {
		t.Errorf("Next with canceled context = %v, want context.Canceled", err)
	}
}

func TestRangeDeadlineOnWideRange(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s := NewScanner(Options{Workers: 2, BatchSize: 64}, nil, nil)

	start := time.Now()
	_, err := s.Range(ctx, bigint.NewInt64(0), bigint.NewInt64(1<<40))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Range over [0, 2^40) = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Range returned %v after the deadline expired", elapsed)
	}
}

func TestScannerLogs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := logging.NewLevelLogger(&buf, "primes", "debug")
	if err != nil {
		t.Fatal(err)
	}
	s := NewScanner(Options{Workers: 1, BatchSize: 50}, logger, nil)
	if _, err := s.Range(context.Background(), bigint.NewInt64(0), bigint.NewInt64(100)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"batch scanned", "range scan complete", `"found":25`, `"component":"primes"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output should contain %s, got: %s", want, out)
		}
	}
}
