// Package primes searches integer ranges for probable primes, splitting the
// range into batches tested concurrently under a bounded errgroup.
package primes

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/logging"
)

// DefaultBatchSize is the number of consecutive integers one worker tests
// before reporting back.
const DefaultBatchSize = 512

// ErrInvalidRange is returned when the upper bound lies below the lower one
// or a negative count is requested.
var ErrInvalidRange = errors.New("primes: invalid range")

// Options configures a Scanner.
type Options struct {
	// Workers bounds the number of concurrent batches. Zero uses GOMAXPROCS.
	Workers int
	// BatchSize is the number of integers per batch. Zero uses DefaultBatchSize.
	BatchSize int
	// Rounds is the number of random Miller-Rabin bases per candidate. Zero
	// selects the engine's size-dependent default.
	Rounds int
	// Source feeds the random bases. It is shared by all workers and must be
	// safe for concurrent use; nil selects the engine default.
	Source bigint.RandomSource
}

// Counter receives candidate and hit counts. *metrics.Metrics satisfies it.
type Counter interface {
	AddPrimeCandidates(n int)
	AddPrimesFound(n int)
}

// Scanner finds probable primes in ranges of integers.
type Scanner struct {
	opts    Options
	logger  logging.Logger
	counter Counter
}

// NewScanner returns a Scanner. logger and counter may be nil.
func NewScanner(opts Options, logger logging.Logger, counter Counter) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scanner{opts: opts, logger: logger, counter: counter}
}

// isPrime applies the configured primality policy to one candidate.
func (s *Scanner) isPrime(x *bigint.Int) bool {
	if s.opts.Rounds == 0 && s.opts.Source == nil {
		return x.IsProbablePrime()
	}
	rounds := s.opts.Rounds
	if rounds == 0 {
		rounds = bigint.WitnessRounds(x.BitLen())
	}
	return x.ProbablyPrime(rounds, s.opts.Source)
}

// scanBatch tests the n integers starting at lo and returns the probable
// primes in increasing order together with the number of candidates tested.
func (s *Scanner) scanBatch(ctx context.Context, lo *bigint.Int, n int) ([]*bigint.Int, int, error) {
	var found []*bigint.Int
	tested := 0
	one := bigint.NewInt64(1)
	two := bigint.NewInt64(2)
	x := lo
	for i := 0; i < n; i, x = i+1, x.Add(one) {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, tested, err
			}
		}
		if x.IsEven() && !x.Equal(two) {
			continue
		}
		tested++
		if s.isPrime(x) {
			found = append(found, x)
		}
	}
	return found, tested, nil
}

// Range returns every probable prime p with from <= p < to, in increasing
// order. Values below 2 are skipped.
func (s *Scanner) Range(ctx context.Context, from, to *bigint.Int) ([]*bigint.Int, error) {
	if to.Cmp(from) < 0 {
		return nil, ErrInvalidRange
	}
	if two := bigint.NewInt64(2); from.Cmp(two) < 0 {
		from = two
	}
	if to.Cmp(from) <= 0 {
		return nil, nil
	}

	start := time.Now()
	batch := bigint.NewInt64(int64(s.opts.BatchSize))

	// Batches are issued as workers free up, so the plan never outgrows the
	// worker limit. Each goroutine owns its slot, so slots needs no locking.
	var slots []*[]*bigint.Int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for lo := from; lo.Cmp(to) < 0; lo = lo.Add(batch) {
		if gctx.Err() != nil {
			break
		}
		size := s.opts.BatchSize
		if rest := to.Sub(lo); rest.Cmp(batch) < 0 {
			size = int(rest.Int64())
		}
		i, slot := len(slots), new([]*bigint.Int)
		slots = append(slots, slot)
		g.Go(func() error {
			found, tested, err := s.scanBatch(gctx, lo, size)
			if s.counter != nil {
				s.counter.AddPrimeCandidates(tested)
				s.counter.AddPrimesFound(len(found))
			}
			if err != nil {
				return err
			}
			*slot = found
			s.logger.Debug("batch scanned",
				logging.Int("batch", i), logging.Int("tested", tested), logging.Int("found", len(found)))
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.logger.Error("range scan aborted", err, logging.String("from", from.String()))
		return nil, err
	}

	var primes []*bigint.Int
	for _, slot := range slots {
		primes = append(primes, *slot...)
	}
	s.logger.Info("range scan complete",
		logging.String("from", from.String()),
		logging.String("to", to.String()),
		logging.Int("batches", len(slots)),
		logging.Int("found", len(primes)),
		logging.Float64("seconds", time.Since(start).Seconds()))
	return primes, nil
}

// Next returns the count smallest probable primes strictly greater than
// from, in increasing order. It scans consecutive windows of
// Workers*BatchSize integers until enough primes are found.
func (s *Scanner) Next(ctx context.Context, from *bigint.Int, count int) ([]*bigint.Int, error) {
	if count < 0 {
		return nil, ErrInvalidRange
	}
	window := bigint.NewInt64(int64(s.opts.Workers) * int64(s.opts.BatchSize))
	lo := from.Add(bigint.NewInt64(1))
	if two := bigint.NewInt64(2); lo.Cmp(two) < 0 {
		lo = two
	}
	primes := make([]*bigint.Int, 0, count)
	for len(primes) < count {
		hi := lo.Add(window)
		found, err := s.Range(ctx, lo, hi)
		if err != nil {
			return nil, err
		}
		primes = append(primes, found...)
		lo = hi
	}
	return primes[:count], nil
}
