package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/primes"
	"github.com/agbru/bigcalc/internal/session"
	"github.com/agbru/bigcalc/internal/ui"
)

// Version is the bigcalc release, overridden at link time with
// -ldflags "-X github.com/agbru/bigcalc/internal/app.Version=...".
var Version = "dev"

// RootCommand builds the command tree bound to a.
func (a *Application) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bigcalc",
		Short: "Arbitrary-precision integer calculator",
		Long: `bigcalc evaluates arithmetic, bitwise and number-theoretic operations on
integers of any size, searches for probable primes and converts between radixes.`,
		Version:       fmt.Sprintf("%s (bigint %s)", Version, bigint.Version),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.ErrOut)
	config.RegisterFlags(root.PersistentFlags(), &a.Config)

	root.AddCommand(
		a.evalCommand(),
		a.opsCommand(),
		a.primeCommand(),
		a.nextPrimeCommand(),
		a.primesCommand(),
		a.randomCommand(),
		a.convertCommand(),
		a.replCommand(),
		a.versionCommand(),
	)
	return root
}

func (a *Application) outputConfig(file string) cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: file,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Radix:      a.Config.OutputRadix,
	}
}

func (a *Application) env(crypto bool) calc.Env {
	env := calc.Env{Rounds: a.Config.Rounds}
	if crypto {
		env.Source = bigint.CryptoSource{}
	}
	return env
}

func (a *Application) operands(args []string) ([]*bigint.Int, error) {
	xs := make([]*bigint.Int, len(args))
	for i, s := range args {
		x, err := cli.ParseOperand(s, a.Config.Radix)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

// evaluate runs op under the spinner and honours the deadline of ctx.
func (a *Application) evaluate(ctx context.Context, op string, env calc.Env, args []*bigint.Int) ([]*bigint.Int, time.Duration, error) {
	start := time.Now()
	var results []*bigint.Int
	err := cli.WithSpinner(a.ErrOut, a.spinnerEnabled(), "computing "+op, func() error {
		var err error
		results, err = cli.Evaluate(ctx, a.Registry, op, env, args)
		return err
	})
	return results, time.Since(start), err
}

func (a *Application) evalCommand() *cobra.Command {
	var output string
	var crypto bool
	cmd := &cobra.Command{
		Use:   "eval <op> [operands...]",
		Short: "Evaluate one operation",
		Long: `Evaluate one operation on integer operands. Operands are parsed in the
input radix unless they carry a 0x, 0o or 0b prefix. Run "bigcalc ops" for the
list of operations.`,
		Example: `  bigcalc eval expmod 4 13 497
  bigcalc eval quorem -- -17 5
  bigcalc eval mul 0xffffffff 0xffffffff --output-radix 16`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return a.Registry.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op := strings.ToLower(args[0])
			return a.run(cmd.Context(), op, func(ctx context.Context) error {
				xs, err := a.operands(args[1:])
				if err != nil {
					return err
				}
				results, duration, err := a.evaluate(ctx, op, a.env(crypto), xs)
				if err != nil {
					return err
				}
				a.Logger.Debug("evaluated", logging.String("op", op), logging.Int("operands", len(xs)))
				return cli.DisplayResultWithConfig(a.Out, op, args[1:], results, duration, a.outputConfig(output))
			}, attribute.String("op", op), attribute.Int("operands", len(args)-1))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the full result to this file")
	cmd.Flags().BoolVar(&crypto, "crypto", false, "draw random values and witnesses from crypto/rand")
	return cmd
}

func (a *Application) opsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			pairs := make([][2]string, 0, len(a.Registry.List()))
			for _, name := range a.Registry.List() {
				op, err := a.Registry.Get(name)
				if err != nil {
					return err
				}
				pairs = append(pairs, [2]string{name, op.Usage})
			}
			fmt.Fprintln(a.Out, ui.RenderKeyValues(pairs))
			return nil
		},
	}
}

func (a *Application) primeCommand() *cobra.Command {
	var crypto bool
	cmd := &cobra.Command{
		Use:   "prime <n>",
		Short: "Test n for probable primality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), "isprime", func(ctx context.Context) error {
				xs, err := a.operands(args)
				if err != nil {
					return err
				}
				results, _, err := a.evaluate(ctx, "isprime", a.env(crypto), xs)
				if err != nil {
					return err
				}
				prime := results[0].Sign() != 0
				if a.Config.Quiet {
					fmt.Fprintln(a.Out, prime)
					return nil
				}
				verdict := ui.ColorRed() + "composite" + ui.ColorReset()
				if prime {
					verdict = ui.ColorGreen() + "probably prime" + ui.ColorReset()
				}
				fmt.Fprintf(a.Out, "%s is %s\n", cli.FormatValue(xs[0], a.Config.OutputRadix, a.Config.Verbose), verdict)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&crypto, "crypto", false, "draw witnesses from crypto/rand")
	return cmd
}

func (a *Application) nextPrimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "next-prime <n>",
		Short: "Print the smallest probable prime greater than n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), "nextprime", func(ctx context.Context) error {
				xs, err := a.operands(args)
				if err != nil {
					return err
				}
				results, duration, err := a.evaluate(ctx, "nextprime", calc.Env{}, xs)
				if err != nil {
					return err
				}
				return cli.DisplayResultWithConfig(a.Out, "nextprime", args, results, duration, a.outputConfig(""))
			})
		},
	}
}

func (a *Application) primesCommand() *cobra.Command {
	var from, to string
	var count int
	cmd := &cobra.Command{
		Use:   "primes",
		Short: "List probable primes in a range",
		Long: `List the probable primes in [from, to), or the count smallest probable primes
greater than from. Batches of the range are tested concurrently by --workers
goroutines.`,
		Example: `  bigcalc primes --from 1000 --to 1100
  bigcalc primes --from 0x10000000000000000 --count 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (to == "") == (count == 0) {
				return apperrors.ValidationError{Field: "primes", Message: "exactly one of --to and --count is required"}
			}
			return a.run(cmd.Context(), "primes", func(ctx context.Context) error {
				lo, err := cli.ParseOperand(from, a.Config.Radix)
				if err != nil {
					return err
				}
				scanner := primes.NewScanner(primes.Options{
					Workers: a.Config.Workers,
					Rounds:  a.Config.Rounds,
				}, a.Logger, a.Metrics)

				start := time.Now()
				var found []*bigint.Int
				err = cli.WithSpinner(a.ErrOut, a.spinnerEnabled(), "scanning", func() error {
					var serr error
					if count > 0 {
						found, serr = scanner.Next(ctx, lo, count)
						return serr
					}
					hi, serr := cli.ParseOperand(to, a.Config.Radix)
					if serr != nil {
						return serr
					}
					found, serr = scanner.Range(ctx, lo, hi)
					return serr
				})
				if err != nil {
					return err
				}

				if a.Config.Quiet {
					cli.DisplayQuietResult(a.Out, found, a.Config.OutputRadix)
					return nil
				}
				for _, p := range found {
					fmt.Fprintln(a.Out, cli.FormatValue(p, a.Config.OutputRadix, a.Config.Verbose))
				}
				fmt.Fprintf(a.Out, "%s%s probable prime(s) in %s%s\n", ui.ColorDim(),
					cli.FormatCount(len(found)), cli.FormatExecutionDuration(time.Since(start)), ui.ColorReset())
				return nil
			}, attribute.String("from", from), attribute.Int("count", count))
		},
	}
	cmd.Flags().StringVar(&from, "from", "2", "lower bound (inclusive with --to, exclusive with --count)")
	cmd.Flags().StringVar(&to, "to", "", "upper bound (exclusive)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of primes to list")
	return cmd
}

func (a *Application) randomCommand() *cobra.Command {
	var exact, prime, crypto bool
	cmd := &cobra.Command{
		Use:   "random <bits>",
		Short: "Print a uniformly random integer below 2^bits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), "random", func(ctx context.Context) error {
				xs, err := a.operands(args)
				if err != nil {
					return err
				}
				env := a.env(crypto)
				if !exact && !prime {
					results, duration, err := a.evaluate(ctx, "random", env, xs)
					if err != nil {
						return err
					}
					return cli.DisplayResultWithConfig(a.Out, "random", args, results, duration, a.outputConfig(""))
				}

				if !xs[0].IsInt64() || xs[0].Sign() < 0 {
					return apperrors.ValidationError{Field: "bits", Message: "must be a non-negative machine integer"}
				}
				bits, err := safecast.Conv[int](xs[0].Int64())
				if err != nil {
					return apperrors.ValidationError{Field: "bits", Message: err.Error()}
				}
				start := time.Now()
				x, err := bigint.Random(bits, true, env.Source)
				if err != nil {
					return err
				}
				op := "random"
				if prime && bits > 0 {
					// The top bit stays set, so the prime keeps the requested size
					// unless the search runs past 2^bits.
					op = "random-prime"
					results, _, err := a.evaluate(ctx, "nextprime", env, []*bigint.Int{x})
					if err != nil {
						return err
					}
					x = results[0]
				}
				return cli.DisplayResultWithConfig(a.Out, op, args, []*bigint.Int{x}, time.Since(start), a.outputConfig(""))
			})
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "force the top bit so the result has exactly bits bits")
	cmd.Flags().BoolVar(&prime, "prime", false, "return the next probable prime after an exact random start")
	cmd.Flags().BoolVar(&crypto, "crypto", false, "draw from crypto/rand")
	return cmd
}

func (a *Application) convertCommand() *cobra.Command {
	var toRadix int
	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert an integer between radixes",
		Example: `  bigcalc convert 0xdeadbeef
  bigcalc convert --radix 2 --to 36 101010`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("to") {
				if toRadix < bigint.MinRadix || toRadix > bigint.MaxRadix {
					return apperrors.NewConfigError("--to must be between %d and %d, got %d", bigint.MinRadix, bigint.MaxRadix, toRadix)
				}
				a.Config.OutputRadix = toRadix
			}
			return a.run(cmd.Context(), "convert", func(context.Context) error {
				xs, err := a.operands(args)
				if err != nil {
					return err
				}
				if a.Config.Quiet {
					cli.DisplayQuietResult(a.Out, xs, a.Config.OutputRadix)
					return nil
				}
				fmt.Fprintln(a.Out, cli.FormatValue(xs[0], a.Config.OutputRadix, true))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&toRadix, "to", 0, "target radix (default: --output-radix)")
	return cmd
}

func (a *Application) replCommand() *cobra.Command {
	var crypto bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := session.NewStore(a.Logger)
			if path := a.Config.SessionFile; path != "" {
				if _, err := os.Stat(path); err == nil {
					if err := store.Load(path); err != nil {
						return apperrors.WrapError(err, "loading session %s", path)
					}
					a.Logger.Info("session restored", logging.String("path", path), logging.Int("vars", store.Len()))
				}
			}
			repl := cli.NewREPL(a.Registry, store, cli.REPLConfig{
				Radix:       a.Config.Radix,
				OutputRadix: a.Config.OutputRadix,
				Timeout:     a.Config.Timeout,
				Verbose:     a.Config.Verbose,
				SessionFile: a.Config.SessionFile,
				Env:         a.env(crypto),
			}, a.Logger)
			repl.SetInput(a.In)
			repl.SetOutput(a.Out)
			repl.Start(cmd.Context())
			return nil
		},
	}
	cmd.Flags().BoolVar(&crypto, "crypto", false, "draw random values and witnesses from crypto/rand")
	return cmd
}

func (a *Application) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.Config.Quiet {
				fmt.Fprintln(a.Out, Version)
				return nil
			}
			fmt.Fprintln(a.Out, ui.RenderKeyValues([][2]string{
				{"bigcalc", Version},
				{"bigint", bigint.Version},
				{"go", runtime.Version()},
				{"platform", runtime.GOOS + "/" + runtime.GOARCH},
			}))
			return nil
		},
	}
}
