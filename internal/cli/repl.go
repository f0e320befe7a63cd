// Package cli provides the interactive REPL and the result presentation
// helpers of the bigcalc command-line interface.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/session"
	"github.com/agbru/bigcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Radix is the radix unprefixed operands are parsed in.
	Radix int
	// OutputRadix is the radix results are printed in.
	OutputRadix int
	// Timeout is the maximum duration for each evaluation. Zero disables it.
	Timeout time.Duration
	// Verbose prints results in full.
	Verbose bool
	// SessionFile is the default path for save and load.
	SessionFile string
	// Env is passed to every evaluation.
	Env calc.Env
}

// REPL represents an interactive calculator session.
type REPL struct {
	config   REPLConfig
	registry *calc.Registry
	store    *session.Store
	logger   logging.Logger
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: The operations available to the session.
//   - store: The variables of the session.
//   - config: REPL configuration.
//   - logger: Receives diagnostics; may be nil.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry *calc.Registry, store *session.Store, config REPLConfig, logger logging.Logger) *REPL {
	if config.Radix == 0 {
		config.Radix = 10
	}
	if config.OutputRadix == 0 {
		config.OutputRadix = 10
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &REPL{
		config:   config,
		registry: registry,
		store:    store,
		logger:   logger,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until exit, EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	fmt.Fprintln(r.out, ui.RenderBanner("bigcalc - interactive mode",
		"Arbitrary-precision integer arithmetic.",
		"Type help for the list of commands."))

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nInterrupted.")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"big> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			DisplayError(r.out, fmt.Errorf("read: %w", err))
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(ctx, line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <args...>%s       - Evaluate an operation, result bound to $_\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sset <name> <expr>%s    - Bind a value or an operation result to $name\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sget <name>%s           - Print a variable\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdel <name>%s           - Remove a variable\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %svars%s                 - List variables\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssave [file]%s          - Save variables\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sload [file]%s          - Load variables\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sradix [in] [out]%s     - Show or change the input and output radix\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sops%s                  - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                 - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s          - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "Operands are integers in the input radix, 0x/0o/0b literals or $variables.\n")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	case "ops", "list", "ls":
		r.cmdOps()
	case "vars":
		r.cmdVars()
	case "get":
		r.cmdGet(args)
	case "set", "let":
		r.cmdSet(ctx, args)
	case "del", "unset":
		r.cmdDel(args)
	case "save":
		r.cmdSave(args)
	case "load":
		r.cmdLoad(args)
	case "radix":
		r.cmdRadix(args)
	default:
		if _, err := r.registry.Get(cmd); err == nil {
			r.evaluate(ctx, cmd, args)
			return true
		}
		if len(args) == 0 {
			// A bare operand is echoed, which doubles as radix conversion.
			if x, err := r.operand(parts[0]); err == nil {
				r.bindLast(x)
				r.printValue("", x)
				return true
			}
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// operand resolves a $variable or parses a literal.
func (r *REPL) operand(tok string) (*bigint.Int, error) {
	if name, ok := strings.CutPrefix(tok, "$"); ok {
		x, found := r.store.Get(name)
		if !found {
			return nil, fmt.Errorf("undefined variable %q", name)
		}
		return x, nil
	}
	return ParseOperand(tok, r.config.Radix)
}

func (r *REPL) operands(toks []string) ([]*bigint.Int, error) {
	xs := make([]*bigint.Int, len(toks))
	for i, tok := range toks {
		x, err := r.operand(tok)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

// run evaluates op over the given tokens under the configured timeout.
func (r *REPL) run(ctx context.Context, op string, toks []string) ([]*bigint.Int, time.Duration, error) {
	args, err := r.operands(toks)
	if err != nil {
		return nil, 0, err
	}
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	start := time.Now()
	results, err := Evaluate(ctx, r.registry, op, r.config.Env, args)
	duration := time.Since(start)
	if err != nil {
		r.logger.Debug("evaluation failed", logging.String("op", op), logging.Err(err))
		return nil, duration, err
	}
	return results, duration, nil
}

func (r *REPL) evaluate(ctx context.Context, op string, toks []string) {
	results, duration, err := r.run(ctx, op, toks)
	if err != nil {
		DisplayError(r.out, err)
		return
	}
	r.bindLast(results[0])
	DisplayResult(r.out, op, results, duration, OutputConfig{
		Radix:   r.config.OutputRadix,
		Verbose: r.config.Verbose,
	})
}

func (r *REPL) bindLast(x *bigint.Int) {
	// LastResult is always a valid name.
	_ = r.store.Set(session.LastResult, x)
}

func (r *REPL) printValue(name string, x *bigint.Int) {
	label := ""
	if name != "" {
		label = fmt.Sprintf("%s$%s%s = ", ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintf(r.out, "%s%s%s%s\n", label, ui.ColorGreen(), FormatValue(x, r.config.OutputRadix, r.config.Verbose), ui.ColorReset())
}

func (r *REPL) cmdOps() {
	for _, name := range r.registry.List() {
		op, err := r.registry.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.out, "  %s%-10s%s %s\n", ui.ColorCyan(), name, ui.ColorReset(), op.Usage)
	}
}

func (r *REPL) cmdVars() {
	names := r.store.Names()
	if len(names) == 0 {
		fmt.Fprintf(r.out, "%sNo variables.%s\n", ui.ColorDim(), ui.ColorReset())
		return
	}
	for _, name := range names {
		x, _ := r.store.Get(name)
		r.printValue(name, x)
	}
}

func (r *REPL) cmdGet(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: get <name>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	name := strings.TrimPrefix(args[0], "$")
	x, ok := r.store.Get(name)
	if !ok {
		DisplayError(r.out, fmt.Errorf("undefined variable %q", name))
		return
	}
	r.printValue(name, x)
}

// cmdSet handles "set <name> <operand>" and "set <name> <op> <args...>".
func (r *REPL) cmdSet(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintf(r.out, "%sUsage: set <name> <value | op args...>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	name := strings.TrimPrefix(args[0], "$")
	if !session.ValidName(name) {
		DisplayError(r.out, fmt.Errorf("%w: %q", session.ErrInvalidName, name))
		return
	}

	var value *bigint.Int
	if _, err := r.registry.Get(strings.ToLower(args[1])); err == nil {
		results, _, err := r.run(ctx, strings.ToLower(args[1]), args[2:])
		if err != nil {
			DisplayError(r.out, err)
			return
		}
		value = results[0]
	} else {
		if len(args) != 2 {
			DisplayError(r.out, fmt.Errorf("%w: %q", calc.ErrUnknownOperation, args[1]))
			return
		}
		x, err := r.operand(args[1])
		if err != nil {
			DisplayError(r.out, err)
			return
		}
		value = x
	}

	if err := r.store.Set(name, value); err != nil {
		DisplayError(r.out, err)
		return
	}
	r.printValue(name, value)
}

func (r *REPL) cmdDel(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: del <name>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	name := strings.TrimPrefix(args[0], "$")
	if !r.store.Delete(name) {
		DisplayError(r.out, fmt.Errorf("undefined variable %q", name))
	}
}

// sessionPath returns the explicit path or the configured default.
func (r *REPL) sessionPath(args []string) (string, bool) {
	if len(args) > 0 {
		return args[0], true
	}
	return r.config.SessionFile, r.config.SessionFile != ""
}

func (r *REPL) cmdSave(args []string) {
	path, ok := r.sessionPath(args)
	if !ok {
		fmt.Fprintf(r.out, "%sUsage: save <file>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if err := r.store.Save(path); err != nil {
		DisplayError(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "%s✓ %d variable(s) saved to %s%s\n", ui.ColorGreen(), r.store.Len(), path, ui.ColorReset())
}

func (r *REPL) cmdLoad(args []string) {
	path, ok := r.sessionPath(args)
	if !ok {
		fmt.Fprintf(r.out, "%sUsage: load <file>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if err := r.store.Load(path); err != nil {
		DisplayError(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "%s✓ %d variable(s) loaded from %s%s\n", ui.ColorGreen(), r.store.Len(), path, ui.ColorReset())
}

func (r *REPL) cmdRadix(args []string) {
	if len(args) > 2 {
		fmt.Fprintf(r.out, "%sUsage: radix [in] [out]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	radixes := []*int{&r.config.Radix, &r.config.OutputRadix}
	next := make([]int, len(args))
	for i, arg := range args {
		x, err := bigint.Parse(arg, 10)
		if err != nil || !x.IsInt64() || x.Int64() < 2 || x.Int64() > 36 {
			DisplayError(r.out, fmt.Errorf("invalid radix %q: must be between 2 and 36", arg))
			return
		}
		next[i] = int(x.Int64())
	}
	for i, v := range next {
		*radixes[i] = v
	}
	fmt.Fprintf(r.out, "Input radix: %s%d%s, output radix: %s%d%s\n",
		ui.ColorCyan(), r.config.Radix, ui.ColorReset(),
		ui.ColorCyan(), r.config.OutputRadix, ui.ColorReset())
}
