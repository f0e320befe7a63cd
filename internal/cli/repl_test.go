package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/session"
)

// runREPL feeds script to a fresh REPL and returns its output and store.
func runREPL(t *testing.T, cfg REPLConfig, script ...string) (string, *session.Store) {
	t.Helper()
	store := session.NewStore(nil)
	r := NewREPL(calc.NewDefaultRegistry(), store, cfg, nil)
	var out bytes.Buffer
	r.SetInput(strings.NewReader(strings.Join(script, "\n") + "\n"))
	r.SetOutput(&out)
	r.Start(context.Background())
	return out.String(), store
}

func TestREPLCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		script   []string
		contains []string
	}{
		{
			name:     "evaluates an operation",
			script:   []string{"add 2 3"},
			contains: []string{"add = 5"},
		},
		{
			name:     "pair results",
			script:   []string{"quorem -17 5"},
			contains: []string{"quorem[0] = -3", "quorem[1] = -2"},
		},
		{
			name:     "last result",
			script:   []string{"mul 6 7", "add $_ 0"},
			contains: []string{"mul = 42", "add = 42"},
		},
		{
			name:     "variables",
			script:   []string{"set x 0xff", "set y mul $x 2", "get y", "vars"},
			contains: []string{"$x = 255", "$y = 510"},
		},
		{
			name:     "bare operand converts",
			script:   []string{"radix 10 16", "255"},
			contains: []string{"output radix: 16", "0xff"},
		},
		{
			name:     "input radix",
			script:   []string{"radix 16", "add ff 1"},
			contains: []string{"Input radix: 16", "add = 256"},
		},
		{
			name:     "errors keep the session alive",
			script:   []string{"quo 1 0", "add 1", "add $nope 1", "add 2 2"},
			contains: []string{"division by zero", "expects 2 argument(s)", "undefined variable", "add = 4"},
		},
		{
			name:     "unknown command",
			script:   []string{"frobnicate 1"},
			contains: []string{"Unknown command: frobnicate"},
		},
		{
			name:     "invalid radix",
			script:   []string{"radix 37"},
			contains: []string{"invalid radix"},
		},
		{
			name:     "help and ops",
			script:   []string{"help", "ops"},
			contains: []string{"Available commands:", "expmod", "nextprime"},
		},
		{
			name:     "exit stops reading",
			script:   []string{"exit", "add 1 1"},
			contains: []string{"Goodbye!"},
		},
		{
			name:     "invalid name",
			script:   []string{"set 9x 1"},
			contains: []string{"invalid variable name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, _ := runREPL(t, REPLConfig{}, tt.script...)
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestREPLExitSkipsRemainingInput(t *testing.T) {
	t.Parallel()
	out, _ := runREPL(t, REPLConfig{}, "exit", "add 1 1")
	if strings.Contains(out, "add = 2") {
		t.Errorf("input after exit was evaluated:\n%s", out)
	}
}

func TestREPLBindsLastResult(t *testing.T) {
	t.Parallel()
	_, store := runREPL(t, REPLConfig{}, "exp 2 100", "del x")
	got, ok := store.Get(session.LastResult)
	if !ok {
		t.Fatal("last result not bound")
	}
	want := bigint.NewInt64(2).Exp(100)
	if !got.Equal(want) {
		t.Errorf("$_ = %s, want %s", got, want)
	}
}

func TestREPLSaveLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.msgpack")

	out, _ := runREPL(t, REPLConfig{SessionFile: path}, "set a 12345678901234567890", "save")
	if !strings.Contains(out, "saved to "+path) {
		t.Fatalf("save failed:\n%s", out)
	}

	out, store := runREPL(t, REPLConfig{}, "load "+path, "get a")
	if !strings.Contains(out, "$a = 12,345,678,901,234,567,890") {
		t.Errorf("load did not restore a:\n%s", out)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d variables, want 1", store.Len())
	}

	out, _ = runREPL(t, REPLConfig{}, "save")
	if !strings.Contains(out, "Usage: save <file>") {
		t.Errorf("save without a path should print usage:\n%s", out)
	}
}

func TestREPLCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewREPL(calc.NewDefaultRegistry(), session.NewStore(nil), REPLConfig{Timeout: time.Second}, nil)
	var out bytes.Buffer
	r.SetInput(strings.NewReader("add 1 1\n"))
	r.SetOutput(&out)
	r.Start(ctx)
	if !strings.Contains(out.String(), "Interrupted.") || strings.Contains(out.String(), "add = 2") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestREPLTimeoutAbandonsEvaluation(t *testing.T) {
	t.Parallel()
	reg := calc.NewDefaultRegistry()
	reg.Register(calc.Operation{
		Name:  "slow",
		Usage: "slow",
		Eval: func(calc.Env, []*bigint.Int) ([]*bigint.Int, error) {
			time.Sleep(800 * time.Millisecond)
			return []*bigint.Int{bigint.NewInt64(1)}, nil
		},
	})

	r := NewREPL(reg, session.NewStore(nil), REPLConfig{Timeout: 20 * time.Millisecond}, nil)
	var out bytes.Buffer
	r.SetInput(strings.NewReader("slow\n"))
	r.SetOutput(&out)

	start := time.Now()
	r.Start(context.Background())
	if elapsed := time.Since(start); elapsed >= 800*time.Millisecond {
		t.Errorf("REPL waited %v for an evaluation past its timeout", elapsed)
	}
	got := out.String()
	if !strings.Contains(got, "context deadline exceeded") || strings.Contains(got, "slow = 1") {
		t.Errorf("expected a deadline error and no result:\n%s", got)
	}
}
