// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayError].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatValue], [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode prints bare values only.
	Quiet bool
	// Verbose shows full values instead of truncated ones.
	Verbose bool
	// Radix is the radix values are printed in.
	Radix int
}

func (c OutputConfig) radix() int {
	if c.Radix == 0 {
		return 10
	}
	return c.Radix
}

// radixPrefix returns the conventional literal prefix for radix, if any.
func radixPrefix(radix int) string {
	switch radix {
	case 2:
		return "0b"
	case 8:
		return "0o"
	case 16:
		return "0x"
	}
	return ""
}

// text renders x in radix, falling back to decimal for an invalid radix.
func text(x *bigint.Int, radix int) string {
	s, err := x.Text(radix)
	if err != nil {
		return x.String()
	}
	return s
}

// FormatValue renders x in radix for display. Decimal values are grouped by
// thousands. Unless verbose is set, values longer than TruncationLimit digits
// are shortened to their first and last DisplayEdges digits.
//
// Parameters:
//   - x: The value to format.
//   - radix: The output radix (2 to 36).
//   - verbose: Whether to print every digit.
//
// Returns:
//   - string: The formatted value.
func FormatValue(x *bigint.Int, radix int, verbose bool) string {
	s := text(x, radix)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	prefix := radixPrefix(radix)
	if verbose || len(s) <= TruncationLimit {
		if radix == 10 {
			return FormatNumberString(sign + s)
		}
		return sign + prefix + s
	}
	return fmt.Sprintf("%s%s%s...%s (%s digits)", sign, prefix, s[:DisplayEdges], s[len(s)-DisplayEdges:], FormatCount(len(s)))
}

// FormatQuietResult formats results for quiet mode output: one value per
// line, full length, no prefix. Suitable for scripting.
//
// Parameters:
//   - results: The values to format.
//   - radix: The output radix.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(results []*bigint.Int, radix int) string {
	lines := make([]string, len(results))
	for i, x := range results {
		lines[i] = text(x, radix)
	}
	return strings.Join(lines, "\n")
}

// DisplayQuietResult outputs results in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, results []*bigint.Int, radix int) {
	fmt.Fprintln(out, FormatQuietResult(results, radix))
}

// DisplayResult prints the results of op with timing and size details.
//
// Parameters:
//   - out: The output writer.
//   - op: The operation name, used as the label.
//   - results: The values returned by the operation.
//   - duration: The evaluation time.
//   - config: Output configuration.
func DisplayResult(out io.Writer, op string, results []*bigint.Int, duration time.Duration, config OutputConfig) {
	radix := config.radix()
	for i, x := range results {
		label := op
		if len(results) > 1 {
			label = fmt.Sprintf("%s[%d]", op, i)
		}
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
			ui.ColorYellow(), label, ui.ColorReset(),
			ui.ColorGreen(), FormatValue(x, radix, config.Verbose), ui.ColorReset())
	}
	if !config.Verbose {
		for _, x := range results {
			if len(text(x.Abs(), radix)) > TruncationLimit {
				fmt.Fprintf(out, "  %s(truncated) Tip: use --verbose to print every digit.%s\n", ui.ColorDim(), ui.ColorReset())
				break
			}
		}
	}
	if len(results) == 1 && results[0].BitLen() > 64 {
		x := results[0]
		fmt.Fprintf(out, "  %sbits:%s %s%s%s  %sdigits:%s %s%s%s\n",
			ui.ColorDim(), ui.ColorReset(), ui.ColorCyan(), FormatCount(x.BitLen()), ui.ColorReset(),
			ui.ColorDim(), ui.ColorReset(), ui.ColorCyan(), FormatCount(len(text(x.Abs(), radix))), ui.ColorReset())
	}
	fmt.Fprintf(out, "  %stime:%s %s\n", ui.ColorDim(), ui.ColorReset(), FormatExecutionDuration(duration))
}

// DisplayError prints err in the error color.
func DisplayError(out io.Writer, err error) {
	fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

// WriteResultToFile writes the full results of op to config.OutputFile.
// It does nothing when no file is configured.
//
// Parameters:
//   - op: The operation name.
//   - args: The operands, as typed.
//   - results: The values to write.
//   - duration: The evaluation time.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(op string, args []string, results []*bigint.Int, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	radix := config.radix()
	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s %s\n", op, strings.Join(args, " "))
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Radix: %d\n", radix)
	fmt.Fprintf(file, "\n")
	for _, x := range results {
		fmt.Fprintln(file, text(x, radix))
	}
	return file.Close()
}

// DisplayResultWithConfig displays results with the given output
// configuration and saves them when a file is configured.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, op string, args []string, results []*bigint.Int, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, results, config.radix())
	} else {
		DisplayResult(out, op, results, duration, config)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(op, args, results, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
