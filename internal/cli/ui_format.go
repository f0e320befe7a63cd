// Number formatting utilities for CLI output.

package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agbru/bigcalc/bigint"
)

var countPrinter = message.NewPrinter(language.English)

// FormatCount formats a machine-sized count with thousands separators,
// e.g. 1234567 -> "1,234,567".
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatNumberString inserts thousands separators into a decimal digit
// string, keeping a leading minus sign: "-1234567" -> "-1,234,567".
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseOperand parses a command-line integer. A 0x, 0o or 0b prefix after
// the optional sign selects radix 16, 8 or 2; otherwise radix applies.
func ParseOperand(s string, radix int) (*bigint.Int, error) {
	body := s
	sign := ""
	if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
		sign, body = body[:1], body[1:]
	}
	if len(body) > 2 && body[0] == '0' {
		switch body[1] {
		case 'x', 'X':
			radix, body = 16, body[2:]
		case 'o', 'O':
			radix, body = 8, body[2:]
		case 'b', 'B':
			radix, body = 2, body[2:]
		}
	}
	body = strings.ReplaceAll(body, "_", "")
	x, err := bigint.Parse(sign+body, radix)
	if err != nil {
		return nil, fmt.Errorf("invalid operand %q: %w", s, err)
	}
	return x, nil
}
