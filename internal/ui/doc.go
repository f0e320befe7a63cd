// Package ui provides theme and color support for the calculator's terminal
// output. It defines color schemes, ANSI escape code accessors, the lipgloss
// banner shown by the REPL, and terminal detection used to decide whether
// color is appropriate at all.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between business logic and presentation.
package ui
