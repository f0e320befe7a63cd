// Package logging provides a unified logging interface for the big integer
// calculator. It abstracts the underlying logging implementation, allowing
// consistent structured logging across the command layer, the prime scanner
// and the metrics exporter while supporting multiple backends.
package logging
