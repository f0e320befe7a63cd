// Package metrics records operation counts, latencies, prime-search
// throughput and runtime memory on a private Prometheus registry, and
// exports them in the node_exporter textfile format.
package metrics
