// Package sinks provides progress.Sink implementations that log events and
// export them as Prometheus metrics.
package sinks
