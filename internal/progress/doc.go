// Package progress carries harvest progress events from the crawler to
// pluggable sinks. Emitters never block: a Hub buffers events, batches them on
// a background goroutine and fans each batch out to the log and metrics sinks.
package progress
