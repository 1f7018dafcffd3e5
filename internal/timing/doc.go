// Package timing provides small time-driven helpers: a trailing-edge
// debouncer, a previous-value tracker and a pausable stopwatch.
package timing
