// Package format renders numbers, byte sizes, currencies, plurals and
// times for display.
package format
