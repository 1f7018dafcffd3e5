// Package storage persists client-side state.
//
// Local is a flat string key/value store backed by a single JSON document,
// the equivalent of a browser's localStorage. Another process writing the
// same file is noticed through Watch. WidgetCache keeps arbitrary JSON
// values per widget id on disk with an in-memory layer in front.
package storage
