// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes per-method function fields for
// customizable behavior and falls back to an in-memory map when a field
// is nil.
package mocks
