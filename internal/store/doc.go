// Package store defines the persistence interfaces for users, lists, and
// tasks, along with the sentinel errors all implementations must return.
// Concrete implementations live under internal/platform.
package store
