// Package domain defines the core business entities (users, lists, tasks)
// and the validation errors they can produce. It has no dependencies on
// storage, transport, or any other layer.
package domain
