// Package mongodb implements the store interfaces on top of MongoDB
// collections. It owns the client lifecycle, the unique index bootstrap for
// the user collection, and the mapping from driver errors to store errors.
package mongodb
