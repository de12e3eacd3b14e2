// Package resource keeps list, selection and request state for each backend
// collection. One generic Slice runs the five CRUD operations; list results
// that arrive after a newer list request are dropped with ErrStale.
package resource
