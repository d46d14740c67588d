// Package model holds the records exchanged between the stores and the presentation layer.
package model

// Category is a named spending or income bucket.
// IDs are assigned by the store and never reused.
type Category struct {
	Name        string
	Description string
	ID          int64
}
