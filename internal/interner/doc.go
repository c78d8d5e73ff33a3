// Package interner maps external string identifiers to dense node indexes.
package interner
