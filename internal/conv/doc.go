// Package conv provides bounds-checked integer conversions for values
// decoded from untrusted input (counts, lengths, node indexes).
package conv
