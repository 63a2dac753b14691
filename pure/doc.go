// Package pure provides memoization for pure functions over dense integer
// domains.
//
// A Table is a lazy lookup table: one slot per input, each slot computed at
// most once no matter how many goroutines ask for it at the same time.
// Tableize wraps a function with such a table. Bounded trades the
// exactly-once guarantee for a fixed memory footprint, for domains that are
// too large to tabulate in full.
//
// WARNING: Do not tableize impure functions (e.g., those depending on time,
// I/O or shared mutable state). A slot is never recomputed.
package pure
