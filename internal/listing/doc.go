// Package listing derives the rows shown by the dashboard table from the raw
// asset list, the active SortSpec and the search term.
//
// Derivation is pure: the input slice is never modified and the result is
// recomputed on every render. Sorting happens first and is stable, then the
// search term filters rows by name without re-sorting.
package listing
