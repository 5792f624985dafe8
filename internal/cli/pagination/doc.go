// Package pagination windows a derived asset list for one-shot output.
//
// Two mutually exclusive modes are supported:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
// A zero Params selects everything.
package pagination
