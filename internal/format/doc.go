// Package format converts raw market numbers into display strings.
//
// Currency values follow the pt-PT EUR presentation of the dashboard:
// comma decimal separator, non-breaking space thousands grouping, and a
// non-breaking " €" suffix. Values below one euro keep eight decimals so
// low-priced tokens do not collapse to "0,00 €".
package format
