// Package listview provides a scrolling list for Bubble Tea views whose
// items may span several lines, such as the favorites sidebar cards.
//
// Only the items inside the viewport are rendered. The selected item is kept
// visible while navigating with the arrow keys, j/k, pgup/pgdown and home/end.
package listview
