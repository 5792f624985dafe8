package tui

// Key names as reported by tea.KeyMsg.String().
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyBack     = "backspace"
	keySlash    = "/"
	keyFavorite = "f"
	keySidebar  = "v"
	keyNoSort   = "0"
)

// sortKeyFor maps the number keys 1-6 to table columns.
func sortKeyFor(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '6' {
		return 0, false
	}
	return int(key[0] - '1'), true
}
