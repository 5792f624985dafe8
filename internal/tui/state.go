package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/cryptoboard/internal/refresh"
)

// ViewState is the dashboard's current screen.
type ViewState int

const (
	// ViewStateList shows the asset table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows the card of one asset.
	ViewStateDetail
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

// ErrorMode selects how a failed refresh is presented.
type ErrorMode string

// Error presentation variants.
const (
	// ErrorBanner keeps the last good table visible under a red banner.
	ErrorBanner ErrorMode = "banner"
	// ErrorPanel replaces the table with a full-screen error panel.
	ErrorPanel ErrorMode = "panel"
)

// StateMsg delivers a refresh snapshot to the update loop.
type StateMsg struct {
	State refresh.State
}

// StartErrMsg reports that the refresh scheduler could not be started.
type StartErrMsg struct {
	Err error
}

// countdownTickMsg advances the retry countdown. Ticks from an older
// countdown carry a stale id and are dropped.
type countdownTickMsg struct {
	id int
}

// Listener returns a refresh.Listener that forwards snapshots through send,
// typically (*tea.Program).Send.
func Listener(send func(tea.Msg)) refresh.Listener {
	return func(s refresh.State) {
		send(StateMsg{State: s})
	}
}

func countdownTick(id int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{id: id}
	})
}

// LoadingState is the spinner shown while a refresh cycle is running.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a LoadingState with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = HeaderStyle
	return &LoadingState{spinner: s, message: "Loading cryptocurrencies..."}
}

// Init starts the spinner animation.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

func (l *LoadingState) update(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading returns the full-screen loading text shown before any data arrived.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return "\n " + loading.spinner.View() + " " + loading.message + "\n\n"
}
