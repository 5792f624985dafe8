package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/cryptoboard/internal/favorites"
	"github.com/rshade/cryptoboard/internal/format"
	"github.com/rshade/cryptoboard/internal/listing"
	"github.com/rshade/cryptoboard/internal/logging"
	"github.com/rshade/cryptoboard/internal/market"
	"github.com/rshade/cryptoboard/internal/refresh"
	listview "github.com/rshade/cryptoboard/internal/tui/list"
)

// Options configures a DashboardModel.
type Options struct {
	// Interval is the refresh period; it seeds the retry countdown.
	Interval time.Duration
	// ErrorMode selects banner or panel presentation of failures.
	ErrorMode ErrorMode
	// Sort is the initial column order.
	Sort listing.SortSpec
	// Deriver computes rows; nil uses the default collation.
	Deriver *listing.Deriver
	// Start launches the refresh scheduler once the program is running.
	Start func(ctx context.Context) error
}

// DashboardModel is the Bubble Tea model for the market dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx   context.Context
	state ViewState
	opts  Options

	data refresh.State  // last snapshot from the scheduler
	rows []market.Asset // derived view of data.Assets

	deriver   *listing.Deriver
	sort      listing.SortSpec
	favorites *favorites.Store

	table      table.Model
	textInput  textinput.Model
	showSearch bool

	sidebar     *listview.VirtualListModel[market.Asset]
	showSidebar bool

	detail market.Asset

	loadingState *LoadingState

	// errCycle is the generation of the failure the countdown belongs to.
	errCycle  uint64
	countdown int
	tickID    int

	width  int
	height int

	err error
}

// NewDashboardModel creates a dashboard in the initial loading state.
func NewDashboardModel(ctx context.Context, opts Options) DashboardModel {
	if opts.Interval <= 0 {
		opts.Interval = refresh.DefaultInterval
	}
	if opts.ErrorMode == "" {
		opts.ErrorMode = ErrorBanner
	}
	if opts.Deriver == nil {
		opts.Deriver = listing.NewDeriver(listing.DefaultLanguage)
	}

	m := DashboardModel{
		ctx:          ctx,
		state:        ViewStateList,
		opts:         opts,
		data:         refresh.State{Loading: true},
		deriver:      opts.Deriver,
		sort:         opts.Sort,
		favorites:    favorites.New(),
		textInput:    newTextInput(),
		loadingState: NewLoadingState(),
		width:        defaultWidth,
		height:       defaultHeight,
	}
	m.sidebar = listview.NewVirtualListModel(m.favorites.List(), m.sidebarSize(), renderFavorite)
	m.sidebar.SetEmptyText(SubtleStyle.Render("No cryptocurrencies added to favorites."))
	m.table = m.buildTable()
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search by name"
	ti.Prompt = ""
	ti.CharLimit = 64
	return ti
}

// Init starts the spinner and the refresh scheduler (Bubble Tea interface).
func (m DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadingState.Init()}
	if m.opts.Start != nil {
		start, ctx := m.opts.Start, m.ctx
		cmds = append(cmds, func() tea.Msg {
			if err := start(ctx); err != nil {
				return StartErrMsg{Err: err}
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sidebar.SetSize(m.sidebarSize())
		m.table = m.buildTable()
		return m, nil
	case StateMsg:
		return m.handleState(msg.State)
	case StartErrMsg:
		m.err = msg.Err
		log := logging.FromContext(m.ctx)
		log.Error().Err(msg.Err).Msg("refresh scheduler did not start")
		return m, nil
	case countdownTickMsg:
		return m.handleCountdownTick(msg)
	case spinner.TickMsg:
		return m, m.loadingState.update(msg)
	}

	if m.showSearch {
		return m.handleSearchInput(msg)
	}

	switch m.state {
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

// handleState applies a scheduler snapshot in one step so assets, timestamp
// and error change together relative to View.
func (m DashboardModel) handleState(s refresh.State) (tea.Model, tea.Cmd) {
	m.data = s
	m.refreshRows()

	if m.state == ViewStateDetail {
		if live, ok := market.FindByID(s.Assets, m.detail.ID); ok {
			m.detail = live
		}
	}

	if s.HasError() && s.Cycle != m.errCycle {
		m.errCycle = s.Cycle
		m.countdown = int(m.opts.Interval / time.Second)
		m.tickID++
		return m, countdownTick(m.tickID)
	}
	return m, nil
}

func (m DashboardModel) handleCountdownTick(msg countdownTickMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.tickID || !m.data.HasError() {
		return m, nil
	}
	if m.countdown > 0 {
		m.countdown--
	}
	if m.countdown == 0 {
		return m, nil
	}
	return m, countdownTick(m.tickID)
}

func (m DashboardModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			m.showSearch = false
			m.textInput.Blur()
			return m, nil
		case keyEsc:
			m.showSearch = false
			m.textInput.Blur()
			m.textInput.SetValue("")
			m.refreshRows()
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.refreshRows()
	return m, cmd
}

func (m DashboardModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

func (m DashboardModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := keyMsg.String()
	if col, ok := sortKeyFor(key); ok {
		m.sort.Click(listing.Columns[col])
		m.refreshRows()
		return m, nil
	}

	switch key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyNoSort:
		m.sort.Click(listing.SortNone)
		m.refreshRows()
		return m, nil
	case keySlash:
		m.showSearch = true
		m.textInput.Focus()
		return m, textinput.Blink
	case keyEsc:
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.refreshRows()
		}
		return m, nil
	case keySidebar:
		m.showSidebar = !m.showSidebar
		m.table = m.buildTable()
		return m, nil
	case keyFavorite:
		if m.showSidebar {
			if fav, ok := m.sidebar.GetSelectedItem(); ok {
				m.toggleFavorite(fav.ID)
			}
			return m, nil
		}
		if row, ok := m.selectedRow(); ok {
			m.toggleFavorite(row.ID)
		}
		return m, nil
	case keyEnter:
		if row, ok := m.selectedRow(); ok {
			m.detail = row
			m.state = ViewStateDetail
		}
		return m, nil
	}

	if m.showSidebar && m.sidebar.Update(keyMsg) {
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

func (m DashboardModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyBack, keyEnter:
		m.state = ViewStateList
		m.table.Focus()
	case keyFavorite:
		m.toggleFavorite(m.detail.ID)
	}
	return m, nil
}

// toggleFavorite toggles id against the live asset list. Ids missing from
// the live list can only be removed.
func (m *DashboardModel) toggleFavorite(id string) {
	added := m.favorites.Toggle(id, m.data.Assets)
	log := logging.FromContext(m.ctx)
	log.Debug().
		Str("asset_id", id).
		Bool("favorited", added).
		Int("favorites", m.favorites.Len()).
		Msg("favorite toggled")

	m.sidebar.SetItems(m.favorites.List())
	m.table = m.buildTable()
}

// refreshRows re-derives the visible rows and rebuilds the table, keeping
// the cursor on the same index where possible.
func (m *DashboardModel) refreshRows() {
	m.rows = m.deriver.Derive(m.data.Assets, m.sort, m.textInput.Value())
	m.table = m.buildTable()
}

func (m *DashboardModel) selectedRow() (market.Asset, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return market.Asset{}, false
	}
	return m.rows[i], true
}

func (m *DashboardModel) buildTable() table.Model {
	cursor := m.table.Cursor()

	columns := []table.Column{
		{Title: m.columnTitle(listing.SortRank), Width: 5}, //nolint:mnd // Column width.
		{Title: "★", Width: 2},                            //nolint:mnd // Column width.
		{Title: m.columnTitle(listing.SortName), Width: m.nameWidth()},
		{Title: m.columnTitle(listing.SortPrice), Width: 18},     //nolint:mnd // Column width.
		{Title: m.columnTitle(listing.SortChange24h), Width: 10}, //nolint:mnd // Column width.
		{Title: m.columnTitle(listing.SortVolume), Width: 22},    //nolint:mnd // Column width.
		{Title: m.columnTitle(listing.SortMarketCap), Width: 22}, //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.rows))
	for i, a := range m.rows {
		star := ""
		if m.favorites.IsFavorited(a.ID) {
			star = "★"
		}
		rows[i] = table.Row{
			format.Rank(a.MarketCapRank),
			star,
			a.Name + " " + strings.ToUpper(a.Symbol),
			format.Price(a.CurrentPrice),
			format.Percent(a.PriceChangePercentage24h),
			format.Small(a.TotalVolume),
			format.Small(a.MarketCap),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeHeight, minHeight)),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	if len(rows) > 0 {
		t.SetCursor(min(max(cursor, 0), len(rows)-1))
	}
	return t
}

// columnTitle renders a header with the sort arrow on the active column.
func (m *DashboardModel) columnTitle(key listing.SortKey) string {
	if m.sort.Key == key {
		return key.Title() + " " + m.sort.Direction.Arrow()
	}
	return key.Title()
}

func (m *DashboardModel) nameWidth() int {
	const fixed = 5 + 2 + 18 + 10 + 22 + 22 + 14 // other columns plus cell padding
	avail := m.width - fixed
	if m.showSidebar {
		avail -= sidebarWidth
	}
	return max(avail, 16) //nolint:mnd // Minimum name column width.
}

func (m *DashboardModel) sidebarSize() int {
	return max((m.height-chromeHeight)/cardLines, 1)
}

func renderFavorite(a market.Asset, selected bool) string {
	return renderCompactCard(a, selected, sidebarWidth-1)
}

// Rows returns the derived rows currently shown.
func (m *DashboardModel) Rows() []market.Asset {
	return m.rows
}

// Favorites returns the favorite snapshots in insertion order.
func (m *DashboardModel) Favorites() []market.Asset {
	return m.favorites.List()
}
