package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cubefall/internal/registry"
	"github.com/vovakirdan/cubefall/internal/storage"
)

const (
	panelWidth     = 24  // Stats panel beside the table
	minWidthPanel  = 96  // Narrower terminals show stats as one line
	detailedWidth  = 64  // Table width needed for the edge, pieces, cleared and time columns
	scoreboardRows = 100 // Results loaded per game
)

// listing selects which results the table shows.
type listing int

const (
	listingBest listing = iota
	listingRecent
)

func (l listing) String() string {
	if l == listingRecent {
		return "Recent"
	}
	return "Best"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Listing key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Listing, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Listing},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
		Listing: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "best/recent")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardModel lists stored results per registered game, either the
// best or the most recent, with aggregate stats alongside.
type ScoreboardModel struct {
	games     []registry.GameInfo
	cursor    int
	listing   listing
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	detailed  bool
	panel     bool
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard sized for a width x height terminal.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.layout()
	m.reload()
	return m
}

// layout rebuilds the table for the current size. The detail columns are
// dropped when the table would not fit them.
func (m *ScoreboardModel) layout() {
	m.panel = m.width >= minWidthPanel
	tableWidth := m.width - 4
	if m.panel {
		tableWidth -= panelWidth + 4
	}
	m.detailed = tableWidth >= detailedWidth

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
	}
	if m.detailed {
		columns = append(columns,
			table.Column{Title: "Edge", Width: 4},
			table.Column{Title: "Pieces", Width: 6},
			table.Column{Title: "Cleared", Width: 7},
			table.Column{Title: "Time", Width: 6},
		)
	}
	columns = append(columns, table.Column{Title: "Date", Width: 12})

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
	m.fillRows()
}

// reload fetches the current game's results and stats. Store errors show
// as an empty board.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.cursor].ID
		var err error
		if m.listing == listingRecent {
			m.scores, err = m.store.RecentScores(id, scoreboardRows)
		} else {
			m.scores, err = m.store.TopScores(id, scoreboardRows)
		}
		if err != nil {
			m.scores = nil
		}
		if st, err := m.store.GetGameStats(id); err == nil {
			m.stats = st
		}
	}
	m.fillRows()
	m.table.GotoTop()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.scores))
	for i, e := range m.scores {
		row := table.Row{strconv.Itoa(i + 1), strconv.Itoa(e.Score)}
		if m.detailed {
			row = append(row,
				strconv.Itoa(e.MinEdge),
				strconv.Itoa(e.Pieces),
				strconv.Itoa(e.Cleared),
				formatDuration(e.Duration),
			)
		}
		rows = append(rows, append(row, e.CreatedAt.Format("Jan 02 15:04")))
	}
	m.table.SetRows(rows)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectGame(m.cursor + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectGame(m.cursor - 1)
			return m, nil
		case key.Matches(msg, m.keys.Listing):
			m.listing = 1 - m.listing
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) selectGame(i int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (i + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	board := boardFrameStyle.Render(m.tableView())
	if m.panel {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", boardFrameStyle.Width(panelWidth).Render(m.statsPanel()))
		b.WriteString(board)
	} else {
		b.WriteString(board)
		if line := m.statsLine(); line != "" {
			b.WriteString("\n")
			b.WriteString(boardDimStyle.Render(line))
		}
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the game names with the selected one highlighted, falling
// back to "< Title >" when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return boardDimStyle.Render("no games registered")
	}
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			parts[i] = boardActiveTab.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := strings.Join(parts, " ") + boardDimStyle.Render("  ["+m.listing.String()+"]")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s > [%s]", m.games[m.cursor].Title, m.listing)
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No results yet.\nFinish a game to get on the board.")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsPanel() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return boardDimStyle.Render("No stats yet")
	}
	rows := [][2]string{
		{"Games", strconv.Itoa(st.GamesCount)},
		{"Best", strconv.Itoa(st.HighScore)},
		{"Average", fmt.Sprintf("%.0f", st.AvgScore)},
		{"Pieces", strconv.FormatInt(st.TotalPieces, 10)},
		{"Cleared", strconv.FormatInt(st.TotalCleared, 10)},
		{"Last", st.LastPlayed.Format("Jan 02")},
	}
	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("Stats"))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%-9s%s", r[0], r[1])
	}
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games  best %d  avg %.0f  %d cells cleared",
		st.GamesCount, st.HighScore, st.AvgScore, st.TotalCleared)
}

// formatDuration renders a game length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard and reports whether the user went
// back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
