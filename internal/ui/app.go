package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/krishisahayak/sahayak/internal/api"
	"github.com/krishisahayak/sahayak/internal/auth"
	"github.com/krishisahayak/sahayak/internal/config"
	"github.com/krishisahayak/sahayak/internal/market"
	"github.com/krishisahayak/sahayak/internal/store"
	"github.com/krishisahayak/sahayak/internal/translate"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewPrices
	ViewSearch
	ViewNotifications
)

const defaultCrop = "wheat"

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *store.Store
	Notifier     *store.Notifier
	Client       *api.Client
	Sessions     *auth.Manager
	Prices       *market.Service
	Translations *translate.Loader
	Config       *config.Config
	Logger       *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	store        *store.Store
	notifier     *store.Notifier
	prices       *market.Service
	translations *translate.Loader
	log          *zap.Logger

	// UI state
	keys        keyMap
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	state store.AppState

	// Prices state
	crop        string
	quote       *api.PriceQuote
	quoteOrigin market.Origin
	trend       []api.PricePoint

	// List cursor, shared by the history and notification views
	selected int

	// Search input
	searching   bool
	searchInput textinput.Model
}

type stateMsg store.AppState

type pricesMsg struct {
	crop   string
	quote  *api.PriceQuote
	origin market.Origin
	trend  []api.PricePoint
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "crop name"
	input.CharLimit = 64

	state := opts.Store.State()
	theme := GetTheme(state.Theme)

	return Model{
		ctx:          ctx,
		store:        opts.Store,
		notifier:     opts.Notifier,
		prices:       opts.Prices,
		translations: opts.Translations,
		log:          log,
		keys:         DefaultKeyMap(),
		theme:        theme,
		styles:       theme.Styles(),
		currentView:  ViewDashboard,
		state:        state,
		crop:         defaultCrop,
		searchInput:  input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.fetchPricesCmd(m.crop),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case stateMsg:
		m.state = store.AppState(msg)
		if m.theme.Name != m.state.Theme {
			m.theme = GetTheme(m.state.Theme)
			m.styles = m.theme.Styles()
		}
		m.clampCursor()
		return m, nil

	case pricesMsg:
		m.crop = msg.crop
		m.quote = msg.quote
		m.quoteOrigin = msg.origin
		m.trend = msg.trend
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.store.Dispatch(store.SetTheme{Theme: NextTheme(m.theme.Name)})
		return m, nil

	case key.Matches(msg, m.keys.CycleLang):
		return m, m.cycleLanguage()

	case key.Matches(msg, m.keys.ViewDashboard):
		m.currentView = ViewDashboard
		return m, nil

	case key.Matches(msg, m.keys.ViewPrices):
		m.currentView = ViewPrices
		return m, nil

	case key.Matches(msg, m.keys.ViewSearch):
		m.currentView = ViewSearch
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.ViewNotifications):
		m.currentView = ViewNotifications
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.store.Dispatch(store.ClearCache{Namespace: store.NamespacePrices})
		return m, m.fetchPricesCmd(m.crop)

	case key.Matches(msg, m.keys.Search):
		m.currentView = ViewSearch
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selected++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.currentView == ViewSearch {
			if q, ok := m.selectedQuery(); ok {
				return m, m.submitQuery(q)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if m.currentView == ViewNotifications {
			if n, ok := m.selectedNotification(); ok {
				m.notifier.Remove(n.ID)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.DismissAll):
		if m.currentView == ViewNotifications {
			m.notifier.Clear()
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearHistory):
		if m.currentView == ViewSearch {
			m.store.Dispatch(store.ClearSearchHistory{})
			m.selected = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.SignOut):
		if m.state.User != nil {
			m.store.Dispatch(store.Logout{})
			m.notifier.Show(store.SeverityInfo, "Signed Out", "Your session has ended.")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		query := m.searchInput.Value()
		m.searching = false
		m.searchInput.Blur()
		if query == "" {
			return m, nil
		}
		return m, m.submitQuery(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// submitQuery records the query in history and loads prices for it.
func (m Model) submitQuery(query string) tea.Cmd {
	m.store.Dispatch(store.AddSearchQuery{Query: query})
	return m.fetchPricesCmd(query)
}

func (m Model) fetchPricesCmd(crop string) tea.Cmd {
	location := m.state.Preferences.Location
	return func() tea.Msg {
		quote, origin := m.prices.CurrentPrices(m.ctx, crop, location)
		trend, _ := m.prices.PriceTrends(m.ctx, crop, location, 7)
		return pricesMsg{crop: crop, quote: quote, origin: origin, trend: trend}
	}
}

// cycleLanguage switches to the next supported language and kicks off its
// translation load.
func (m Model) cycleLanguage() tea.Cmd {
	langs := translate.Supported()
	next := langs[0].Code
	for i, l := range langs {
		if l.Code == m.state.Language {
			next = langs[(i+1)%len(langs)].Code
			break
		}
	}
	m.store.Dispatch(store.SetLanguage{Language: next})
	m.translations.EnsureLanguage(m.ctx, next)
	return nil
}

func (m *Model) clampCursor() {
	max := 0
	switch m.currentView {
	case ViewSearch:
		max = len(m.state.SearchHistory) - 1
	case ViewNotifications:
		max = len(m.state.Notifications) - 1
	}
	if max < 0 {
		max = 0
	}
	if m.selected > max {
		m.selected = max
	}
}

func (m Model) selectedQuery() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.state.SearchHistory) {
		return "", false
	}
	return m.state.SearchHistory[m.selected], true
}

func (m Model) selectedNotification() (store.Notification, bool) {
	if m.selected < 0 || m.selected >= len(m.state.Notifications) {
		return store.Notification{}, false
	}
	return m.state.Notifications[m.selected], true
}

// tr renders a phrase in the active language, falling back to the source
// text for phrases that have not loaded.
func (m Model) tr(text string) string {
	lang := m.state.Language
	if lang == "" || lang == "en" {
		return text
	}
	if translated, ok := m.state.Translations[lang][text]; ok {
		return translated
	}
	return text
}

// Run wires up the Bubble Tea program and blocks until the context is
// cancelled or the user quits.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := opts.Store.Subscribe(func(prev, next store.AppState) {
		p.Send(stateMsg(next))
	})
	defer unsubscribe()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Context cancellation is a clean shutdown.
		return nil
	}
	return err
}
