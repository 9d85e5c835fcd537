// Package search provides the interactive search session view.
package search

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/components/input"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/components/list"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/components/status"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/keymap"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/messages"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/styles"
	"github.com/aqz-saito/blogsearch/internal/core/domain"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driving"
)

// View is the search session: a query input, a result panel that opens
// once the query is long enough, and a status bar. Searches run only
// after the input has been quiet for the debounce window.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	// generation invalidates in-flight debounce timers. Every keystroke
	// bumps it; a DebounceElapsed carrying a stale generation is ignored.
	generation int
	debounce   time.Duration
	minQueryLen int

	// panelOpen tracks whether the result panel is visible. The panel
	// and the query clear together; there is no state where one is
	// reset and the other is not.
	panelOpen bool

	width  int
	height int
	ready  bool
}

// NewView creates a search session over the given engine.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	debounce time.Duration,
	minQueryLen int,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	if minQueryLen < 1 {
		minQueryLen = 2
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		debounce:      debounce,
		minQueryLen:   minQueryLen,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search session.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		return v.handleDebounceElapsed(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.IndexLoaded:
		v.handleIndexLoaded(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateUnavailable)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.Clear()
		return v, nil

	case tea.KeyUp:
		if v.panelOpen {
			v.list.MoveUp()
		}
		return v, nil

	case tea.KeyDown:
		if v.panelOpen {
			v.list.MoveDown()
		}
		return v, nil

	case tea.KeyEnter:
		if v.panelOpen {
			if result := v.list.SelectedResult(); result != nil {
				v.statusbar.SetMessage(result.Document.URL)
			}
		}
		return v, nil
	}

	// Everything else edits the query.
	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	after := v.input.Value()

	if before == after {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.scheduleSearch())
}

// scheduleSearch bumps the generation and starts a fresh debounce
// timer. Earlier timers still fire, but their generation no longer
// matches and they are dropped.
func (v *View) scheduleSearch() tea.Cmd {
	v.generation++
	gen := v.generation

	if utf8.RuneCountInString(strings.TrimSpace(v.input.Value())) < v.minQueryLen {
		// Below the minimum the panel closes immediately; no timer.
		v.closePanel()
		return nil
	}

	v.statusbar.SetState(status.StateSearching)
	return tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return messages.DebounceElapsed{Generation: gen}
	})
}

// handleDebounceElapsed runs the search if the timer is still current.
func (v *View) handleDebounceElapsed(msg messages.DebounceElapsed) (*View, tea.Cmd) {
	if msg.Generation != v.generation {
		return v, nil
	}

	query := v.input.Value()
	return v, func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results := v.searchService.Search(query)
		return messages.SearchCompleted{Query: query, Results: results}
	}
}

// handleSearchCompleted replaces the visible result set wholesale.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	// A result set for a query the user has since edited away is stale.
	if msg.Query != v.input.Value() {
		return
	}

	if v.searchService != nil && v.searchService.State() == domain.StateFailed {
		v.closePanel()
		v.statusbar.SetState(status.StateUnavailable)
		return
	}

	v.panelOpen = true
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
}

// handleIndexLoaded reflects the engine lifecycle in the status bar.
func (v *View) handleIndexLoaded(msg messages.IndexLoaded) {
	switch msg.State {
	case domain.StateReady:
		if !v.panelOpen {
			v.statusbar.SetState(status.StateReady)
		}
	case domain.StateFailed:
		v.closePanel()
		v.statusbar.SetState(status.StateUnavailable)
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		}
	case domain.StateLoading:
		v.statusbar.SetState(status.StateLoading)
	case domain.StateUnloaded:
		v.statusbar.SetState(status.StateLoading)
	}
}

// Clear resets the query and the result panel in one step. There is no
// intermediate state where the panel shows results for a cleared query.
func (v *View) Clear() {
	v.generation++
	v.input.SetValue("")
	v.closePanel()
}

// closePanel hides the result panel and drops its contents.
func (v *View) closePanel() {
	v.panelOpen = false
	v.list.Clear()
	v.statusbar.Clear()
	if v.searchService != nil && v.searchService.State() == domain.StateFailed {
		v.statusbar.SetState(status.StateUnavailable)
	}
}

// View renders the search session.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Blog Search")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.panelOpen {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the visible result set.
func (v *View) Results() []domain.QueryResult {
	return v.list.Results()
}

// PanelOpen reports whether the result panel is visible.
func (v *View) PanelOpen() bool {
	return v.panelOpen
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Generation returns the current debounce generation.
func (v *View) Generation() int {
	return v.generation
}
