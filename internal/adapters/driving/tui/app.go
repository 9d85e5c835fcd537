// Package tui provides the interactive terminal search session built
// on Bubbletea's Elm architecture.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/keymap"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/messages"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/styles"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui/views/search"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driving"
)

// App is the TUI application. It owns the search session view and the
// engine lifecycle: the index is loaded on startup and reloaded when
// the artifact is replaced on disk.
type App struct {
	searchService driving.SearchService
	searchView    *search.View
	ctx           context.Context

	// changes delivers artifact replacement signals from a watcher.
	// Nil when watch mode is off.
	changes <-chan struct{}

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Options configures the TUI application.
type Options struct {
	// Debounce is the input quiescence window before a search fires.
	Debounce time.Duration

	// MinQueryLength is the minimum query length in runes.
	MinQueryLength int

	// Changes, when non-nil, delivers artifact replacement signals that
	// trigger an index reload.
	Changes <-chan struct{}
}

// NewApp creates the TUI application over a search engine.
func NewApp(searchService driving.SearchService, opts Options) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		searchService: searchService,
		searchView:    search.NewView(s, km, searchService, opts.Debounce, opts.MinQueryLength),
		ctx:           context.Background(),
		changes:       opts.Changes,
	}
}

// WithContext sets the context used for index loads.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model. The index load starts immediately so the
// session is usable as soon as the artifact decodes.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("blogsearch"),
		a.searchView.Init(),
		a.loadIndex(),
	}
	if a.changes != nil {
		cmds = append(cmds, a.waitForArtifactChange())
	}
	return tea.Batch(cmds...)
}

// loadIndex runs an engine load and reports the resulting state.
func (a *App) loadIndex() tea.Cmd {
	return func() tea.Msg {
		err := a.searchService.Load(a.ctx)
		return messages.IndexLoaded{State: a.searchService.State(), Err: err}
	}
}

// waitForArtifactChange blocks on the watcher channel and converts a
// replacement signal into a message. Re-armed after every delivery.
func (a *App) waitForArtifactChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-a.changes; !ok {
			return nil
		}
		return messages.ArtifactChanged{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.ArtifactChanged:
		// Reload in place; the session keeps running while the new
		// index loads.
		return a, tea.Batch(a.loadIndex(), a.waitForArtifactChange())
	}

	var cmd tea.Cmd
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

// Run starts the TUI program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// SearchView returns the session view (for testing).
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Ready reports whether the app has received its initial size.
func (a *App) Ready() bool {
	return a.ready
}
