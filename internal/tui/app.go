// Package tui is the interactive terminal client. It renders discovery page
// snapshots and turns key presses into page intents; all network work runs in
// tea.Cmd goroutines and reports back as messages.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smartchef/smartchef/internal/detail"
	"github.com/smartchef/smartchef/internal/discovery"
	"github.com/smartchef/smartchef/internal/notify"
	"github.com/smartchef/smartchef/internal/picker"
	"github.com/smartchef/smartchef/internal/probe"
	"github.com/smartchef/smartchef/internal/service"
	"github.com/smartchef/smartchef/internal/view"
)

const toastInterval = 500 * time.Millisecond

// Options configures the App.
type Options struct {
	Backend service.BackendAPI
	Details service.DetailsGenerator
	Logger  *zap.Logger

	// Probe is run once at start. Zero values take probe defaults.
	Probe probe.Config
	// DisableProbe skips the warm-up indicator entirely.
	DisableProbe bool
}

// App is the root bubbletea model.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	page   *discovery.Page
	toasts *notify.Queue
	probe  *probe.Probe
	probeC chan probe.Update
	logger *zap.Logger

	styles  *view.Styles
	keys    *KeyMap
	input   textinput.Model
	spinner spinner.Model
	detail  viewport.Model

	probeState probe.State
	probeDone  bool
	cursor     int
	width      int
	height     int
	closed     bool
}

var _ tea.Model = (*App)(nil)

// NewApp builds the client over the given backend and relay clients.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("creating app: backend client is required")
	}
	if opts.Details == nil {
		return nil, fmt.Errorf("creating app: details client is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	toasts := notify.NewQueue(notify.DefaultTTL)

	ti := textinput.New()
	ti.Placeholder = picker.New().Placeholder()
	ti.CharLimit = 64
	ti.Width = 50
	ti.Focus()

	a := &App{
		ctx:     ctx,
		cancel:  cancel,
		page:    discovery.NewPage(opts.Backend, opts.Details, toasts),
		toasts:  toasts,
		logger:  opts.Logger,
		styles:  view.DefaultStyles(),
		keys:    DefaultKeyMap(),
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		detail:  viewport.New(80, 20),
		width:   80,
		height:  24,
	}
	if !opts.DisableProbe {
		a.probe = probe.New(opts.Backend, opts.Probe, opts.Logger.Named("probe"))
		a.probeC = make(chan probe.Update, 4)
	} else {
		a.probeDone = true
		a.probeState = probe.StateHidden
	}
	return a, nil
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	app, err := NewApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Close cancels outstanding work. Messages that arrive afterwards are ignored.
func (a *App) Close() {
	a.closed = true
	a.cancel()
}

// Page exposes the page owner
func (a *App) Page() *discovery.Page { return a.page }

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("SmartChef"),
		textinput.Blink,
		a.spinner.Tick,
		a.loadCatalog(),
		a.tickToasts(),
	}
	if a.probe != nil {
		go a.runProbe()
		cmds = append(cmds, a.listenProbe())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.closed {
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.Close()
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Dismiss) {
			a.dismissToast()
			return a, nil
		}
		return a, a.handleKey(msg)

	case catalogLoaded:
		a.page.ApplyCatalog(msg.Result)
		a.input.Placeholder = a.page.Snapshot().Placeholder
		return a, nil

	case searchCompleted:
		if a.page.FinishSearch(msg.Result) && msg.Result.Err == nil {
			a.cursor = 0
			a.input.Blur()
		}
		return a, nil

	case detailCompleted:
		a.page.ApplyDetail(msg.Result)
		a.refreshDetail()
		return a, nil

	case probeUpdated:
		a.probeState = msg.Update.State
		return a, a.listenProbe()

	case probeFinished:
		a.probeDone = true
		return a, nil

	case toastTick:
		return a, a.tickToasts()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	snap := a.page.Snapshot()

	if snap.Detail.Open {
		return a.handleDetailKey(msg)
	}
	if snap.Phase == discovery.PhaseResults {
		return a.handleResultsKey(msg, snap)
	}
	return a.handlePickerKey(msg, snap)
}

func (a *App) handlePickerKey(msg tea.KeyMsg, snap discovery.Snapshot) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.page.HandleKey(picker.KeyUp)
		return nil
	case key.Matches(msg, a.keys.Down):
		a.page.HandleKey(picker.KeyDown)
		return nil
	case key.Matches(msg, a.keys.Select):
		ticket, ok := a.page.HandleKey(picker.KeyEnter)
		a.input.SetValue(a.page.Snapshot().Input)
		if ok {
			return a.runSearch(ticket)
		}
		return nil
	case key.Matches(msg, a.keys.Search):
		if ticket, ok := a.page.BeginSearch(); ok {
			return a.runSearch(ticket)
		}
		return nil
	case key.Matches(msg, a.keys.RemoveAll):
		a.page.ClearSelection()
		return nil
	case msg.Type == tea.KeyBackspace && a.input.Value() == "":
		if n := len(snap.Selected); n > 0 {
			a.page.RemoveIngredient(snap.Selected[n-1])
		}
		return nil
	case key.Matches(msg, a.keys.Back):
		a.input.SetValue("")
		a.page.SetInput("")
		return nil
	}

	if !snap.InputReady {
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.page.SetInput(a.input.Value())
	return cmd
}

func (a *App) handleResultsKey(msg tea.KeyMsg, snap discovery.Snapshot) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(snap.Results)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Select):
		if a.cursor >= len(snap.Results) {
			return nil
		}
		ticket, ok := a.page.OpenRecipe(snap.Results[a.cursor].ID)
		a.detail.GotoTop()
		a.refreshDetail()
		if ok {
			return a.runDetail(ticket)
		}
	case key.Matches(msg, a.keys.NewSearch), key.Matches(msg, a.keys.Back):
		a.page.NewSearch()
		a.cursor = 0
		return a.input.Focus()
	}
	return nil
}

func (a *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.page.CloseRecipe()
		return nil
	case key.Matches(msg, a.keys.Generate):
		ticket, ok := a.page.RequestInstructions()
		a.refreshDetail()
		if ok {
			return a.runDetail(ticket)
		}
		return nil
	}

	var cmd tea.Cmd
	a.detail, cmd = a.detail.Update(msg)
	return cmd
}

// dismissToast drops the newest visible notification.
func (a *App) dismissToast() {
	if n, ok := a.toasts.Latest(); ok {
		a.toasts.Dismiss(n.ID)
	}
}

func (a *App) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoaded{Result: a.page.FetchCatalog(a.ctx)}
	}
}

func (a *App) runSearch(t discovery.SearchTicket) tea.Cmd {
	a.logger.Debug("searching", zap.Strings("ingredients", t.Ingredients), zap.Uint64("seq", t.Seq))
	return func() tea.Msg {
		return searchCompleted{Result: a.page.RunSearch(a.ctx, t)}
	}
}

func (a *App) runDetail(t detail.Ticket) tea.Cmd {
	a.logger.Debug("detail request", zap.String("recipe_id", t.RecipeID), zap.Stringer("purpose", t.Purpose))
	return func() tea.Msg {
		return detailCompleted{Result: a.page.RunDetail(a.ctx, t)}
	}
}

func (a *App) tickToasts() tea.Cmd {
	return tea.Tick(toastInterval, func(time.Time) tea.Msg { return toastTick{} })
}

func (a *App) runProbe() {
	defer close(a.probeC)
	a.probe.Run(a.ctx, func(u probe.Update) {
		select {
		case a.probeC <- u:
		case <-a.ctx.Done():
		}
	})
}

func (a *App) listenProbe() tea.Cmd {
	ch := a.probeC
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return probeFinished{}
		}
		return probeUpdated{Update: u}
	}
}

// SetDimensions resizes the layout.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.input.Width = max(width-10, 20)
	a.detail.Width = width
	a.detail.Height = max(height-4, 5)
	a.refreshDetail()
}

func (a *App) refreshDetail() {
	v := a.page.Snapshot().Detail
	if !v.Open {
		return
	}
	a.detail.SetContent(a.styles.Detail(v, a.width-4))
}

// View implements tea.Model.
func (a *App) View() string {
	if a.closed {
		return ""
	}
	snap := a.page.Snapshot()

	sections := make([]string, 0, 6)
	sections = append(sections, a.styles.Title.Render("SmartChef")+"  "+a.renderProbe())

	switch {
	case snap.Detail.Open:
		sections = append(sections, a.detail.View(), a.styles.Help.Render("esc back • g generate instructions • ↑/↓ scroll"))
	case snap.Phase == discovery.PhaseResults:
		sections = append(sections,
			a.styles.Results(snap.Results, snap.SearchedWith, a.cursor, min(a.width-2, 72)),
			a.styles.Help.Render("↑/↓ move • enter open • n new search • ctrl+c quit"))
	default:
		sections = append(sections, a.renderPicker(snap))
	}

	if toasts := a.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	return strings.Join(sections, "\n\n")
}

func (a *App) renderPicker(snap discovery.Snapshot) string {
	var b strings.Builder

	b.WriteString(a.input.View())
	b.WriteString("\n")

	for i, s := range snap.Suggestions {
		if i == snap.Highlight {
			b.WriteString(a.styles.Selected.Render(" " + s + " "))
		} else {
			b.WriteString(a.styles.Normal.Render(" " + s))
		}
		b.WriteString("\n")
	}

	if len(snap.Selected) > 0 {
		b.WriteString("\n")
		chips := make([]string, len(snap.Selected))
		for i, s := range snap.Selected {
			chips[i] = a.styles.Selected.Render(" " + s + " ")
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if snap.Searching {
		b.WriteString(a.spinner.View() + " Finding recipes...")
	} else {
		b.WriteString(a.styles.Help.Render("enter add • tab find recipes • backspace remove last • ctrl+x clear • ctrl+c quit"))
	}
	return b.String()
}

func (a *App) renderProbe() string {
	title, sub := probe.Status(a.probeState)
	if title == "" {
		return ""
	}
	switch a.probeState {
	case probe.StateProbing:
		return a.spinner.View() + " " + a.styles.Muted.Render(title+" "+sub)
	case probe.StateReady:
		return a.styles.Success.Render(title)
	default:
		return a.styles.Muted.Render(title)
	}
}

func (a *App) renderToasts() string {
	active := a.toasts.Active()
	if len(active) == 0 {
		return ""
	}
	out := make([]string, 0, len(active))
	for _, n := range active {
		body := a.styles.Heading.Render(n.Title)
		if n.Description != "" {
			body += "\n" + a.styles.Muted.Render(n.Description)
		}
		style := a.styles.Toast
		if n.Variant == notify.VariantDestructive {
			style = a.styles.ToastErr
		}
		out = append(out, style.Render(body))
	}
	return strings.Join(out, "\n")
}
