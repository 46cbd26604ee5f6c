package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

// LeadsState is the state of the leads view.
type LeadsState int

const (
	// LeadsLoading has a fetch in flight.
	LeadsLoading LeadsState = iota
	// LeadsLoaded shows the fetched collection.
	LeadsLoaded
	// LeadsFailed shows why the fetch failed.
	LeadsFailed
)

func (s LeadsState) String() string {
	switch s {
	case LeadsLoading:
		return "loading"
	case LeadsLoaded:
		return "loaded"
	case LeadsFailed:
		return "failed"
	default:
		return fmt.Sprintf("LeadsState(%d)", int(s))
	}
}

// FetchFunc loads the lead collection.
type FetchFunc func(ctx context.Context) ([]lead.Lead, error)

// LeadsLoadedMsg carries a successful fetch.
type LeadsLoadedMsg struct {
	Leads []lead.Lead
}

// LeadsFailedMsg carries a failed fetch.
type LeadsFailedMsg struct {
	Err error
}

type leadsKeyMap struct {
	Quit   key.Binding
	Reload key.Binding
}

var leadsKeys = leadsKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
}

// LeadsModel is the admin leads view. It starts a fetch on Init and moves
// to LeadsLoaded or LeadsFailed when the fetch resolves. Fetches are only
// repeated when the user asks for it.
type LeadsModel struct {
	ctx     context.Context
	fetch   FetchFunc
	loc     *time.Location
	styles  Styles
	spinner spinner.Model

	state LeadsState
	leads []lead.Lead
	err   error
}

// NewLeadsModel returns a model in the LeadsLoading state.
func NewLeadsModel(ctx context.Context, fetch FetchFunc, loc *time.Location, styles Styles) LeadsModel {
	return LeadsModel{
		ctx:     ctx,
		fetch:   fetch,
		loc:     loc,
		styles:  styles,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		state:   LeadsLoading,
	}
}

// State returns the current state.
func (m LeadsModel) State() LeadsState { return m.state }

// Leads returns the loaded collection.
func (m LeadsModel) Leads() []lead.Lead { return m.leads }

// Err returns the fetch error in LeadsFailed.
func (m LeadsModel) Err() error { return m.err }

// Init initializes the model (required by Bubble Tea)
func (m LeadsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m LeadsModel) load() tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		leads, err := fetch(ctx)
		if err != nil {
			return LeadsFailedMsg{Err: err}
		}
		return LeadsLoadedMsg{Leads: leads}
	}
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m LeadsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, leadsKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, leadsKeys.Reload) && m.state != LeadsLoading:
			m.state = LeadsLoading
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.load())
		}
		return m, nil

	case LeadsLoadedMsg:
		m.state = LeadsLoaded
		m.leads = msg.Leads
		return m, nil

	case LeadsFailedMsg:
		m.state = LeadsFailed
		m.err = msg.Err
		if errors.IsAuth(msg.Err) {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != LeadsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the model (required by Bubble Tea)
func (m LeadsModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Leads"))
	b.WriteString("\n")

	switch m.state {
	case LeadsLoading:
		b.WriteString(m.spinner.View() + " Loading...")
	case LeadsFailed:
		b.WriteString(m.styles.Error.Render("Could not load leads: "))
		b.WriteString(errorLine(m.err))
	case LeadsLoaded:
		b.WriteString(RenderLeadsTable(m.leads, m.loc, m.styles))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d lead(s)", len(m.leads))))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("r reload • q quit"))
	b.WriteString("\n")
	return b.String()
}

// errorLine keeps the first line of an error, dropping suggestion blocks.
func errorLine(err error) string {
	if err == nil {
		return "unknown error"
	}
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}

// RunLeads shows the leads view until the user quits and returns what it
// loaded. A rejected session ends the program right away so the caller can
// send the user back to login.
func RunLeads(ctx context.Context, fetch FetchFunc, loc *time.Location, styles Styles) ([]lead.Lead, error) {
	final, err := tea.NewProgram(NewLeadsModel(ctx, fetch, loc, styles), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(LeadsModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", final)
	}
	switch m.State() {
	case LeadsFailed:
		return nil, m.Err()
	case LeadsLoading:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, context.Canceled
	}
	return m.Leads(), nil
}
