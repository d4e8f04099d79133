// Package tui is the interactive terminal front end. It projects the shared
// view-state and runs console actions as bubbletea commands.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloud-wave-best-zizon/order-console/internal/console"
	"github.com/cloud-wave-best-zizon/order-console/internal/form"
	"github.com/cloud-wave-best-zizon/order-console/internal/view"
)

// outcomeMsg carries a finished action back onto the update loop.
type outcomeMsg struct {
	outcome console.Outcome
}

// fieldInput binds one text input to a field of one of the two forms.
type fieldInput struct {
	form  *form.Form
	field form.Field
	input textinput.Model
}

type Model struct {
	ctx     context.Context
	console *console.Console
	state   *view.State
	styles  view.Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	inputs []fieldInput
	focus  int
	// pending counts actions in flight. Responses are applied in arrival
	// order, so a slow response can overwrite a newer one.
	pending int
}

func New(ctx context.Context, c *console.Console, state *view.State) Model {
	m := Model{
		ctx:     ctx,
		console: c,
		state:   state,
		styles:  view.DefaultStyles(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	for _, f := range []*form.Form{state.Order, state.Item} {
		for _, field := range f.Schema().Fields {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = field.Label
			ti.CharLimit = 256
			ti.Width = 40
			ti.SetValue(f.Get(field.ID))
			m.inputs = append(m.inputs, fieldInput{form: f, field: field, input: ti})
		}
	}
	if len(m.inputs) > 0 {
		m.inputs[0].input.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case outcomeMsg:
		console.Apply(m.state, msg.outcome)
		if m.pending > 0 {
			m.pending--
		}
		m.syncInputs()
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Clear):
		m.state.ClearForms()
		m.syncInputs()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil
	}

	for page, binding := range m.keys.Pages {
		if key.Matches(msg, binding) {
			m.state.Nav.Show(page)
			return m, nil
		}
	}

	for _, a := range m.state.Nav.Active().Actions() {
		if key.Matches(msg, m.keys.Actions[a]) {
			return m.run(a)
		}
	}

	return m.updateFocused(msg)
}

// run captures the forms now and dispatches the request off the update loop.
func (m Model) run(a view.Action) (tea.Model, tea.Cmd) {
	snap := m.state.Capture()
	c, ctx := m.console, m.ctx
	m.pending++

	action := func() tea.Msg {
		return outcomeMsg{outcome: c.Execute(ctx, a, snap)}
	}
	if m.pending == 1 {
		return m, tea.Batch(action, m.spinner.Tick)
	}
	return m, action
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	in := &m.inputs[m.focus]
	var cmd tea.Cmd
	in.input, cmd = in.input.Update(msg)
	in.form.Set(in.field.ID, in.input.Value())
	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].input.Focus()
}

// syncInputs copies the form state back into the inputs after the state was
// changed outside of typing.
func (m *Model) syncInputs() {
	for i := range m.inputs {
		in := &m.inputs[i]
		if v := in.form.Get(in.field.ID); v != in.input.Value() {
			in.input.SetValue(v)
		}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(view.RenderTabs(m.state.Nav, m.styles))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderForm("Order", m.state.Order))
	sb.WriteString("\n")
	sb.WriteString(m.renderForm("Item", m.state.Item))

	if m.state.Results != nil {
		sb.WriteString("\n")
		sb.WriteString(m.state.Results.Render(m.styles))
	}

	sb.WriteString("\n")
	if m.pending > 0 {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
	}
	sb.WriteString(view.RenderFlash(m.state.Flash, m.styles))
	sb.WriteString("\n\n")
	sb.WriteString(m.help.ShortHelpView(m.keys.pageHelp(m.state.Nav.Active())))
	sb.WriteString("\n")
	sb.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderForm(title string, f *form.Form) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")
	for i, in := range m.inputs {
		if in.form != f {
			continue
		}
		label := m.styles.Label.Render(in.field.Label + ":")
		line := label + " " + in.input.View()
		if i == m.focus {
			line = m.styles.FocusedLine.Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Run starts the program on the terminal and blocks until it quits.
func Run(ctx context.Context, c *console.Console, state *view.State) error {
	p := tea.NewProgram(New(ctx, c, state), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
