package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// BackToLedgerMsg asks the app model to return to the ledger page.
type BackToLedgerMsg struct{}

// AddEntryModel is the form for recording a manual entry.
type AddEntryModel struct {
	backend *Backend
	inputs  []textinput.Model
	labels  []string
	focus   int
	errText string
}

func NewAddEntryModel(backend *Backend) AddEntryModel {
	labels := []string{"Amount", "Category", "Store", "Note", "Date"}

	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		input := textinput.New()
		input.CharLimit = 64
		inputs[i] = input
	}
	inputs[0].Placeholder = "-12.50 (negative for spend)"
	inputs[1].Placeholder = "Supermarket"
	inputs[2].Placeholder = "optional"
	inputs[3].Placeholder = "optional"
	inputs[4].Placeholder = dateLayout
	inputs[4].SetValue(time.Now().UTC().Format(dateLayout))

	inputs[0].Focus()

	return AddEntryModel{backend: backend, inputs: inputs, labels: labels}
}

func (m AddEntryModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AddEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackToLedgerMsg{} }
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.focus--
			} else {
				m.focus++
			}
			if m.focus < 0 {
				m.focus = len(m.inputs) - 1
			}
			if m.focus >= len(m.inputs) {
				m.focus = 0
			}
			return m, m.refocus()
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.focus++
				return m, m.refocus()
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m AddEntryModel) refocus() tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmds = append(cmds, m.inputs[i].Focus())
		} else {
			m.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (m AddEntryModel) submit() (tea.Model, tea.Cmd) {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.inputs[0].Value()))
	if err != nil {
		m.errText = "amount must be a number, e.g. -12.50"
		return m, nil
	}

	date := time.Now().UTC()
	if raw := strings.TrimSpace(m.inputs[4].Value()); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			m.errText = "date must look like " + dateLayout
			return m, nil
		}
		date = parsed
	}

	m.errText = ""
	return m, addEntryCmd(
		m.backend,
		amount,
		strings.TrimSpace(m.inputs[1].Value()),
		strings.TrimSpace(m.inputs[2].Value()),
		strings.TrimSpace(m.inputs[3].Value()),
		date,
	)
}

// Reset clears the form for the next entry, keeping today's date.
func (m AddEntryModel) Reset() AddEntryModel {
	return NewAddEntryModel(m.backend)
}

func (m AddEntryModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New entry"))
	b.WriteString("\n\n")
	for i, input := range m.inputs {
		b.WriteString(formLabelStyle.Render(fmt.Sprintf("%-9s", m.labels[i])))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString("\n" + errorMessageStyle(m.errText))
	}
	b.WriteString("\n" + summaryStyle.Render("enter save · esc cancel"))
	return docStyle.Render(b.String())
}
