package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"csdesk/internal/api"
)

type agentFocus int

const (
	agentFocusWorklist agentFocus = iota
	agentFocusChat
)

// agentModel is the workbench: worklist on the left, conversation in the
// middle, customer info on the right. It owns the selected inquiry; the
// other two panels only read it.
type agentModel struct {
	deps     Deps
	worklist worklistModel
	chat     chatModel
	customer customerModel
	selected *api.Inquiry
	focus    agentFocus
}

func newAgentModel(deps Deps) agentModel {
	chat := newChatModel(deps, "상담 대화", deps.TestUserID, true)
	return agentModel{
		deps:     deps,
		worklist: newWorklistModel(deps),
		chat:     chat,
		customer: newCustomerModel(deps),
	}
}

func (m *agentModel) activate() tea.Cmd {
	return m.worklist.activate()
}

func (m agentModel) update(msg tea.Msg) (agentModel, tea.Cmd) {
	if msg, ok := msg.(inquirySelectedMsg); ok {
		inq := msg.inquiry
		// Re-selecting the same inquiry is a no-op; the session only
		// resets when the identity changes.
		if m.selected != nil && m.selected.QuestionID == inq.QuestionID {
			return m, nil
		}
		m.selected = &inq
		var cmds []tea.Cmd
		if cmd := m.chat.bind(inq); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.customer.setContext(inq.CustomerID, &inq); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.focus = agentFocusChat
		m.chat.focus()
		return m, tea.Batch(cmds...)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.worklist, cmd = m.worklist.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.chat, cmd = m.chat.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.customer, cmd = m.customer.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m agentModel) handleKey(msg tea.KeyMsg) (agentModel, tea.Cmd) {
	if msg.String() == "tab" && m.chat.feedbackPhase != feedbackAwaitingInput {
		if m.focus == agentFocusWorklist {
			m.focus = agentFocusChat
			m.chat.focus()
		} else {
			m.focus = agentFocusWorklist
			m.chat.blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case agentFocusWorklist:
		m.worklist, cmd = m.worklist.handleKey(msg)
	case agentFocusChat:
		m.chat, cmd = m.chat.handleKey(msg)
	}
	return m, cmd
}

func (m agentModel) view(th uiTheme, width int) string {
	side := width / 4
	if side < 24 {
		side = 24
	}
	middle := width - 2*side - 6
	if middle < 30 {
		middle = 30
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.worklist.view(th, side, m.focus == agentFocusWorklist),
		m.chat.view(th, middle, m.focus == agentFocusChat),
		m.customer.view(th, side),
	)
}
