// Package ui implements the terminal client: role selection, the admin
// dashboard and the agent workbench. All state lives in bubbletea models;
// every network round trip is a tea.Cmd that resolves into a typed message.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"csdesk/internal/api"
)

// Deps is the explicit session/config object threaded into every model.
// Nothing below this struct reaches for globals, so tests can substitute a
// fake client behind a httptest server.
type Deps struct {
	API           *api.Client
	Log           zerolog.Logger
	AgentID       string
	BIUserID      string
	TestUserID    string
	CouponDetails string
	ChartOutDir   string
}

type role int

const (
	roleNone role = iota
	roleAdmin
	roleAgent
)

const maxLogLines = 200

// Model is the root: a role gate over the two workspaces. Leaving a
// workspace drops it entirely; re-entering builds a fresh one, so every
// remount re-fetches.
type Model struct {
	deps Deps

	role      role
	menuIndex int

	admin *adminModel
	agent *agentModel

	statusLine  string
	statusIsErr bool
	logs        []string
	quitConfirm bool

	width  int
	height int

	spinner spinner.Model
	theme   uiTheme
}

func NewModel(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#05ffa1"))

	return Model{
		deps:       deps,
		role:       roleNone,
		statusLine: "역할을 선택하세요",
		spinner:    sp,
		theme:      newTheme(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) appendLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

func (m *Model) selectRole(r role) tea.Cmd {
	m.role = r
	switch r {
	case roleAdmin:
		admin := newAdminModel(m.deps)
		m.admin = &admin
		m.agent = nil
		m.statusLine = "관리자/CEO 대시보드 (BI 모드)"
		m.statusIsErr = false
		m.deps.Log.Info().Str("role", "admin").Msg("role selected")
		return m.admin.activate()
	case roleAgent:
		agent := newAgentModel(m.deps)
		m.agent = &agent
		m.admin = nil
		m.statusLine = "상담원용 CS 대화 허브 (응대 모드)"
		m.statusIsErr = false
		m.deps.Log.Info().Str("role", "agent").Msg("role selected")
		return m.agent.activate()
	}
	return nil
}

// reset returns to the role gate. Workspace models are dropped, so any
// in-flight result that arrives later finds no owner and is discarded.
func (m *Model) reset() {
	m.role = roleNone
	m.admin = nil
	m.agent = nil
	m.statusLine = "역할을 선택하세요"
	m.statusIsErr = false
}

func (m Model) inModalInput() bool {
	switch {
	case m.role == roleAdmin && m.admin != nil:
		return m.admin.chat.feedbackPhase == feedbackAwaitingInput
	case m.role == roleAgent && m.agent != nil:
		return m.agent.chat.feedbackPhase == feedbackAwaitingInput
	}
	return false
}

func (m Model) inflight() bool {
	switch {
	case m.role == roleAdmin && m.admin != nil:
		a := m.admin
		return a.loadingAny() || a.approving || a.couponSending || a.exporting || a.chat.sending
	case m.role == roleAgent && m.agent != nil:
		g := m.agent
		return g.worklist.newQueue.loading() || g.worklist.completed.loading() ||
			g.chat.sending || g.chat.suggestion.loading() || g.customer.lookup.loading()
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		m.statusLine = msg.text
		m.statusIsErr = msg.isErr
		m.appendLog(msg.text)
		if msg.isErr {
			m.deps.Log.Warn().Msg(msg.text)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.quitConfirm {
			switch msg.String() {
			case "y", "Y", "enter":
				return m, tea.Quit
			case "n", "N", "esc":
				m.quitConfirm = false
				m.statusLine = "종료 취소"
				m.statusIsErr = false
			}
			return m, nil
		}
		if m.role == roleNone {
			switch msg.String() {
			case "up", "k":
				m.menuIndex = (m.menuIndex + 2) % 3
			case "down", "j":
				m.menuIndex = (m.menuIndex + 1) % 3
			case "q", "esc":
				m.quitConfirm = true
			case "enter":
				switch m.menuIndex {
				case 0:
					return m, m.selectRole(roleAdmin)
				case 1:
					return m, m.selectRole(roleAgent)
				case 2:
					m.quitConfirm = true
				}
			}
			return m, nil
		}
		if msg.String() == "esc" && !m.inModalInput() {
			m.reset()
			return m, nil
		}
		switch m.role {
		case roleAdmin:
			if m.admin != nil {
				admin, cmd := m.admin.handleKey(msg)
				m.admin = &admin
				return m, cmd
			}
		case roleAgent:
			if m.agent != nil {
				agent, cmd := m.agent.handleKey(msg)
				m.agent = &agent
				return m, cmd
			}
		}
		return m, nil
	}

	// Everything else is an async result for whichever workspace is live.
	switch m.role {
	case roleAdmin:
		if m.admin != nil {
			admin, cmd := m.admin.update(msg)
			m.admin = &admin
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case roleAgent:
		if m.agent != nil {
			agent, cmd := m.agent.update(msg)
			m.agent = &agent
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) renderRoleMenu() string {
	options := []string{
		"관리자/CEO 대시보드 (BI 모드)",
		"상담원용 CS 대화 허브 (응대 모드)",
		"종료",
	}
	var b strings.Builder
	b.WriteString(m.theme.panelTitle.Render("AI CS Agent"))
	b.WriteString("\n\n")
	for i, opt := range options {
		if i == m.menuIndex {
			b.WriteString(m.theme.menuSelect.Render("› " + opt))
		} else {
			b.WriteString(m.theme.menuOption.Render("  " + opt))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.muted.Render("↑/↓ 이동 · enter 선택 · q 종료"))
	return m.theme.menuFrame.Render(b.String())
}

func (m Model) renderHeader() string {
	title := "csdesk"
	switch m.role {
	case roleAdmin:
		title = "csdesk · 관리자 대시보드"
	case roleAgent:
		title = "csdesk · 상담원 허브"
	}
	if m.inflight() {
		title += "  " + m.spinner.View()
	}
	return m.theme.header.Render(title)
}

func (m Model) renderFooter() string {
	status := m.theme.status
	if m.statusIsErr {
		status = m.theme.errorStatus
	}
	hints := "esc 뒤로 · tab 포커스 전환 · ctrl+c 종료"
	return m.theme.footer.Render(status.Render(m.statusLine) + m.theme.muted.Render("  |  "+hints))
}

func (m Model) renderQuitModal() string {
	return m.theme.modal.Render("정말 종료하시겠습니까? (y/n)")
}

func (m Model) View() string {
	if m.quitConfirm {
		return m.renderQuitModal()
	}

	var body string
	switch m.role {
	case roleNone:
		body = m.renderRoleMenu()
	case roleAdmin:
		if m.admin != nil {
			body = m.admin.view(m.theme, maxInt(40, m.width-4))
		}
	case roleAgent:
		if m.agent != nil {
			body = m.agent.view(m.theme, maxInt(60, m.width-4))
		}
	}
	return fmt.Sprintf("%s\n%s\n%s", m.renderHeader(), body, m.renderFooter())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
