package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"csdesk/internal/api"
)

// worklistModel holds the agent's inquiry queues. The new and completed
// queues fetch in parallel on activation; the in-progress queue has no
// backend endpoint yet and stays a static empty list until one exists.
type worklistModel struct {
	deps      Deps
	newQueue  remote[[]api.Inquiry]
	completed remote[[]api.Inquiry]
	cursor    int
}

func newWorklistModel(deps Deps) worklistModel {
	return worklistModel{deps: deps}
}

func (m *worklistModel) activate() tea.Cmd {
	m.newQueue.begin()
	m.completed.begin()
	return tea.Batch(
		m.fetchCmd(api.InquiryStatusNew),
		m.fetchCmd(api.InquiryStatusCompleted),
	)
}

func (m worklistModel) fetchCmd(status string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		items, err := deps.API.Inquiries(context.Background(), status)
		return inquiriesMsg{status: status, data: items, err: err}
	}
}

// selectable flattens the two fetched queues in display order. Selection
// never removes an item from its queue.
func (m worklistModel) selectable() []api.Inquiry {
	var out []api.Inquiry
	if m.newQueue.ready() {
		out = append(out, m.newQueue.data...)
	}
	if m.completed.ready() {
		out = append(out, m.completed.data...)
	}
	return out
}

func (m worklistModel) update(msg tea.Msg) (worklistModel, tea.Cmd) {
	if msg, ok := msg.(inquiriesMsg); ok {
		switch msg.status {
		case api.InquiryStatusNew:
			m.newQueue.resolve(msg.data, msg.err)
		case api.InquiryStatusCompleted:
			m.completed.resolve(msg.data, msg.err)
		}
		if total := len(m.selectable()); m.cursor >= total && total > 0 {
			m.cursor = total - 1
		}
	}
	return m, nil
}

func (m worklistModel) handleKey(msg tea.KeyMsg) (worklistModel, tea.Cmd) {
	items := m.selectable()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(items) {
			selected := items[m.cursor]
			return m, func() tea.Msg { return inquirySelectedMsg{inquiry: selected} }
		}
	}
	return m, nil
}

func (m worklistModel) renderQueue(th uiTheme, title string, q remote[[]api.Inquiry], offset int) string {
	var b strings.Builder
	count := 0
	if q.ready() {
		count = len(q.data)
	}
	b.WriteString(th.warn.Render(fmt.Sprintf("%s (%d)", title, count)))
	b.WriteString("\n")
	switch {
	case q.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
		b.WriteString("\n")
	case q.failed():
		b.WriteString(th.errorStatus.Render("문의 목록을 불러오는 데 실패했습니다."))
		b.WriteString("\n")
	case q.ready() && len(q.data) == 0:
		b.WriteString(th.muted.Render("없음"))
		b.WriteString("\n")
	default:
		for i, item := range q.data {
			line := fmt.Sprintf("%s  (고객 ID: %s)", item.QuestionText, item.CustomerID)
			if offset+i == m.cursor {
				line = th.cursorLine.Render("› " + line)
			} else {
				line = th.value.Render("  " + line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m worklistModel) view(th uiTheme, width int, focused bool) string {
	var b strings.Builder
	b.WriteString(th.panelTitle.Render("문의 대기열"))
	b.WriteString("\n\n")

	b.WriteString(m.renderQueue(th, "새로 들어온 문의", m.newQueue, 0))
	b.WriteString("\n")

	// No endpoint serves this queue yet; rendered as an explicit gap
	// rather than hidden.
	b.WriteString(th.warn.Render("내가 처리 중인 문의 (0)"))
	b.WriteString("\n")
	b.WriteString(th.muted.Render("없음"))
	b.WriteString("\n\n")

	offset := 0
	if m.newQueue.ready() {
		offset = len(m.newQueue.data)
	}
	b.WriteString(m.renderQueue(th, "처리 완료", m.completed, offset))

	panel := th.panel
	if focused {
		panel = th.panelFocus
	}
	return panel.Width(width).Render(b.String())
}
