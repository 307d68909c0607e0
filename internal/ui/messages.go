package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"csdesk/internal/api"
)

// Result messages for every asynchronous round trip. Each carries enough
// identity (chat id, session, segment, customer id) for the receiving model
// to drop results that no longer belong to its current state.

type kpisMsg struct {
	data api.KPISnapshot
	err  error
}

type warningsMsg struct {
	data []string
	err  error
}

type salesTrendMsg struct {
	data []api.SalesPoint
	err  error
}

type reviewsMsg struct {
	data []api.NegativeReview
	err  error
}

type segmentCustomersMsg struct {
	segment string
	data    []api.Customer
	err     error
}

type approveDoneMsg struct {
	reviewID string
	err      error
}

type couponDoneMsg struct {
	count int
	err   error
}

type chartSavedMsg struct {
	path string
	err  error
}

type inquiriesMsg struct {
	status string
	data   []api.Inquiry
	err    error
}

type chatReplyMsg struct {
	chatID  string
	session int
	reply   api.ChatReply
	err     error
}

type suggestionMsg struct {
	chatID  string
	session int
	text    string
	err     error
}

type feedbackDoneMsg struct {
	chatID string
	err    error
}

type customerLookupMsg struct {
	customerID string
	customer   *api.Customer
	err        error
}

// inquirySelectedMsg bubbles a worklist selection up to the agent hub, the
// single owner of the cross-panel selection.
type inquirySelectedMsg struct {
	inquiry api.Inquiry
}

// noticeMsg is a one-shot status-line notice from any panel.
type noticeMsg struct {
	text  string
	isErr bool
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: true} }
}
