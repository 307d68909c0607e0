package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"csdesk/internal/api"
)

// Message senders as rendered in the transcript.
const (
	senderCustomer = "customer"
	senderAgent    = "agent"
	senderAI       = "ai"
)

type chatMessage struct {
	sender string
	text   string
	// logID is present only on AI replies that can receive feedback. An AI
	// message synthesized from a transport error never carries one.
	logID string
}

type feedbackPhase int

const (
	feedbackClosed feedbackPhase = iota
	feedbackAwaitingInput
	feedbackSubmitting
)

// chatModel is one conversation session. Unbound it is the generic test
// session (fixed placeholder counterpart); bound it follows the selected
// inquiry and resets wholesale whenever the inquiry identity changes.
type chatModel struct {
	deps  Deps
	id    string
	title string

	// legacy routes sends through the older multipart query endpoint
	// instead of the JSON chat endpoint.
	legacy  bool
	actorID string

	bound   bool
	inquiry api.Inquiry
	session int

	messages []chatMessage
	input    textinput.Model
	sending  bool

	suggestion remote[string]

	feedbackPhase  feedbackPhase
	feedbackLogID  string
	feedbackInput  textinput.Model
	feedbackCursor int
}

func newChatModel(deps Deps, title, actorID string, legacy bool) chatModel {
	input := textinput.New()
	input.Prompt = "❯ "
	input.CharLimit = 2000
	input.Placeholder = "메시지를 입력하세요..."

	correction := textinput.New()
	correction.Prompt = "❯ "
	correction.CharLimit = 2000
	correction.Placeholder = "어떤 답변이 올바른 답변인가요?"

	return chatModel{
		deps:           deps,
		id:             uuid.NewString(),
		title:          title,
		legacy:         legacy,
		actorID:        actorID,
		input:          input,
		feedbackInput:  correction,
		feedbackCursor: -1,
	}
}

// bind resets the whole session onto a new inquiry: prior messages are
// discarded, the transcript is seeded with the customer's question, and an
// AI suggestion is requested into its own slot.
func (m *chatModel) bind(inq api.Inquiry) tea.Cmd {
	m.session++
	m.bound = true
	m.inquiry = inq
	m.actorID = inq.CustomerID
	m.messages = []chatMessage{{sender: senderCustomer, text: inq.QuestionText}}
	m.input.SetValue("")
	m.sending = false
	m.closeFeedback()
	m.feedbackCursor = -1
	m.suggestion = remote[string]{}
	m.suggestion.begin()
	return m.suggestionCmd(inq.QuestionText)
}

func (m chatModel) suggestionCmd(questionText string) tea.Cmd {
	deps := m.deps
	id := m.id
	session := m.session
	return func() tea.Msg {
		text, err := deps.API.Suggestion(context.Background(), questionText)
		return suggestionMsg{chatID: id, session: session, text: text, err: err}
	}
}

func (m chatModel) postCmd(text string) tea.Cmd {
	deps := m.deps
	id := m.id
	session := m.session
	actor := m.actorID
	legacy := m.legacy
	return func() tea.Msg {
		ctx := context.Background()
		var reply api.ChatReply
		var err error
		if legacy {
			reply, err = deps.API.LegacyQuery(ctx, actor, text)
		} else {
			reply, err = deps.API.Chat(ctx, actor, text)
		}
		return chatReplyMsg{chatID: id, session: session, reply: reply, err: err}
	}
}

func (m chatModel) feedbackCmd(logID, resolution, finalResolution string) tea.Cmd {
	deps := m.deps
	id := m.id
	return func() tea.Msg {
		err := deps.API.Feedback(context.Background(), logID, resolution, finalResolution)
		return feedbackDoneMsg{chatID: id, err: err}
	}
}

func (m chatModel) outboundSender() string {
	if m.bound {
		return senderAgent
	}
	return senderCustomer
}

// send validates, appends the outbound message optimistically and fires the
// round trip. Blank input never reaches the network.
func (m chatModel) send() (chatModel, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if m.sending {
		return m, nil
	}
	m.messages = append(m.messages, chatMessage{sender: m.outboundSender(), text: text})
	m.input.SetValue("")
	m.sending = true
	return m, m.postCmd(text)
}

// acceptSuggestion copies the drafted reply into the input verbatim. No-op
// while the suggestion is still loading or empty.
func (m *chatModel) acceptSuggestion() {
	if !m.suggestion.ready() {
		return
	}
	if strings.TrimSpace(m.suggestion.data) == "" {
		return
	}
	m.input.SetValue(m.suggestion.data)
	m.input.CursorEnd()
}

// feedbackTargets lists transcript indexes of AI messages that can still
// receive feedback. Controls stay usable across repeat submissions.
func (m chatModel) feedbackTargets() []int {
	var out []int
	for i, msg := range m.messages {
		if msg.sender == senderAI && msg.logID != "" {
			out = append(out, i)
		}
	}
	return out
}

func (m chatModel) feedbackTarget() (chatMessage, bool) {
	targets := m.feedbackTargets()
	if len(targets) == 0 {
		return chatMessage{}, false
	}
	if m.feedbackCursor >= 0 {
		for _, idx := range targets {
			if idx == m.feedbackCursor {
				return m.messages[idx], true
			}
		}
	}
	return m.messages[targets[len(targets)-1]], true
}

func (m *chatModel) cycleFeedbackTarget() {
	targets := m.feedbackTargets()
	if len(targets) == 0 {
		return
	}
	current := len(targets) - 1
	for i, idx := range targets {
		if idx == m.feedbackCursor {
			current = i
			break
		}
	}
	m.feedbackCursor = targets[(current+len(targets)-1)%len(targets)]
}

func (m chatModel) beginFeedback(resolution string) (chatModel, tea.Cmd) {
	if m.feedbackPhase != feedbackClosed {
		return m, nil
	}
	target, ok := m.feedbackTarget()
	if !ok {
		return m, notify("피드백을 보낼 AI 응답이 없습니다.")
	}
	m.feedbackLogID = target.logID
	if resolution == api.ResolutionSuccess {
		m.feedbackPhase = feedbackSubmitting
		return m, m.feedbackCmd(target.logID, api.ResolutionSuccess, "")
	}
	m.feedbackPhase = feedbackAwaitingInput
	m.feedbackInput.SetValue("")
	m.feedbackInput.Focus()
	m.input.Blur()
	return m, nil
}

func (m *chatModel) closeFeedback() {
	m.feedbackPhase = feedbackClosed
	m.feedbackLogID = ""
	m.feedbackInput.SetValue("")
	m.feedbackInput.Blur()
}

// abortFeedback drops the pending correction without any network call.
func (m chatModel) abortFeedback() (chatModel, tea.Cmd) {
	m.closeFeedback()
	m.input.Focus()
	return m, notifyErr("올바른 답변을 입력해야 피드백을 보낼 수 있습니다.")
}

func (m chatModel) submitCorrection() (chatModel, tea.Cmd) {
	text := strings.TrimSpace(m.feedbackInput.Value())
	if text == "" {
		return m.abortFeedback()
	}
	logID := m.feedbackLogID
	m.feedbackPhase = feedbackSubmitting
	m.feedbackInput.Blur()
	m.input.Focus()
	return m, m.feedbackCmd(logID, api.ResolutionFailure, text)
}

func (m chatModel) handleKey(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	if m.feedbackPhase == feedbackAwaitingInput {
		switch msg.String() {
		case "enter":
			return m.submitCorrection()
		case "esc":
			return m.abortFeedback()
		}
		var cmd tea.Cmd
		m.feedbackInput, cmd = m.feedbackInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		return m.send()
	case "ctrl+s":
		m.acceptSuggestion()
		return m, nil
	case "ctrl+y":
		return m.beginFeedback(api.ResolutionSuccess)
	case "ctrl+n":
		return m.beginFeedback(api.ResolutionFailure)
	case "ctrl+p":
		m.cycleFeedbackTarget()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if msg.chatID != m.id || msg.session != m.session {
			return m, nil
		}
		m.sending = false
		if msg.err != nil {
			m.messages = append(m.messages, chatMessage{
				sender: senderAI,
				text:   fmt.Sprintf("Error: %v", msg.err),
			})
			return m, nil
		}
		m.messages = append(m.messages, chatMessage{
			sender: senderAI,
			text:   msg.reply.Response,
			logID:  msg.reply.LogID,
		})
		return m, nil
	case suggestionMsg:
		if msg.chatID != m.id || msg.session != m.session {
			return m, nil
		}
		m.suggestion.resolve(msg.text, msg.err)
		return m, nil
	case feedbackDoneMsg:
		if msg.chatID != m.id {
			return m, nil
		}
		m.closeFeedback()
		m.input.Focus()
		if msg.err != nil {
			return m, notifyErr(fmt.Sprintf("피드백 전송 실패: %v", msg.err))
		}
		return m, notify("피드백이 성공적으로 전송되었습니다!")
	}
	return m, nil
}

func (m *chatModel) focus() {
	if m.feedbackPhase != feedbackAwaitingInput {
		m.input.Focus()
	}
}

func (m *chatModel) blur() {
	m.input.Blur()
}

func (m chatModel) view(th uiTheme, width int, focused bool) string {
	var b strings.Builder
	b.WriteString(th.panelTitle.Render(m.title))
	b.WriteString("\n")

	if len(m.messages) == 0 {
		b.WriteString(th.muted.Render("대화 내역이 없습니다."))
		b.WriteString("\n")
	}
	target, hasTarget := m.feedbackTarget()
	for _, msg := range m.messages {
		style, ok := th.sender[msg.sender]
		if !ok {
			style = th.value
		}
		line := style.Render(msg.sender+":") + " " + th.value.Render(msg.text)
		if msg.sender == senderAI && msg.logID != "" {
			marker := "[피드백 가능]"
			if hasTarget && target.logID == msg.logID {
				marker = "[피드백 대상 · ^y 도움됨 / ^n 아쉬움]"
			}
			line += " " + th.muted.Render(marker)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.bound {
		switch {
		case m.suggestion.loading():
			b.WriteString(th.muted.Render("AI 제안 답변 생성 중..."))
			b.WriteString("\n")
		case m.suggestion.failed():
			b.WriteString(th.errorStatus.Render("AI 제안 답변을 불러오지 못했습니다."))
			b.WriteString("\n")
		case m.suggestion.ready() && strings.TrimSpace(m.suggestion.data) != "":
			b.WriteString(th.warn.Render("제안: ") + th.value.Render(m.suggestion.data) + th.muted.Render("  (^s 입력창에 복사)"))
			b.WriteString("\n")
		}
	}

	if m.sending {
		b.WriteString(th.muted.Render("전송 중..."))
		b.WriteString("\n")
	}
	if m.feedbackPhase == feedbackSubmitting {
		b.WriteString(th.muted.Render("피드백 전송 중..."))
		b.WriteString("\n")
	}

	if m.feedbackPhase == feedbackAwaitingInput {
		b.WriteString(th.modal.Render("어떤 답변이 올바른 답변인가요?\n" + m.feedbackInput.View()))
		b.WriteString("\n")
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	panel := th.panel
	if focused {
		panel = th.panelFocus
	}
	return panel.Width(width).Render(b.String())
}
