package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRoleGateStartsUnselected(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	assert.Equal(t, roleNone, m.role)
	assert.Nil(t, m.admin)
	assert.Nil(t, m.agent)
	assert.Contains(t, m.View(), "AI CS Agent")
}

func TestSelectAdminActivatesDashboard(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := next.(Model)
	require.NotNil(t, cmd, "activation must fire the six dashboard fetches")
	assert.Equal(t, roleAdmin, model.role)
	require.NotNil(t, model.admin)
	assert.True(t, model.admin.loadingAny())
}

func TestSelectAgentActivatesWorklist(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, _ := m.Update(keyRune('j'))
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, roleAgent, model.role)
	require.NotNil(t, model.agent)
	assert.True(t, model.agent.worklist.newQueue.loading())
}

func TestEscResetsToRoleGate(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := next.(Model)
	assert.Equal(t, roleNone, model.role)
	assert.Nil(t, model.admin, "reset drops the workspace so a remount re-fetches")
}

func TestRemountRefetches(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := next.(Model)
	model.admin.kpis.resolve(settlement(1000), nil)

	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, model.admin.kpis.loading(), "fresh workspace starts from scratch")
}

func TestLateResultAfterResetIsDiscarded(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyEsc})

	// The fetch fired before reset resolves now; no workspace owns it.
	next, cmd := next.(Model).Update(kpisMsg{data: settlement(1000)})
	model := next.(Model)
	assert.Nil(t, model.admin)
	assert.Nil(t, cmd)
}

func TestNoticeUpdatesStatusLine(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, _ := m.Update(noticeMsg{text: "피드백이 성공적으로 전송되었습니다!"})
	model := next.(Model)
	assert.Equal(t, "피드백이 성공적으로 전송되었습니다!", model.statusLine)
	assert.False(t, model.statusIsErr)
	assert.Contains(t, model.logs, "피드백이 성공적으로 전송되었습니다!")
}

func TestQuitConfirmFlow(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, _ := m.Update(keyRune('q'))
	model := next.(Model)
	assert.True(t, model.quitConfirm)
	assert.Contains(t, model.View(), "정말 종료하시겠습니까?")

	next, _ = model.Update(keyRune('n'))
	model = next.(Model)
	assert.False(t, model.quitConfirm)

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	_ = next
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInquirySelectionDrivesSiblingPanels(t *testing.T) {
	m := NewModel(noNetworkDeps(t))
	next, _ := m.Update(keyRune('j'))
	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := next.(Model)
	require.NotNil(t, model.agent)

	inq := seedInquiry("q1", "u1", "포장이 찢어져서 왔어요")
	next, cmd := model.Update(inquirySelectedMsg{inquiry: inq})
	model = next.(Model)
	require.NotNil(t, cmd, "selection must fire suggestion and customer lookup")

	require.NotNil(t, model.agent.selected)
	assert.Equal(t, "q1", model.agent.selected.QuestionID)
	require.Len(t, model.agent.chat.messages, 1)
	assert.Equal(t, "포장이 찢어져서 왔어요", model.agent.chat.messages[0].text)
	assert.True(t, model.agent.chat.suggestion.loading())
	assert.Equal(t, "u1", model.agent.customer.customerID)
	assert.True(t, model.agent.customer.lookup.loading())
}

func TestReselectingSameInquiryDoesNotReset(t *testing.T) {
	m := newAgentModel(noNetworkDeps(t))
	inq := seedInquiry("q1", "u1", "포장이 찢어져서 왔어요")
	m, _ = m.update(inquirySelectedMsg{inquiry: inq})
	m.chat.messages = append(m.chat.messages, chatMessage{sender: senderAI, text: "네", logID: "log-1"})

	m, cmd := m.update(inquirySelectedMsg{inquiry: inq})
	assert.Nil(t, cmd)
	assert.Len(t, m.chat.messages, 2, "same identity means no session reset")
}

func TestSelectionIsReadOnlyDownstream(t *testing.T) {
	m := newAgentModel(noNetworkDeps(t))
	inq := seedInquiry("q1", "u1", "포장이 찢어져서 왔어요")
	m, _ = m.update(inquirySelectedMsg{inquiry: inq})

	// Children receive the inquiry by value; mutating the chat's copy must
	// not leak back into the hub's selection.
	m.chat.inquiry.QuestionText = "변조된 질문"
	assert.Equal(t, "포장이 찢어져서 왔어요", m.selected.QuestionText)
}
