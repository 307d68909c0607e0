package ui

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csdesk/internal/api"
)

func TestWorklistQueuesResolveIndependently(t *testing.T) {
	m := newWorklistModel(noNetworkDeps(t))
	_ = m.activate()
	assert.True(t, m.newQueue.loading())
	assert.True(t, m.completed.loading())

	// Completed resolves first; the new queue must still read as loading.
	m, _ = m.update(inquiriesMsg{status: api.InquiryStatusCompleted, data: []api.Inquiry{
		seedInquiry("q9", "u9", "처리된 문의입니다"),
	}})
	assert.True(t, m.newQueue.loading())
	assert.True(t, m.completed.ready())

	m, _ = m.update(inquiriesMsg{status: api.InquiryStatusNew, err: errors.New("boom")})
	assert.True(t, m.newQueue.failed())
	assert.True(t, m.completed.ready())

	view := m.view(newTheme(), 40, true)
	assert.Contains(t, view, "문의 목록을 불러오는 데 실패했습니다.")
	assert.Contains(t, view, "처리된 문의입니다")
}

func TestWorklistFetchesBothStatuses(t *testing.T) {
	seen := map[string]int{}
	m := newWorklistModel(testDeps(t, func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		seen[status]++
		io.WriteString(w, fmt.Sprintf(`{"inquiries":[{"question_id":"q-%s","customer_id":"u1","question_text":"t","status":"%s"}]}`, status, status))
	}))

	cmdA := m.fetchCmd(api.InquiryStatusNew)
	cmdB := m.fetchCmd(api.InquiryStatusCompleted)
	msgA, okA := cmdA().(inquiriesMsg)
	msgB, okB := cmdB().(inquiriesMsg)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, 1, seen["new"])
	assert.Equal(t, 1, seen["completed"])
	assert.Equal(t, "q-new", msgA.data[0].QuestionID)
	assert.Equal(t, "q-completed", msgB.data[0].QuestionID)
}

func TestSelectInquiryForwardsWithoutMutatingQueues(t *testing.T) {
	m := newWorklistModel(noNetworkDeps(t))
	m.newQueue.resolve([]api.Inquiry{
		seedInquiry("q1", "u1", "포장이 찢어져서 왔어요"),
		seedInquiry("q2", "u2", "환불하고 싶어요"),
	}, nil)
	m.completed.resolve([]api.Inquiry{seedInquiry("q3", "u3", "완료 건")}, nil)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	selected, ok := cmd().(inquirySelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "q2", selected.inquiry.QuestionID)

	// Selection removes nothing from either queue.
	assert.Len(t, m.newQueue.data, 2)
	assert.Len(t, m.completed.data, 1)
}

func TestWorklistCursorSpansBothQueues(t *testing.T) {
	m := newWorklistModel(noNetworkDeps(t))
	m.newQueue.resolve([]api.Inquiry{seedInquiry("q1", "u1", "새 문의")}, nil)
	m.completed.resolve([]api.Inquiry{seedInquiry("q3", "u3", "완료 건")}, nil)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	selected := cmd().(inquirySelectedMsg)
	assert.Equal(t, "q3", selected.inquiry.QuestionID)
}
