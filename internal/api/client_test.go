package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestKPIsDecodesSnapshot(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/kpis", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Session-ID"))
		io.WriteString(w, `{"latest_settlement_amount": 1250000, "unanswered_qnas": 4, "pending_claims": 2, "low_stock_products": 7}`)
	})

	kpis, err := c.KPIs(context.Background())
	require.NoError(t, err)
	require.NotNil(t, kpis.LatestSettlementAmount)
	assert.Equal(t, 1250000.0, *kpis.LatestSettlementAmount)
	assert.Equal(t, 4, kpis.UnansweredQnAs)
	assert.Equal(t, 2, kpis.PendingClaims)
	assert.Equal(t, 7, kpis.LowStockProducts)
}

func TestKPIsNullSettlement(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"latest_settlement_amount": null, "unanswered_qnas": 0, "pending_claims": 0, "low_stock_products": 0}`)
	})

	kpis, err := c.KPIs(context.Background())
	require.NoError(t, err)
	assert.Nil(t, kpis.LatestSettlementAmount)
}

func TestCustomersBySegmentSendsWireValue(t *testing.T) {
	var gotSegment string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSegment = r.URL.Query().Get("segment")
		io.WriteString(w, `{"customers": [{"customer_id":"c1","name":"김민지","segment":"이탈 위험 고객","total_spend":84000,"total_orders":3}]}`)
	})

	customers, err := c.CustomersBySegment(context.Background(), SegmentAtRisk)
	require.NoError(t, err)
	assert.Equal(t, "이탈 위험 고객", gotSegment)
	require.Len(t, customers, 1)
	assert.Equal(t, "c1", customers[0].CustomerID)
	assert.Equal(t, SegmentAtRisk, customers[0].Segment)
}

func TestSendCouponPayload(t *testing.T) {
	var calls int
	var got map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/send_coupon", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"status":"ok"}`)
	})

	err := c.SendCoupon(context.Background(), []string{"c1", "c2"}, "15% 할인쿠폰")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []any{"c1", "c2"}, got["customer_ids"])
	assert.Equal(t, "15% 할인쿠폰", got["coupon_details"])
}

func TestApproveReviewReplyPayload(t *testing.T) {
	var got map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"status":"ok"}`)
	})

	require.NoError(t, c.ApproveReviewReply(context.Background(), "r7", "불편을 드려 죄송합니다."))
	assert.Equal(t, "r7", got["review_id"])
	assert.Equal(t, "불편을 드려 죄송합니다.", got["approved_reply"])
}

func TestSuggestionCarriesExactQuestion(t *testing.T) {
	const question = "포장이 찢어져서 왔어요"
	var gotQuestion string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuestion = r.URL.Query().Get("question")
		io.WriteString(w, `{"suggestion":"교환 안내 드리겠습니다"}`)
	})

	suggestion, err := c.Suggestion(context.Background(), question)
	require.NoError(t, err)
	assert.Equal(t, question, gotQuestion)
	assert.Equal(t, "교환 안내 드리겠습니다", suggestion)
}

func TestChatReturnsLogID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "BI_USER", body["customer_id"])
		io.WriteString(w, `{"response":"지난주 매출은 상승세입니다.","log_id":"log-42"}`)
	})

	reply, err := c.Chat(context.Background(), "BI_USER", "지난주 매출 알려줘")
	require.NoError(t, err)
	assert.Equal(t, "log-42", reply.LogID)
	assert.Equal(t, "지난주 매출은 상승세입니다.", reply.Response)
}

func TestLegacyQueryMultipart(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "배송이 늦어요", r.FormValue("customer_query"))
		assert.Equal(t, "TEST_USER_FRONTEND", r.FormValue("customer_id"))
		io.WriteString(w, `{"answer":"확인해 드리겠습니다.","log_id":"log-9"}`)
	})

	reply, err := c.LegacyQuery(context.Background(), "TEST_USER_FRONTEND", "배송이 늦어요")
	require.NoError(t, err)
	assert.Equal(t, "확인해 드리겠습니다.", reply.Response)
	assert.Equal(t, "log-9", reply.LogID)
}

func TestFeedbackMultipartFields(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "log-9", r.FormValue("log_id"))
		assert.Equal(t, ResolutionFailure, r.FormValue("resolution_feedback"))
		assert.Equal(t, "교환 안내가 맞습니다", r.FormValue("final_resolution"))
		io.WriteString(w, `{"status":"ok"}`)
	})

	require.NoError(t, c.Feedback(context.Background(), "log-9", ResolutionFailure, "교환 안내가 맞습니다"))
}

func TestFeedbackOmitsEmptyFinalResolution(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["final_resolution"]
		assert.False(t, present)
		io.WriteString(w, `{"status":"ok"}`)
	})

	require.NoError(t, c.Feedback(context.Background(), "log-9", ResolutionSuccess, ""))
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":"boom"}`)
	})

	_, err := c.Warnings(context.Background())
	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, statusErr.Error(), "boom")
}

func TestInquiriesByStatus(t *testing.T) {
	var gotStatus string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		io.WriteString(w, `{"inquiries":[{"question_id":"q1","customer_id":"u1","question_text":"포장이 찢어져서 왔어요","status":"new"}]}`)
	})

	inquiries, err := c.Inquiries(context.Background(), InquiryStatusNew)
	require.NoError(t, err)
	assert.Equal(t, "new", gotStatus)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "q1", inquiries[0].QuestionID)
}
