package api

// Transfer objects as the backend serves them. Field names mirror the wire
// payloads exactly; the client does not reshape anything.

// Segment values are wire-exact, Korean label included. The backend keys the
// customer query on these literal strings, so they live here and nowhere else.
const (
	SegmentVIP    = "VIP"
	SegmentAtRisk = "이탈 위험 고객"
	SegmentAll    = "All"
)

// Inquiry statuses accepted by the worklist query. The backend has no
// endpoint for an in-progress status yet.
const (
	InquiryStatusNew       = "new"
	InquiryStatusCompleted = "completed"
)

// Feedback resolutions for an AI chat response.
const (
	ResolutionSuccess = "success"
	ResolutionFailure = "failure"
)

type KPISnapshot struct {
	LatestSettlementAmount *float64 `json:"latest_settlement_amount"`
	UnansweredQnAs         int      `json:"unanswered_qnas"`
	PendingClaims          int      `json:"pending_claims"`
	LowStockProducts       int      `json:"low_stock_products"`
}

type SalesPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type NegativeReview struct {
	ReviewID    string `json:"review_id"`
	ProductName string `json:"product_name"`
	Rating      int    `json:"rating"`
	ReviewText  string `json:"review_text"`
	DraftReply  string `json:"draft_reply"`
	CreatedAt   string `json:"created_at"`
}

type Customer struct {
	CustomerID  string  `json:"customer_id"`
	Name        string  `json:"name"`
	Segment     string  `json:"segment"`
	TotalSpend  float64 `json:"total_spend"`
	TotalOrders int     `json:"total_orders"`
}

type Inquiry struct {
	QuestionID   string `json:"question_id"`
	CustomerID   string `json:"customer_id"`
	QuestionText string `json:"question_text"`
	Status       string `json:"status"`
}

// ChatReply is the answer to a chat round trip. LogID correlates later
// feedback with this specific response.
type ChatReply struct {
	Response string `json:"response"`
	LogID    string `json:"log_id"`
}

type warningsResp struct {
	Warnings []string `json:"warnings"`
}

type salesTrendResp struct {
	SalesTrend []SalesPoint `json:"sales_trend"`
}

type negativeReviewsResp struct {
	NegativeReviews []NegativeReview `json:"negative_reviews"`
}

type customersResp struct {
	Customers []Customer `json:"customers"`
}

type inquiriesResp struct {
	Inquiries []Inquiry `json:"inquiries"`
}

type suggestionResp struct {
	Suggestion string `json:"suggestion"`
}

type legacyQueryResp struct {
	Answer string `json:"answer"`
	LogID  string `json:"log_id"`
}
