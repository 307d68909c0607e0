package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"csdesk/internal/api"
	"csdesk/internal/chart"
)

type adminFocus int

const (
	adminFocusDashboard adminFocus = iota
	adminFocusChat
)

// adminModel is the BI dashboard: six independently fetched slices, the BI
// chat sub-session, and the two admin actions (review approval, coupon
// broadcast). Every slice renders on its own state; one failed fetch never
// blocks the others.
type adminModel struct {
	deps Deps

	kpis     remote[api.KPISnapshot]
	warnings remote[[]string]
	sales    remote[[]api.SalesPoint]
	reviews  remote[[]api.NegativeReview]
	vip      remote[[]api.Customer]
	atRisk   remote[[]api.Customer]

	reviewCursor  int
	approving     bool
	couponSending bool
	exporting     bool
	customerTab   string

	chat  chatModel
	focus adminFocus
}

func newAdminModel(deps Deps) adminModel {
	return adminModel{
		deps:        deps,
		customerTab: api.SegmentVIP,
		chat:        newChatModel(deps, "AI 분석 (BI 챗봇)", deps.BIUserID, false),
	}
}

// activate fires all six reads in parallel. Resolution order is arbitrary.
func (m *adminModel) activate() tea.Cmd {
	m.kpis.begin()
	m.warnings.begin()
	m.sales.begin()
	m.reviews.begin()
	m.vip.begin()
	m.atRisk.begin()

	deps := m.deps
	return tea.Batch(
		func() tea.Msg {
			data, err := deps.API.KPIs(context.Background())
			return kpisMsg{data: data, err: err}
		},
		func() tea.Msg {
			data, err := deps.API.Warnings(context.Background())
			return warningsMsg{data: data, err: err}
		},
		func() tea.Msg {
			data, err := deps.API.SalesTrend(context.Background())
			return salesTrendMsg{data: data, err: err}
		},
		func() tea.Msg {
			data, err := deps.API.NegativeReviews(context.Background())
			return reviewsMsg{data: data, err: err}
		},
		m.segmentCmd(api.SegmentVIP),
		m.segmentCmd(api.SegmentAtRisk),
	)
}

func (m adminModel) segmentCmd(segment string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		data, err := deps.API.CustomersBySegment(context.Background(), segment)
		return segmentCustomersMsg{segment: segment, data: data, err: err}
	}
}

// loadingAny reports whether any dashboard slice is still in flight.
func (m adminModel) loadingAny() bool {
	return m.kpis.loading() || m.warnings.loading() || m.sales.loading() ||
		m.reviews.loading() || m.vip.loading() || m.atRisk.loading()
}

func (m adminModel) approveCmd(reviewID, draftReply string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		err := deps.API.ApproveReviewReply(context.Background(), reviewID, draftReply)
		return approveDoneMsg{reviewID: reviewID, err: err}
	}
}

func (m adminModel) approveSelected() (adminModel, tea.Cmd) {
	if m.approving || !m.reviews.ready() || len(m.reviews.data) == 0 {
		return m, nil
	}
	if m.reviewCursor < 0 || m.reviewCursor >= len(m.reviews.data) {
		return m, nil
	}
	review := m.reviews.data[m.reviewCursor]
	m.approving = true
	return m, m.approveCmd(review.ReviewID, review.DraftReply)
}

// sendCoupon broadcasts the fixed coupon to every at-risk customer in one
// atomic call. Empty list is a user-visible no-op.
func (m adminModel) sendCoupon() (adminModel, tea.Cmd) {
	if m.couponSending {
		return m, nil
	}
	if !m.atRisk.ready() || len(m.atRisk.data) == 0 {
		return m, notify("이탈 위험 고객이 없습니다.")
	}
	ids := make([]string, 0, len(m.atRisk.data))
	for _, c := range m.atRisk.data {
		ids = append(ids, c.CustomerID)
	}
	m.couponSending = true
	deps := m.deps
	details := m.deps.CouponDetails
	return m, func() tea.Msg {
		err := deps.API.SendCoupon(context.Background(), ids, details)
		return couponDoneMsg{count: len(ids), err: err}
	}
}

func (m adminModel) exportSalesChart() (adminModel, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	if !m.sales.ready() || len(m.sales.data) == 0 {
		return m, notify("매출 추이 데이터가 없습니다.")
	}
	m.exporting = true
	dir := m.deps.ChartOutDir
	points := m.sales.data
	return m, func() tea.Msg {
		path, err := chart.WriteSalesTrend(dir, points)
		return chartSavedMsg{path: path, err: err}
	}
}

// removeReview drops exactly the approved review from the local working set.
// A second removal for the same id finds nothing and changes nothing.
func removeReview(reviews []api.NegativeReview, reviewID string) []api.NegativeReview {
	out := reviews[:0:0]
	for _, r := range reviews {
		if r.ReviewID != reviewID {
			out = append(out, r)
		}
	}
	return out
}

func (m adminModel) update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case kpisMsg:
		m.kpis.resolve(msg.data, msg.err)
		return m, nil
	case warningsMsg:
		m.warnings.resolve(msg.data, msg.err)
		return m, nil
	case salesTrendMsg:
		m.sales.resolve(msg.data, msg.err)
		return m, nil
	case reviewsMsg:
		m.reviews.resolve(msg.data, msg.err)
		return m, nil
	case segmentCustomersMsg:
		switch msg.segment {
		case api.SegmentVIP:
			m.vip.resolve(msg.data, msg.err)
		case api.SegmentAtRisk:
			m.atRisk.resolve(msg.data, msg.err)
		}
		return m, nil
	case approveDoneMsg:
		m.approving = false
		if msg.err != nil {
			return m, notifyErr(fmt.Sprintf("리뷰 답변 승인 중 오류가 발생했습니다: %v", msg.err))
		}
		if m.reviews.ready() {
			m.reviews.data = removeReview(m.reviews.data, msg.reviewID)
			if m.reviewCursor >= len(m.reviews.data) && m.reviewCursor > 0 {
				m.reviewCursor = len(m.reviews.data) - 1
			}
		}
		return m, notify("답변이 승인 및 게시되었습니다!")
	case couponDoneMsg:
		m.couponSending = false
		if msg.err != nil {
			return m, notifyErr(fmt.Sprintf("쿠폰 발송 중 오류가 발생했습니다: %v", msg.err))
		}
		return m, notify(fmt.Sprintf("%d명의 이탈 위험 고객에게 15%% 할인쿠폰이 발송되었습니다!", msg.count))
	case chartSavedMsg:
		m.exporting = false
		if msg.err != nil {
			return m, notifyErr(fmt.Sprintf("차트 내보내기 실패: %v", msg.err))
		}
		return m, notify(fmt.Sprintf("매출 추이 차트 저장됨: %s", msg.path))
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.update(msg)
	return m, cmd
}

func (m adminModel) handleKey(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if msg.String() == "tab" && m.chat.feedbackPhase != feedbackAwaitingInput {
		if m.focus == adminFocusDashboard {
			m.focus = adminFocusChat
			m.chat.focus()
		} else {
			m.focus = adminFocusDashboard
			m.chat.blur()
		}
		return m, nil
	}

	if m.focus == adminFocusChat {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.handleKey(msg)
		return m, cmd
	}

	switch msg.String() {
	case "j", "down":
		if m.reviews.ready() && m.reviewCursor < len(m.reviews.data)-1 {
			m.reviewCursor++
		}
	case "k", "up":
		if m.reviewCursor > 0 {
			m.reviewCursor--
		}
	case "a":
		return m.approveSelected()
	case "c":
		return m.sendCoupon()
	case "e":
		return m.exportSalesChart()
	case "v":
		if m.customerTab == api.SegmentVIP {
			m.customerTab = api.SegmentAtRisk
		} else {
			m.customerTab = api.SegmentVIP
		}
	}
	return m, nil
}

func kpiLine(th uiTheme, label, value string) string {
	return th.muted.Render(label+": ") + th.value.Render(value)
}

func (m adminModel) renderKPIs(th uiTheme) string {
	var b strings.Builder
	b.WriteString(th.panelTitle.Render("핵심 KPI"))
	b.WriteString("\n")
	switch {
	case m.kpis.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
	case m.kpis.failed():
		b.WriteString(th.errorStatus.Render("KPI를 불러오는 데 실패했습니다."))
	default:
		k := m.kpis.data
		settlement := "N/A"
		if k.LatestSettlementAmount != nil {
			settlement = fmt.Sprintf("%.0f원", *k.LatestSettlementAmount)
		}
		b.WriteString(kpiLine(th, "오늘의 정산액", settlement))
		b.WriteString("   ")
		b.WriteString(kpiLine(th, "미답변 문의", fmt.Sprintf("%d건", k.UnansweredQnAs)))
		b.WriteString("   ")
		b.WriteString(kpiLine(th, "처리 대기 클레임", fmt.Sprintf("%d건", k.PendingClaims)))
		b.WriteString("   ")
		b.WriteString(kpiLine(th, "재고 위험 상품", fmt.Sprintf("%d건", k.LowStockProducts)))
	}
	b.WriteString("\n")
	return b.String()
}

func (m adminModel) renderWarnings(th uiTheme) string {
	var b strings.Builder
	b.WriteString(th.panelTitle.Render("선제적 경고 피드 🔔"))
	b.WriteString("\n")
	switch {
	case m.warnings.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
		b.WriteString("\n")
	case m.warnings.failed():
		b.WriteString(th.errorStatus.Render("경고 피드를 불러오는 데 실패했습니다."))
		b.WriteString("\n")
	case len(m.warnings.data) == 0:
		b.WriteString(th.muted.Render("현재 활성화된 경고가 없습니다."))
		b.WriteString("\n")
	default:
		for _, w := range m.warnings.data {
			b.WriteString(th.warn.Render("• " + w))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m adminModel) renderSales(th uiTheme) string {
	var b strings.Builder
	b.WriteString(th.panelTitle.Render("일간 매출 추이 📈"))
	b.WriteString(th.muted.Render("  (e: 차트 HTML 내보내기)"))
	b.WriteString("\n")
	switch {
	case m.sales.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
		b.WriteString("\n")
	case m.sales.failed():
		b.WriteString(th.errorStatus.Render("매출 추이를 불러오는 데 실패했습니다."))
		b.WriteString("\n")
	case len(m.sales.data) == 0:
		b.WriteString(th.muted.Render("매출 추이 데이터가 없습니다."))
		b.WriteString("\n")
	default:
		for _, p := range m.sales.data {
			b.WriteString(th.value.Render(fmt.Sprintf("%s: %.0f원", p.Date, p.Amount)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m adminModel) renderReviews(th uiTheme) string {
	var b strings.Builder
	b.WriteString(th.panelTitle.Render("리뷰 관리 📝"))
	b.WriteString(th.muted.Render("  (j/k: 선택, a: 승인 및 게시)"))
	b.WriteString("\n")
	switch {
	case m.reviews.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
		b.WriteString("\n")
	case m.reviews.failed():
		b.WriteString(th.errorStatus.Render("부정 리뷰를 불러오는 데 실패했습니다."))
		b.WriteString("\n")
	case len(m.reviews.data) == 0:
		b.WriteString(th.muted.Render("현재 관리할 부정 리뷰가 없습니다."))
		b.WriteString("\n")
	default:
		for i, r := range m.reviews.data {
			head := fmt.Sprintf("상품: %s (평점: %d점) · %s", r.ProductName, r.Rating, r.CreatedAt)
			if r.Rating <= 2 {
				head = th.urgent.Render("🚨긴급 ") + head
			}
			if i == m.reviewCursor {
				b.WriteString(th.cursorLine.Render("› " + head))
			} else {
				b.WriteString(th.value.Render("  " + head))
			}
			b.WriteString("\n")
			b.WriteString(th.muted.Render("  리뷰 내용: " + r.ReviewText))
			b.WriteString("\n")
			b.WriteString(th.warn.Render("  AI 제안 답변: " + r.DraftReply))
			b.WriteString("\n")
		}
		if m.approving {
			b.WriteString(th.muted.Render("승인 처리 중..."))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m adminModel) renderCustomers(th uiTheme) string {
	var b strings.Builder
	vipCount, atRiskCount := 0, 0
	if m.vip.ready() {
		vipCount = len(m.vip.data)
	}
	if m.atRisk.ready() {
		atRiskCount = len(m.atRisk.data)
	}
	b.WriteString(th.panelTitle.Render("고객 관리 (CRM) 👥"))
	b.WriteString(th.muted.Render("  (v: 탭 전환, c: 쿠폰 발송)"))
	b.WriteString("\n")

	vipTab := fmt.Sprintf("VIP 고객 (%d명)", vipCount)
	atRiskTab := fmt.Sprintf("이탈 위험 고객 (%d명)", atRiskCount)
	if m.customerTab == api.SegmentVIP {
		b.WriteString(th.cursorLine.Render(vipTab) + "  " + th.muted.Render(atRiskTab))
	} else {
		b.WriteString(th.muted.Render(vipTab) + "  " + th.cursorLine.Render(atRiskTab))
	}
	b.WriteString("\n")

	slice := m.vip
	emptyText := "VIP 고객이 없습니다."
	if m.customerTab == api.SegmentAtRisk {
		slice = m.atRisk
		emptyText = "이탈 위험 고객이 없습니다."
	}
	switch {
	case slice.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
		b.WriteString("\n")
	case slice.failed():
		b.WriteString(th.errorStatus.Render("고객 목록을 불러오는 데 실패했습니다."))
		b.WriteString("\n")
	case len(slice.data) == 0:
		b.WriteString(th.muted.Render(emptyText))
		b.WriteString("\n")
	default:
		for _, c := range slice.data {
			b.WriteString(th.value.Render(fmt.Sprintf("%s (ID: %s)", c.Name, c.CustomerID)))
			b.WriteString(th.muted.Render(fmt.Sprintf("  총 지출: %.0f원, 총 주문: %d건", c.TotalSpend, c.TotalOrders)))
			b.WriteString("\n")
		}
		if m.customerTab == api.SegmentAtRisk && m.couponSending {
			b.WriteString(th.muted.Render("쿠폰 발송 중..."))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m adminModel) view(th uiTheme, width int) string {
	var b strings.Builder
	b.WriteString(m.renderKPIs(th))
	b.WriteString("\n")
	b.WriteString(m.renderWarnings(th))
	b.WriteString("\n")
	b.WriteString(m.renderSales(th))
	b.WriteString("\n")
	b.WriteString(m.renderReviews(th))
	b.WriteString("\n")
	b.WriteString(m.renderCustomers(th))

	dashboard := th.panel
	if m.focus == adminFocusDashboard {
		dashboard = th.panelFocus
	}
	top := dashboard.Width(width).Render(b.String())
	chatPane := m.chat.view(th, width, m.focus == adminFocusChat)
	return top + "\n" + chatPane
}
