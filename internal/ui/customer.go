package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"csdesk/internal/api"
)

// Enrichment rows a future data source will fill. No endpoint serves these
// yet; their slices stay idle so the panel renders "not wired up" instead of
// pretending the customer has no history.
type orderLine struct {
	productOrderID string
	productName    string
	orderStatus    string
}

type claimLine struct {
	productOrderID string
	claimReason    string
	claimType      string
}

// customerModel shows the profile behind the selected inquiry. It re-fetches
// the full All segment on every selection change and scans it by id; it
// deliberately shares nothing with the admin panel's segment lists.
type customerModel struct {
	deps       Deps
	customerID string
	lookup     remote[*api.Customer]

	orders  remote[[]orderLine]
	claims  remote[[]claimLine]
	reviews remote[[]api.NegativeReview]

	recommendedManual string
}

func newCustomerModel(deps Deps) customerModel {
	return customerModel{deps: deps}
}

// setContext reacts to selection changes. A nil customer id clears every
// derived slice back to its placeholder state.
func (m *customerModel) setContext(customerID string, inquiry *api.Inquiry) tea.Cmd {
	if inquiry != nil && strings.TrimSpace(inquiry.QuestionText) != "" {
		// Stub until a manual-recommendation endpoint exists; one fixed
		// label regardless of the question.
		m.recommendedManual = "[SM-CS-QUAL-102: 포장 누수]"
	} else {
		m.recommendedManual = ""
	}

	if customerID == "" {
		m.customerID = ""
		m.lookup = remote[*api.Customer]{}
		m.orders = remote[[]orderLine]{}
		m.claims = remote[[]claimLine]{}
		m.reviews = remote[[]api.NegativeReview]{}
		return nil
	}
	if customerID == m.customerID && m.lookup.settled() {
		return nil
	}
	m.customerID = customerID
	m.lookup = remote[*api.Customer]{}
	m.lookup.begin()
	return m.lookupCmd(customerID)
}

func (m customerModel) lookupCmd(customerID string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		customers, err := deps.API.CustomersBySegment(context.Background(), api.SegmentAll)
		if err != nil {
			return customerLookupMsg{customerID: customerID, err: err}
		}
		for i := range customers {
			if customers[i].CustomerID == customerID {
				return customerLookupMsg{customerID: customerID, customer: &customers[i]}
			}
		}
		// Fetched fine, id just is not in the segment.
		return customerLookupMsg{customerID: customerID}
	}
}

func (m customerModel) update(msg tea.Msg) (customerModel, tea.Cmd) {
	if msg, ok := msg.(customerLookupMsg); ok {
		if msg.customerID != m.customerID {
			return m, nil
		}
		m.lookup.resolve(msg.customer, msg.err)
	}
	return m, nil
}

func renderSection[T any](b *strings.Builder, th uiTheme, title string, slice remote[[]T], line func(T) string) {
	b.WriteString(th.panelTitle.Render(title))
	b.WriteString("\n")
	switch {
	case slice.idle():
		b.WriteString(th.muted.Render("아직 연동되지 않았습니다."))
	case slice.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
	case slice.failed():
		b.WriteString(th.errorStatus.Render("불러오는 데 실패했습니다."))
	case len(slice.data) == 0:
		b.WriteString(th.muted.Render("내역이 없습니다."))
	default:
		shown := slice.data
		if len(shown) > 3 {
			shown = shown[:3]
		}
		for _, item := range shown {
			b.WriteString(th.value.Render("- " + line(item)))
			b.WriteString("\n")
		}
		return
	}
	b.WriteString("\n")
}

func (m customerModel) view(th uiTheme, width int) string {
	var b strings.Builder
	b.WriteString(th.panelTitle.Render("고객 정보"))
	b.WriteString("\n\n")

	switch {
	case m.customerID == "":
		b.WriteString(th.muted.Render("왼쪽에서 문의를 선택하면 고객 정보가 여기에 표시됩니다."))
		b.WriteString("\n")
	case m.lookup.loading():
		b.WriteString(th.muted.Render("불러오는 중..."))
		b.WriteString("\n")
	case m.lookup.failed():
		b.WriteString(th.errorStatus.Render("고객 정보를 불러오는 데 실패했습니다."))
		b.WriteString("\n")
	case m.lookup.ready() && m.lookup.data == nil:
		b.WriteString(th.muted.Render(fmt.Sprintf("해당 고객 정보를 찾을 수 없습니다. (ID: %s)", m.customerID)))
		b.WriteString("\n")
	case m.lookup.ready():
		c := m.lookup.data
		b.WriteString(th.value.Render(fmt.Sprintf("고객 이름: %s", c.Name)))
		b.WriteString("\n")
		b.WriteString(th.muted.Render(fmt.Sprintf("ID: %s", c.CustomerID)))
		b.WriteString("\n")
		b.WriteString(th.value.Render(fmt.Sprintf("고객 등급: %s", c.Segment)))
		b.WriteString("\n")
		b.WriteString(th.value.Render(fmt.Sprintf("총 주문액: %.0f원", c.TotalSpend)))
		b.WriteString("\n")
		b.WriteString(th.value.Render(fmt.Sprintf("총 주문 수: %d건", c.TotalOrders)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	renderSection(&b, th, "최근 주문 내역", m.orders, func(o orderLine) string {
		return fmt.Sprintf("%s (%s)", o.productName, o.orderStatus)
	})
	renderSection(&b, th, "과거 클레임", m.claims, func(c claimLine) string {
		return fmt.Sprintf("%s (%s)", c.claimReason, c.claimType)
	})
	renderSection(&b, th, "과거 리뷰", m.reviews, func(r api.NegativeReview) string {
		text := []rune(r.ReviewText)
		if len(text) > 15 {
			text = text[:15]
		}
		return fmt.Sprintf("\"%s...\" (⭐ %d점)", string(text), r.Rating)
	})

	b.WriteString(th.panelTitle.Render("AI 추천 매뉴얼"))
	b.WriteString("\n")
	if m.recommendedManual != "" {
		b.WriteString(th.value.Render(fmt.Sprintf("현재 문의는 %s와(과) 일치할 수 있습니다.", m.recommendedManual)))
	} else {
		b.WriteString(th.muted.Render("추천 매뉴얼이 없습니다."))
	}
	b.WriteString("\n")

	return th.panel.Width(width).Render(b.String())
}
