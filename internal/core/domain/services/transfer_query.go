package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"transferflow/internal/core/domain/model/transfer"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Filter narrows a transfer list. All set fields must match; an empty slice
// does not filter.
type Filter struct {
	Search      string
	Statuses    []transfer.Status
	Types       []transfer.Type
	Priorities  []transfer.Priority
	PlannedFrom *time.Time
	PlannedTo   *time.Time
}

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort names one field and a direction. An unknown field keeps store order.
type Sort struct {
	Field     string
	Direction SortDirection
}

type Pagination struct {
	Page     int
	PageSize int
}

// Normalize fills defaults and clamps the page size.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

type PagedResult struct {
	Items    []*transfer.Order
	Total    int
	Page     int
	PageSize int
}

// SortableFields lists the field names accepted by Sort.
func SortableFields() []string {
	return []string{
		"orderNumber", "title", "status", "type", "priority", "plannedDate", "totalAmount",
		"createdAt", "updatedAt", "actualShipDate", "actualReceiveDate",
	}
}

// TransferQueryEngine filters, sorts and pages an in-memory list of orders.
type TransferQueryEngine struct{}

func NewTransferQueryEngine() TransferQueryEngine {
	return TransferQueryEngine{}
}

func (e TransferQueryEngine) Query(orders []*transfer.Order, f Filter, s Sort, p Pagination) PagedResult {
	p = p.Normalize()

	matched := make([]*transfer.Order, 0, len(orders))
	for _, o := range orders {
		if o != nil && f.Matches(o) {
			matched = append(matched, o)
		}
	}

	e.Sort(matched, s)

	result := PagedResult{Total: len(matched), Page: p.Page, PageSize: p.PageSize, Items: []*transfer.Order{}}
	start := (p.Page - 1) * p.PageSize
	if start >= len(matched) {
		return result
	}
	end := min(start+p.PageSize, len(matched))
	result.Items = matched[start:end]
	return result
}

// Matches reports whether o passes every filter.
func (f Filter) Matches(o *transfer.Order) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !containsFold(q, o.Number(), o.Title(), o.From().Name(), o.To().Name()) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status()) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, o.Type()) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, o.Priority()) {
		return false
	}

	day := calendarDay(o.PlannedDate())
	if f.PlannedFrom != nil && day.Before(calendarDay(*f.PlannedFrom)) {
		return false
	}
	if f.PlannedTo != nil && day.After(calendarDay(*f.PlannedTo)) {
		return false
	}
	return true
}

// Sort orders the slice in place. The sort is stable and values that cannot
// be compared, such as an unset date, compare equal.
func (TransferQueryEngine) Sort(orders []*transfer.Order, s Sort) {
	if !slices.Contains(SortableFields(), s.Field) {
		return
	}
	desc := strings.EqualFold(string(s.Direction), string(Desc))

	slices.SortStableFunc(orders, func(a, b *transfer.Order) int {
		c := compareValues(sortValue(a, s.Field), sortValue(b, s.Field))
		if desc {
			return -c
		}
		return c
	})
}

func sortValue(o *transfer.Order, field string) any {
	switch field {
	case "orderNumber":
		return o.Number()
	case "title":
		return o.Title()
	case "status":
		return o.Status().String()
	case "type":
		return o.Type().String()
	case "priority":
		return int(o.Priority())
	case "plannedDate":
		return o.PlannedDate()
	case "totalAmount":
		return o.TotalAmount()
	case "createdAt":
		return o.CreatedAt()
	case "updatedAt":
		return o.UpdatedAt()
	case "actualShipDate":
		return derefTime(o.ActualShipDate())
	case "actualReceiveDate":
		return derefTime(o.ActualReceiveDate())
	default:
		return nil
	}
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv)
		}
	}
	return 0
}

func derefTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
