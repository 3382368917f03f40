package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Measure is how a line item is counted. It is either Counted or CrewDays.
type Measure interface {
	// Units is the multiplier applied to the unit price.
	Units() int64
	Description() string
	isMeasure()
}

// Counted is a plain quantity of service executions.
type Counted struct {
	Quantity int
}

func (c Counted) Units() int64 { return int64(c.Quantity) }

func (c Counted) Description() string { return fmt.Sprintf("%d", c.Quantity) }

func (Counted) isMeasure() {}

// CrewDays is a crew of collaborators hired per business day.
type CrewDays struct {
	Collaborators int
	Days          int
}

func (c CrewDays) Units() int64 { return int64(c.Collaborators) * int64(c.Days) }

func (c CrewDays) Description() string {
	return fmt.Sprintf("%d colaborador(es) por %d dia(s) útil(eis)", c.Collaborators, c.Days)
}

func (CrewDays) isMeasure() {}

// LineItem is one priced row of a quote. Amounts are in centavos.
type LineItem struct {
	Service   ServiceID
	Label     string
	UnitPrice int64
	Measure   Measure
}

func (li LineItem) Subtotal() int64 {
	if li.Measure == nil {
		return 0
	}
	return li.UnitPrice * li.Measure.Units()
}

type Breakdown struct {
	LineItems []LineItem
	Total     int64
}

// HasCost reports whether a cost summary is worth showing.
func (b Breakdown) HasCost() bool {
	return b.Total > 0
}

// QuoteForm holds the values typed into the quote form.
type QuoteForm struct {
	CompanyName     string
	TaxID           string
	ResponsibleName string
	CompanyLocation string
	Period          DateRange
	Selections      []ServiceSelection
}

// Quote is a submitted form with its computed pricing. A new submission
// always produces a new Quote.
type Quote struct {
	ID          uuid.UUID
	Form        QuoteForm
	Breakdown   Breakdown
	SubmittedAt time.Time
}
