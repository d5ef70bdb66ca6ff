package core

import (
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Cash        PaymentMode = "cash"
	GCash       PaymentMode = "gcash"
	BDOSavings  PaymentMode = "bdo_savings"
	CBSChecking PaymentMode = "cbs_checking"
)

// FallbackCategory is the literal used for transactions whose category
// relation is missing at read time.
const FallbackCategory = "other-expense"

type (
	TransactionType string

	PaymentMode string

	// Date is a calendar date at day granularity.
	Date struct {
		time.Time
	}

	Category struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Label     string          `json:"label"`
		Icon      string          `json:"icon"`
		Type      TransactionType `json:"type"`
		CreatedAt time.Time       `json:"createdAt"`
		UpdatedAt time.Time       `json:"updatedAt"`
	}

	// Transaction is a ledger row joined with its category metadata.
	Transaction struct {
		ID            string          `json:"id"`
		Description   string          `json:"description"`
		Amount        float64         `json:"amount"`
		Type          TransactionType `json:"type"`
		Category      string          `json:"category"`
		CategoryID    string          `json:"categoryId"`
		CategoryLabel string          `json:"categoryLabel"`
		CategoryIcon  *string         `json:"categoryIcon"`
		PaymentMode   PaymentMode     `json:"paymentMode"`
		Date          Date            `json:"date"`
		CreatedAt     time.Time       `json:"-"`
	}
)

// PaymentModes lists the enumerated modes in declaration order. Summaries
// always report all four, even with zero activity.
var PaymentModes = []PaymentMode{Cash, GCash, BDOSavings, CBSChecking}

var paymentModeLabels = map[PaymentMode]string{
	Cash:        "Cash",
	GCash:       "GCash",
	BDOSavings:  "BDO Savings",
	CBSChecking: "CBS Checking",
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m PaymentMode) Valid() bool {
	_, ok := paymentModeLabels[m]
	return ok
}

// Label returns the display label for the mode.
func (m PaymentMode) Label() string {
	return paymentModeLabels[m]
}

const dateLayout = "2006-01-02"

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the sortable year-month key used for monthly grouping.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
