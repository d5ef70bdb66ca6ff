package core

import (
	"strings"
	"unicode/utf8"
)

// TransactionInput is a candidate transaction payload. Category may carry a
// legacy free-text category name for callers that do not know the id.
type TransactionInput struct {
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	CategoryID  *string         `json:"categoryId,omitempty"`
	Date        string          `json:"date"`
	PaymentMode PaymentMode     `json:"paymentMode"`
}

// CategoryInput is a candidate category payload.
type CategoryInput struct {
	Name  string          `json:"name"`
	Label string          `json:"label"`
	Icon  *string         `json:"icon"`
	Type  TransactionType `json:"type"`
}

// Validate normalizes the payload and checks it against the schema rules.
// Violations are collected in field declaration order and returned as a
// single *ValidationError; a nil return means the input is valid.
func (in *TransactionInput) Validate() error {
	// An absent payment mode defaults to cash; an unknown one is rejected.
	if in.PaymentMode == "" {
		in.PaymentMode = Cash
	}

	var violations []string
	// Length limits count characters, not bytes: emoji icons and non-ASCII
	// descriptions must not hit the limits early.
	if in.Description == "" {
		violations = append(violations, "Description is required")
	} else if utf8.RuneCountInString(in.Description) > 255 {
		violations = append(violations, "Description must be 255 characters or less")
	}
	if in.Amount <= 0 {
		violations = append(violations, "Amount must be a positive number")
	}
	if !in.Type.Valid() {
		violations = append(violations, "Type must be 'income' or 'expense'")
	}
	if in.CategoryID != nil && *in.CategoryID == "" {
		violations = append(violations, "Category is required")
	}
	if in.Date == "" {
		violations = append(violations, "Date is required")
	}
	if !in.PaymentMode.Valid() {
		violations = append(violations, "Payment mode is required")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Validate checks the payload against the category schema rules.
func (in *CategoryInput) Validate() error {
	var violations []string
	if in.Name == "" {
		violations = append(violations, "Name is required")
	} else if utf8.RuneCountInString(in.Name) > 100 {
		violations = append(violations, "Name must be 100 characters or less")
	}
	if in.Label == "" {
		violations = append(violations, "Label is required")
	} else if utf8.RuneCountInString(in.Label) > 100 {
		violations = append(violations, "Label must be 100 characters or less")
	}
	if in.Icon != nil && utf8.RuneCountInString(*in.Icon) > 10 {
		violations = append(violations, "Icon must be 10 characters or less")
	}
	if !in.Type.Valid() {
		violations = append(violations, "Type must be 'income' or 'expense'")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// CanonicalIcon collapses an absent or blank icon to the empty string, the
// canonical "no icon" value on the write path.
func (in *CategoryInput) CanonicalIcon() string {
	if in.Icon == nil {
		return ""
	}
	return strings.TrimSpace(*in.Icon)
}
