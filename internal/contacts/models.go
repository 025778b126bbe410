package contacts

import (
	"errors"
	"strings"
	"time"
)

// Contact represents a debtor tracked by the collections workspace.
//
// Multi-tenant invariant: WorkspaceID is required on every record and is always
// resolved from the authenticated session, never from client input.
//
// The core API owns these records; the dashboard validates and writes through.
type Contact struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`

	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`

	// DebtAmount is the outstanding balance in Kenyan shillings.
	DebtAmount    float64       `json:"debt_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	DueDate       string        `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentStatusOverdue PaymentStatus = "overdue"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusActive  PaymentStatus = "active"
)

var ErrInvalidContact = errors.New("contacts: invalid contact")

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusOverdue, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusActive:
		return true
	default:
		return false
	}
}

// Validate enforces the invariants a contact must satisfy before any write.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("contacts: name is required")
	}
	if strings.TrimSpace(c.PhoneNumber) == "" {
		return errors.New("contacts: phone_number is required")
	}
	if c.DebtAmount < 0 {
		return errors.New("contacts: debt_amount must be >= 0")
	}
	if !ValidPaymentStatus(c.PaymentStatus) {
		return errors.New("contacts: invalid payment_status")
	}
	return nil
}

// StatusBadge is the display form of the payment status ("OVERDUE", "PAID", ...).
func (c Contact) StatusBadge() string {
	return strings.ToUpper(string(c.PaymentStatus))
}
