package credits

import "time"

// Messaging credits are whole units: one SMS, email or WhatsApp message costs
// one credit. Balance is derived from immutable ledger entries. No code should
// ever mutate a balance without writing a corresponding ledger entry.

// LedgerEntry is an immutable append-only entry.
//
// Multi-tenant invariant: workspace_id required.
// Credit invariant: any balance change MUST have a corresponding ledger entry.
type LedgerEntry struct {
	ID          string `json:"id" db:"id"`
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`

	Type EntryType `json:"type" db:"type"`

	// Credits is the signed amount. Top-ups are positive, message charges negative.
	Credits int64 `json:"credits" db:"credits"`

	// ExternalRef is optional: campaign item id, invoice id, etc.
	ExternalRef string `json:"external_ref,omitempty" db:"external_ref"`

	// IdempotencyKey is required for safe retries of posting operations.
	// Message debits use the campaign item id, so a re-dispatched item never
	// charges twice.
	IdempotencyKey string `json:"idempotency_key" db:"idempotency_key"`

	Reason string `json:"reason,omitempty" db:"reason"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EntryType string

const (
	EntryTypeTopUp  EntryType = "topup"
	EntryTypeDebit  EntryType = "debit"
	EntryTypeManual EntryType = "manual" // admin-granted credits
)

type Balance struct {
	WorkspaceID string    `json:"workspace_id"`
	Credits     int64     `json:"credits"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminCreditAction tracks privileged manual grants. It is not the ledger;
// every admin grant also creates a LedgerEntry.
type AdminCreditAction struct {
	ID          string `json:"id" db:"id"`
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`

	AdminUserID string `json:"admin_user_id" db:"admin_user_id"`
	AdminRole   string `json:"admin_role" db:"admin_role"`

	Reason          string `json:"reason" db:"reason"`
	Credits         int64  `json:"credits" db:"credits"`
	RelatedLedgerID string `json:"related_ledger_id" db:"related_ledger_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
