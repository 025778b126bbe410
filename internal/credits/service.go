package credits

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sautiai-dashboard/pkg/utils"

	"github.com/google/uuid"
)

// MessageCost is what one outbound message (SMS, email, WhatsApp) charges.
const MessageCost int64 = 1

// Service provides messaging-credit operations.
//
// Credit invariants:
// - No balance updates without a ledger entry
// - Ledger is append-only (immutable)
// - All posting operations run in a DB transaction
//
// Tenancy invariant:
// - workspace_id is required and enforced in all queries
type Service struct {
	db    *sql.DB
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

type TopUpRequest struct {
	Credits        int64  `json:"credits"`
	ExternalRef    string `json:"external_ref,omitempty"`
	IdempotencyKey string `json:"idempotency_key"`
}

type AdminCreditRequest struct {
	Credits        int64  `json:"credits"`
	Reason         string `json:"reason"`
	IdempotencyKey string `json:"idempotency_key"`
}

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidArgument     = errors.New("invalid argument")
)

func (s *Service) GetBalance(ctx context.Context, workspaceID string) (Balance, error) {
	if workspaceID == "" {
		return Balance{}, ErrInvalidArgument
	}
	return getBalance(ctx, s.db, workspaceID)
}

// ListLedger returns the most recent ledger entries, newest first. limit <= 0
// falls back to 100.
func (s *Service) ListLedger(ctx context.Context, workspaceID string, limit int) ([]LedgerEntry, error) {
	if workspaceID == "" {
		return nil, ErrInvalidArgument
	}
	if limit <= 0 {
		limit = 100
	}
	return listLedger(ctx, s.db, workspaceID, limit)
}

// TopUp posts purchased credits to the workspace.
func (s *Service) TopUp(ctx context.Context, workspaceID string, req TopUpRequest) (LedgerEntry, Balance, error) {
	if workspaceID == "" || req.IdempotencyKey == "" || req.Credits <= 0 {
		return LedgerEntry{}, Balance{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	entry := LedgerEntry{
		ID:             uuid.NewString(),
		WorkspaceID:    workspaceID,
		Type:           EntryTypeTopUp,
		Credits:        req.Credits,
		ExternalRef:    req.ExternalRef,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      now,
	}

	var outLedger LedgerEntry
	var outBal Balance
	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if existing, ok, err := findLedgerByIdempotency(ctx, tx, workspaceID, req.IdempotencyKey); err != nil {
			return err
		} else if ok {
			outLedger = existing
			b, err := getBalanceTx(ctx, tx, workspaceID)
			if err != nil {
				return err
			}
			outBal = b
			return nil
		}

		if err := insertLedger(ctx, tx, entry); err != nil {
			return err
		}
		b, err := applyBalanceDelta(ctx, tx, workspaceID, req.Credits, now)
		if err != nil {
			return err
		}
		outLedger = entry
		outBal = b
		return nil
	})
	return outLedger, outBal, err
}

// DebitMessage charges one credit for a dispatched campaign message.
// The campaign item id is the idempotency key, so retrying an item never
// double-charges.
func (s *Service) DebitMessage(ctx context.Context, workspaceID, itemID string) error {
	if workspaceID == "" || itemID == "" {
		return ErrInvalidArgument
	}

	now := s.clock().UTC()
	entry := LedgerEntry{
		ID:             uuid.NewString(),
		WorkspaceID:    workspaceID,
		Type:           EntryTypeDebit,
		Credits:        -MessageCost,
		ExternalRef:    itemID,
		IdempotencyKey: itemID,
		CreatedAt:      now,
	}

	return utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if _, ok, err := findLedgerByIdempotency(ctx, tx, workspaceID, itemID); err != nil {
			return err
		} else if ok {
			// Already charged for this item.
			return nil
		}

		b, _, err := getBalanceForUpdate(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		if b.Credits < MessageCost {
			return ErrInsufficientCredits
		}

		if err := insertLedger(ctx, tx, entry); err != nil {
			return err
		}
		_, err = applyBalanceDelta(ctx, tx, workspaceID, -MessageCost, now)
		return err
	})
}

// AdminManualCredit grants credits outside a purchase. The grant is recorded
// twice: a ledger entry for the balance and an admin action for auditability.
func (s *Service) AdminManualCredit(ctx context.Context, workspaceID, adminUserID, adminRole string, req AdminCreditRequest) (AdminCreditAction, LedgerEntry, Balance, error) {
	if workspaceID == "" || adminUserID == "" || adminRole == "" {
		return AdminCreditAction{}, LedgerEntry{}, Balance{}, ErrInvalidArgument
	}
	if req.Reason == "" || req.IdempotencyKey == "" || req.Credits <= 0 {
		return AdminCreditAction{}, LedgerEntry{}, Balance{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	entry := LedgerEntry{
		ID:             uuid.NewString(),
		WorkspaceID:    workspaceID,
		Type:           EntryTypeManual,
		Credits:        req.Credits,
		IdempotencyKey: req.IdempotencyKey,
		Reason:         req.Reason,
		CreatedAt:      now,
	}
	action := AdminCreditAction{
		ID:              uuid.NewString(),
		WorkspaceID:     workspaceID,
		AdminUserID:     adminUserID,
		AdminRole:       adminRole,
		Reason:          req.Reason,
		Credits:         req.Credits,
		RelatedLedgerID: entry.ID,
		CreatedAt:       now,
	}

	var outAction AdminCreditAction
	var outLedger LedgerEntry
	var outBal Balance
	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if existing, ok, err := findLedgerByIdempotency(ctx, tx, workspaceID, req.IdempotencyKey); err != nil {
			return err
		} else if ok {
			outLedger = existing
			act, ok, err := findAdminActionByLedger(ctx, tx, workspaceID, existing.ID)
			if err != nil {
				return err
			}
			if ok {
				outAction = act
			}
			b, err := getBalanceTx(ctx, tx, workspaceID)
			if err != nil {
				return err
			}
			outBal = b
			return nil
		}

		if err := insertLedger(ctx, tx, entry); err != nil {
			return err
		}
		if err := insertAdminAction(ctx, tx, action); err != nil {
			return err
		}
		b, err := applyBalanceDelta(ctx, tx, workspaceID, req.Credits, now)
		if err != nil {
			return err
		}
		outAction = action
		outLedger = entry
		outBal = b
		return nil
	})
	return outAction, outLedger, outBal, err
}
