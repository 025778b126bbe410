package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// IMPORTANT:
// - Audit is internal-only. Do not expose these records to tenant users by default.
// - Callers should treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.WorkspaceID == "" {
		return ErrInvalidEvent
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogAdminAction records a privileged action (manual credit grants, hidden-role usage).
func (s *Service) LogAdminAction(ctx context.Context, workspaceID, actorUserID, actorRole, ip, message, metadata string) error {
	return s.Append(ctx, Event{
		WorkspaceID: workspaceID,
		Type:        EventTypeAdminAction,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		IPAddress:   ip,
		Message:     message,
		Metadata:    metadata,
	})
}

// LogCampaign records a campaign lifecycle transition (started, paused,
// resumed, stopped, completed).
func (s *Service) LogCampaign(ctx context.Context, workspaceID, actorUserID, actorRole, campaignID, transition, metadata string) error {
	return s.Append(ctx, Event{
		WorkspaceID: workspaceID,
		Type:        EventTypeCampaign,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		CampaignID:  campaignID,
		Message:     "campaign " + transition,
		Metadata:    metadata,
	})
}

// LogEntityMutation records a create/update/delete of a dashboard entity.
func (s *Service) LogEntityMutation(ctx context.Context, workspaceID, actorUserID, actorRole, entityType, entityID, action, metadata string) error {
	return s.Append(ctx, Event{
		WorkspaceID: workspaceID,
		Type:        EventTypeEntityMutation,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		EntityType:  entityType,
		EntityID:    entityID,
		Message:     entityType + " " + action,
		Metadata:    metadata,
	})
}
