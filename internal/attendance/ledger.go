package attendance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roboteam/door-tracker/internal/domain"
	"github.com/roboteam/door-tracker/internal/logger"
)

// Scan resolves a raw card payload from a door scanner and records the
// resulting ledger event. Unknown devices and unregistered cards still leave
// an audit entry before the error is returned.
func (s *Service) Scan(ctx context.Context, deviceID, payload string) (*ScanResult, error) {
	if payload == "" {
		return nil, domain.ErrInvalidPayload
	}

	now := s.clock.Now()

	scanner, err := s.store.GetScannerByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("look up scanner: %w", err)
	}
	if scanner == nil {
		if _, auditErr := s.store.AppendAuditEntry(ctx, nil, nil, now); auditErr != nil {
			logger.ErrorCtx(ctx, auditErr, zap.String("device_id", deviceID))
		}
		return nil, domain.ErrUnauthorizedDevice
	}

	tag, uid, err := s.resolveTag(ctx, payload)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		// Neither resolvable nor decodable; audit without attribution.
		if _, auditErr := s.store.AppendAuditEntry(ctx, nil, &scanner.DeviceID, now); auditErr != nil {
			logger.ErrorCtx(ctx, auditErr, zap.String("device_id", deviceID))
		}
		return nil, domain.ErrCardNotRegistered
	}

	state, err := tag.State()
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.Int64("tag_id", tag.ID))
		return nil, err
	}

	switch state {
	case domain.TagUnauthorized:
		if _, auditErr := s.store.AppendAuditEntry(ctx, &tag.ID, &scanner.DeviceID, now); auditErr != nil {
			logger.ErrorCtx(ctx, auditErr, zap.Int64("tag_id", tag.ID))
		}
		return nil, domain.ErrCardNotRegistered

	case domain.TagPendingRegistration:
		if uid == nil {
			// A pending tag cannot claim a payload that never decoded to a UID.
			if _, auditErr := s.store.AppendAuditEntry(ctx, &tag.ID, &scanner.DeviceID, now); auditErr != nil {
				logger.ErrorCtx(ctx, auditErr, zap.Int64("tag_id", tag.ID))
			}
			return nil, domain.ErrCardNotRegistered
		}
		if claimed, err := s.store.OwnerHasClaimedTag(ctx, *tag.OwnerID); err == nil && claimed {
			// One claimed tag per person is a convention, not a constraint.
			logger.WarnCtx(ctx, "binding a second claimed tag for identity",
				zap.Int64("identity_id", *tag.OwnerID),
				zap.Int64("tag_id", tag.ID))
		}
		if _, err := s.store.BindPendingTag(ctx, tag.ID, uid, &scanner.DeviceID, now); err != nil {
			return nil, fmt.Errorf("bind pending tag: %w", err)
		}
		return &ScanResult{
			State: domain.ScanStateRegister,
			Name:  tag.OwnerDisplayName(),
			TagID: tag.ID,
		}, nil

	default: // claimed
		entry, err := s.store.AppendToggleEntry(ctx, tag.ID, &scanner.DeviceID, now)
		if err != nil {
			return nil, fmt.Errorf("append toggle entry: %w", err)
		}
		return &ScanResult{
			State: domain.ScanStateForEvent(entry.Type),
			Name:  tag.OwnerDisplayName(),
			TagID: tag.ID,
		}, nil
	}
}

// Status returns the caller's current check-in state from the most recent
// toggle entry across their tags. State fields are empty when no history
// exists yet.
func (s *Service) Status(ctx context.Context, identityID int64) (*StatusResult, error) {
	last, err := s.store.GetLastEntryForIdentity(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("get last entry: %w", err)
	}
	if last == nil {
		return &StatusResult{}, nil
	}
	t := last.Time
	return &StatusResult{
		State:        string(domain.ScanStateForEvent(last.Type)),
		StateDisplay: last.Type.Display(),
		Date:         &t,
	}, nil
}

// ChangeStatus toggles the caller's state through one of their own tags.
// The self-service path: no scanner involved, but the same locked toggle.
func (s *Service) ChangeStatus(ctx context.Context, identityID, tagID int64) (*StatusResult, error) {
	tag, err := s.store.GetTagByID(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if tag == nil || tag.OwnerID == nil || *tag.OwnerID != identityID {
		return nil, domain.ErrTagNotOwned
	}

	entry, err := s.store.AppendToggleEntry(ctx, tag.ID, nil, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("append toggle entry: %w", err)
	}
	t := entry.Time
	return &StatusResult{
		State:        string(domain.ScanStateForEvent(entry.Type)),
		StateDisplay: entry.Type.Display(),
		Date:         &t,
		Tag:          tag.Label(),
	}, nil
}

// History returns the caller's full attendance log, newest first
func (s *Service) History(ctx context.Context, identityID int64) ([]HistoryEntry, error) {
	entries, err := s.store.ListEntriesForIdentity(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		h := HistoryEntry{
			ID:   e.ID,
			Type: e.Type.Display(),
			Time: e.Time,
		}
		if e.Tag != nil {
			h.Tag = e.Tag.Label()
			h.UserID = e.Tag.OwnerID
		}
		out = append(out, h)
	}
	return out, nil
}

// EnrollTag creates a pending-registration tag for an identity. The physical
// card binds on its first scan.
func (s *Service) EnrollTag(ctx context.Context, ownerID int64, displayName string) (*TagResult, error) {
	identity, err := s.store.GetIdentityByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if identity == nil {
		return nil, fmt.Errorf("identity %d: %w", ownerID, domain.ErrIdentityNotFound)
	}

	tag, err := s.store.CreatePendingTag(ctx, ownerID, displayName)
	if err != nil {
		return nil, fmt.Errorf("create pending tag: %w", err)
	}
	return &TagResult{
		ID:          tag.ID,
		DisplayName: displayName,
		OwnerID:     ownerID,
		State:       domain.TagPendingRegistration,
	}, nil
}
