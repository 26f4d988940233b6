package attendance

import (
	"context"
	"fmt"

	"github.com/roboteam/door-tracker/internal/domain"
	"github.com/roboteam/door-tracker/internal/store/schema"
)

// resolveTag maps a raw scan payload to a tag, trying in order: numeric
// stable handle, case-insensitive display name (as given, then stripped of
// non-alphanumerics), raw UID after stripping separator characters, and
// finally the oldest pending-registration tag (the first-seen binding
// target). A hex-decode failure falls through silently; scanner firmware is
// allowed to emit malformed separators.
//
// Returns the resolved tag (nil when nothing matched) and the decoded UID
// (nil when the payload did not decode).
func (s *Service) resolveTag(ctx context.Context, payload string) (*schema.Tag, []byte, error) {
	if id, ok := domain.NumericID(payload); ok {
		tag, err := s.store.GetTagByID(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve by id: %w", err)
		}
		if tag != nil {
			return tag, nil, nil
		}
	}

	tag, err := s.store.GetTagByDisplayName(ctx, payload)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve by name: %w", err)
	}
	if tag != nil {
		return tag, nil, nil
	}

	uid, decoded := domain.DecodeUID(payload)
	if decoded {
		tag, err = s.store.GetTagByUID(ctx, uid)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve by uid: %w", err)
		}
		if tag != nil {
			return tag, uid, nil
		}
	}

	// An unmatched card claims the oldest tag still waiting for one.
	tag, err = s.store.GetOldestPendingTag(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve pending: %w", err)
	}
	if tag != nil {
		return tag, uid, nil
	}

	if !decoded {
		return nil, nil, nil
	}

	// The single canonical creation point for unauthorized tags.
	tag, err = s.store.CreateUnauthorizedTag(ctx, uid)
	if err != nil {
		return nil, nil, fmt.Errorf("create unauthorized tag: %w", err)
	}
	return tag, uid, nil
}
