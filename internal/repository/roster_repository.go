package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/kieranegan23/GPA-CALC/internal/models"
)

// RosterRepository bridges the in-memory roster and the key-value store.
// The roster is stored whole as a JSON array under one fixed key; every
// persist is a full-list overwrite, never a diff.
type RosterRepository struct {
	kv     KVStore
	key    string
	logger *zap.Logger
}

// NewRosterRepository constructs the repository.
func NewRosterRepository(kv KVStore, key string, logger *zap.Logger) *RosterRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterRepository{kv: kv, key: key, logger: logger}
}

// Load reads the saved roster. A missing key yields an empty roster.
// Unparsable content is logged and also yields an empty roster; a corrupt
// save is treated as "nothing was ever saved", never as a fatal condition.
func (r *RosterRepository) Load(ctx context.Context) (models.Roster, error) {
	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if !found {
		return models.Roster{}, nil
	}

	var roster models.Roster
	if err := json.Unmarshal([]byte(raw), &roster); err != nil {
		r.logger.Warn("saved roster unparsable, starting empty",
			zap.String("key", r.key),
			zap.Error(err),
		)
		return models.Roster{}, nil
	}
	return roster, nil
}

// Persist writes the full roster back under the fixed key. Contents are not
// validated here; an empty roster is always a valid write.
func (r *RosterRepository) Persist(ctx context.Context, roster models.Roster) error {
	if roster == nil {
		roster = models.Roster{}
	}
	payload, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, string(payload)); err != nil {
		return fmt.Errorf("persist roster: %w", err)
	}
	return nil
}
