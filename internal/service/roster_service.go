package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kieranegan23/GPA-CALC/internal/models"
	appErrors "github.com/kieranegan23/GPA-CALC/pkg/errors"
)

type rosterStore interface {
	Load(ctx context.Context) (models.Roster, error)
	Persist(ctx context.Context, roster models.Roster) error
}

// SaveConfirmation is the fixed message returned by the explicit save
// action. The explicit path writes the same data as auto-persist; it exists
// to give the user a confirmation signal.
const SaveConfirmation = "Classes saved!"

// UpdateDraftRequest patches fields of the open draft. Nil fields are left
// untouched.
type UpdateDraftRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Grade   *string `json:"grade" validate:"omitempty,oneof=A A- B+ B B- C+ C C- D F"`
	Credits *int    `json:"credits" validate:"omitempty,min=1,max=6"`
	Term    *string `json:"term" validate:"omitempty,oneof=Fall Spring Summer Winter"`
	Year    *string `json:"year" validate:"omitempty,len=2,number"`
}

// SaveResult captures an explicit save acknowledgement.
type SaveResult struct {
	Message   string    `json:"message"`
	ReceiptID string    `json:"receipt_id"`
	SavedAt   time.Time `json:"saved_at"`
}

// DraftView is a read snapshot of the form state.
type DraftView struct {
	Mode    models.DraftMode `json:"mode"`
	Draft   models.Draft     `json:"draft"`
	IsValid bool             `json:"is_valid"`
}

// RosterService owns the single roster session: the entry list, the draft
// and the add/edit state machine. One instance exists per process; a mutex
// serializes mutations the way the original's event loop did.
type RosterService struct {
	mu     sync.Mutex
	roster models.Roster
	draft  models.Draft
	mode   models.DraftMode

	store     rosterStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRosterService constructs the service.
func NewRosterService(store rosterStore, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		store:     store,
		validator: validate,
		logger:    logger,
		mode:      models.DraftClosed,
		now:       time.Now,
	}
}

// Load pulls the saved roster into memory. Called once on startup; the
// repository already degrades missing or corrupt saves to an empty roster.
func (s *RosterService) Load(ctx context.Context) error {
	roster, err := s.store.Load(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	s.mu.Lock()
	s.roster = roster
	s.mu.Unlock()
	return nil
}

// Roster returns a copy of the current entry list.
func (s *RosterService) Roster() models.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(models.Roster, len(s.roster))
	copy(out, s.roster)
	return out
}

// GPA derives the credit-weighted average for the current roster.
func (s *RosterService) GPA() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.GPA()
}

// TotalCredits sums credits across all entries, graded or not.
func (s *RosterService) TotalCredits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.TotalCredits()
}

// Draft returns a snapshot of the form state.
func (s *RosterService) Draft() DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DraftView{Mode: s.mode, Draft: s.draft, IsValid: s.mode != models.DraftClosed && s.draft.IsComplete()}
}

// OpenAdd resets the draft and enters the adding flow.
func (s *RosterService) OpenAdd() (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != models.DraftClosed {
		return DraftView{}, appErrors.ErrDraftOpen
	}
	s.draft = models.Draft{}
	s.mode = models.DraftAdding
	return DraftView{Mode: s.mode, Draft: s.draft}, nil
}

// OpenEdit copies the entry's fields into the draft, decoding its semester
// into term and year, and enters the editing flow.
func (s *RosterService) OpenEdit(id int64) (DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != models.DraftClosed {
		return DraftView{}, appErrors.ErrDraftOpen
	}
	idx := s.roster.IndexOf(id)
	if idx < 0 {
		return DraftView{}, appErrors.Clone(appErrors.ErrNotFound, "class entry not found")
	}
	s.draft = models.DraftFromEntry(s.roster[idx])
	s.mode = models.DraftEditing
	return DraftView{Mode: s.mode, Draft: s.draft, IsValid: s.draft.IsComplete()}, nil
}

// Cancel discards the draft and returns to the closed state. Cancelling
// with no open draft is a no-op.
func (s *RosterService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = models.Draft{}
	s.mode = models.DraftClosed
}

// UpdateDraft patches the open draft's fields.
func (s *RosterService) UpdateDraft(req UpdateDraftRequest) (DraftView, error) {
	if err := s.validator.Struct(req); err != nil {
		return DraftView{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft payload")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == models.DraftClosed {
		return DraftView{}, appErrors.ErrDraftClosed
	}
	if req.Name != nil {
		s.draft.Name = *req.Name
	}
	if req.Grade != nil {
		s.draft.Grade = models.Grade(*req.Grade)
	}
	if req.Credits != nil {
		s.draft.Credits = *req.Credits
	}
	if req.Term != nil {
		s.draft.Term = *req.Term
	}
	if req.Year != nil {
		s.draft.Year = *req.Year
	}
	return DraftView{Mode: s.mode, Draft: s.draft, IsValid: s.draft.IsComplete()}, nil
}

// Submit commits the open draft. When the draft is closed or any required
// field is missing the call is a silent no-op: no error, no state change,
// no persist. The submit control is expected to be disabled in that case,
// but the check here is deliberately repeated.
func (s *RosterService) Submit(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == models.DraftClosed || !s.draft.IsComplete() {
		return false, nil
	}

	switch s.mode {
	case models.DraftEditing:
		idx := s.roster.IndexOf(s.draft.ID)
		if idx < 0 {
			// The edited entry vanished underneath the draft; treat it
			// like the incomplete case and keep the roster untouched.
			return false, nil
		}
		s.roster[idx] = s.draft.Entry(s.draft.ID)
	default:
		s.roster = append(s.roster, s.draft.Entry(s.mintID()))
	}

	s.persistLocked(ctx, "submit")
	s.draft = models.Draft{}
	s.mode = models.DraftClosed
	return true, nil
}

// DeleteEntry removes the matching entry. An unknown id removes nothing but
// persistence still runs; the modal state is never touched.
func (s *RosterService) DeleteEntry(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.roster.IndexOf(id); idx >= 0 {
		s.roster = append(s.roster[:idx], s.roster[idx+1:]...)
	}
	s.persistLocked(ctx, "delete")
}

// Save is the explicit save action. It writes the same payload as the
// auto-persist path and always acknowledges with the fixed confirmation;
// a storage failure is logged, not surfaced.
func (s *RosterService) Save(ctx context.Context) SaveResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(ctx, "save")
	return SaveResult{
		Message:   SaveConfirmation,
		ReceiptID: uuid.NewString(),
		SavedAt:   s.now().UTC(),
	}
}

// persistLocked writes the roster through the store. Callers hold the lock.
// Failures degrade to a log line; the in-memory roster stays authoritative
// for the session either way.
func (s *RosterService) persistLocked(ctx context.Context, action string) {
	if err := s.store.Persist(ctx, s.roster); err != nil {
		s.logger.Error("roster persist failed",
			zap.String("action", action),
			zap.Int("entries", len(s.roster)),
			zap.Error(err),
		)
	}
}

// mintID issues a creation-time token unique within the roster. Millisecond
// timestamps collide when entries are added in the same tick, so the token
// is bumped until free. IDs are never reused.
func (s *RosterService) mintID() int64 {
	id := s.now().UnixMilli()
	for s.roster.IndexOf(id) >= 0 {
		id++
	}
	return id
}
