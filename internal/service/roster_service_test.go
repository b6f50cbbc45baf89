package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kieranegan23/GPA-CALC/internal/models"
	appErrors "github.com/kieranegan23/GPA-CALC/pkg/errors"
)

type mockRosterStore struct {
	saved      models.Roster
	loadResp   models.Roster
	loadErr    error
	persistErr error
	persists   int
}

func (m *mockRosterStore) Load(ctx context.Context) (models.Roster, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loadResp, nil
}

func (m *mockRosterStore) Persist(ctx context.Context, roster models.Roster) error {
	m.persists++
	if m.persistErr != nil {
		return m.persistErr
	}
	m.saved = make(models.Roster, len(roster))
	copy(m.saved, roster)
	return nil
}

func newTestService(store *mockRosterStore) *RosterService {
	return NewRosterService(store, validator.New(), zap.NewNop())
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func fillDraft(t *testing.T, svc *RosterService, name, grade string, credits int, term, year string) {
	t.Helper()
	_, err := svc.UpdateDraft(UpdateDraftRequest{
		Name:    strPtr(name),
		Grade:   strPtr(grade),
		Credits: intPtr(credits),
		Term:    strPtr(term),
		Year:    strPtr(year),
	})
	require.NoError(t, err)
}

func TestRosterServiceLoad(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{{ID: 1, Name: "Calc I", Grade: models.GradeA, Credits: 4}}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))
	assert.Len(t, svc.Roster(), 1)
	assert.Equal(t, "4", svc.GPA())
}

func TestRosterServiceLoadError(t *testing.T) {
	store := &mockRosterStore{loadErr: errors.New("boom")}
	svc := newTestService(store)
	err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceAddFlow(t *testing.T) {
	store := &mockRosterStore{}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	view, err := svc.OpenAdd()
	require.NoError(t, err)
	assert.Equal(t, models.DraftAdding, view.Mode)
	assert.False(t, view.IsValid)

	fillDraft(t, svc, "Calc I", "A", 4, "Fall", "24")
	assert.True(t, svc.Draft().IsValid)

	mutated, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, mutated)

	roster := svc.Roster()
	require.Len(t, roster, 1)
	assert.NotZero(t, roster[0].ID)
	assert.Equal(t, "Calc I", roster[0].Name)
	assert.Equal(t, "FA 24", roster[0].Semester)
	assert.Equal(t, models.DraftClosed, svc.Draft().Mode)
	assert.Equal(t, 1, store.persists)
	assert.Len(t, store.saved, 1)
}

func TestRosterServiceAddMintsUniqueIDs(t *testing.T) {
	store := &mockRosterStore{}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))
	// Freeze the clock so consecutive adds collide on the timestamp token.
	frozen := time.UnixMilli(1700000000000)
	svc.now = func() time.Time { return frozen }

	for i := 0; i < 3; i++ {
		_, err := svc.OpenAdd()
		require.NoError(t, err)
		fillDraft(t, svc, "Calc I", "A", 4, "Fall", "24")
		mutated, err := svc.Submit(context.Background())
		require.NoError(t, err)
		require.True(t, mutated)
	}

	roster := svc.Roster()
	require.Len(t, roster, 3)
	seen := map[int64]bool{}
	for _, e := range roster {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
}

func TestRosterServiceEditPreservesIDAndOrder(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{
		{ID: 1, Name: "Calc I", Grade: models.GradeA, Credits: 4, Semester: "FA 24"},
		{ID: 2, Name: "Art", Grade: models.GradeBMinus, Credits: 2, Semester: "SP 25"},
		{ID: 3, Name: "Bio", Grade: models.GradeB, Credits: 3, Semester: "FA 24"},
	}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	view, err := svc.OpenEdit(2)
	require.NoError(t, err)
	assert.Equal(t, models.DraftEditing, view.Mode)
	assert.Equal(t, "Spring", view.Draft.Term)
	assert.Equal(t, "25", view.Draft.Year)
	assert.True(t, view.IsValid)

	fillDraft(t, svc, "Art History", "B+", 3, "Fall", "25")
	mutated, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, mutated)

	roster := svc.Roster()
	require.Len(t, roster, 3)
	assert.Equal(t, int64(1), roster[0].ID)
	assert.Equal(t, int64(2), roster[1].ID)
	assert.Equal(t, int64(3), roster[2].ID)
	assert.Equal(t, "Art History", roster[1].Name)
	assert.Equal(t, models.GradeBPlus, roster[1].Grade)
	assert.Equal(t, "FA 25", roster[1].Semester)
	// Neighbours untouched.
	assert.Equal(t, "Calc I", roster[0].Name)
	assert.Equal(t, "Bio", roster[2].Name)
}

func TestRosterServiceEditLegacyEntryWithoutSemester(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{
		{ID: 1, Name: "Old Class", Grade: models.GradeC, Credits: 3},
	}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	view, err := svc.OpenEdit(1)
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Term)
	assert.Empty(t, view.Draft.Year)
	// Term and year missing means the draft is not submittable yet.
	assert.False(t, view.IsValid)
}

func TestRosterServiceOpenEditUnknownID(t *testing.T) {
	svc := newTestService(&mockRosterStore{})
	require.NoError(t, svc.Load(context.Background()))
	_, err := svc.OpenEdit(99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceNoNestedDrafts(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{{ID: 1, Name: "Calc I", Grade: models.GradeA, Credits: 4}}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.OpenAdd()
	require.NoError(t, err)
	_, err = svc.OpenAdd()
	assert.Equal(t, appErrors.ErrDraftOpen.Code, appErrors.FromError(err).Code)
	_, err = svc.OpenEdit(1)
	assert.Equal(t, appErrors.ErrDraftOpen.Code, appErrors.FromError(err).Code)

	svc.Cancel()
	_, err = svc.OpenEdit(1)
	require.NoError(t, err)
}

func TestRosterServiceSubmitIncompleteIsSilentNoOp(t *testing.T) {
	store := &mockRosterStore{}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.OpenAdd()
	require.NoError(t, err)
	// Leave year unset.
	_, err = svc.UpdateDraft(UpdateDraftRequest{
		Name:    strPtr("Calc I"),
		Grade:   strPtr("A"),
		Credits: intPtr(4),
		Term:    strPtr("Fall"),
	})
	require.NoError(t, err)

	mutated, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, mutated)
	assert.Empty(t, svc.Roster())
	assert.Equal(t, 0, store.persists)
	// The draft stays open for the user to finish.
	assert.Equal(t, models.DraftAdding, svc.Draft().Mode)
}

func TestRosterServiceSubmitClosedIsSilentNoOp(t *testing.T) {
	store := &mockRosterStore{}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	mutated, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, mutated)
	assert.Equal(t, 0, store.persists)
}

func TestRosterServiceCancelDiscardsDraft(t *testing.T) {
	svc := newTestService(&mockRosterStore{})
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.OpenAdd()
	require.NoError(t, err)
	fillDraft(t, svc, "Calc I", "A", 4, "Fall", "24")
	svc.Cancel()

	view := svc.Draft()
	assert.Equal(t, models.DraftClosed, view.Mode)
	assert.Empty(t, view.Draft.Name)
	assert.Empty(t, svc.Roster())
}

func TestRosterServiceUpdateDraftClosed(t *testing.T) {
	svc := newTestService(&mockRosterStore{})
	_, err := svc.UpdateDraft(UpdateDraftRequest{Name: strPtr("Calc I")})
	assert.Equal(t, appErrors.ErrDraftClosed.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceUpdateDraftRejectsBadValues(t *testing.T) {
	svc := newTestService(&mockRosterStore{})
	_, err := svc.OpenAdd()
	require.NoError(t, err)

	_, err = svc.UpdateDraft(UpdateDraftRequest{Grade: strPtr("A+")})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	_, err = svc.UpdateDraft(UpdateDraftRequest{Credits: intPtr(7)})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	_, err = svc.UpdateDraft(UpdateDraftRequest{Year: strPtr("2024")})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceDeleteEntry(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{
		{ID: 1, Name: "Calc I", Grade: models.GradeA, Credits: 4},
		{ID: 2, Name: "Art", Grade: models.GradeBMinus, Credits: 2},
	}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	svc.DeleteEntry(context.Background(), 1)
	roster := svc.Roster()
	require.Len(t, roster, 1)
	assert.Equal(t, int64(2), roster[0].ID)
	assert.Equal(t, 1, store.persists)
}

func TestRosterServiceDeleteUnknownIDStillPersists(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{{ID: 1, Name: "Calc I", Grade: models.GradeA, Credits: 4}}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	svc.DeleteEntry(context.Background(), 99)
	assert.Len(t, svc.Roster(), 1)
	assert.Equal(t, 1, store.persists)
}

func TestRosterServiceDeleteLastEntryPersistsEmptyRoster(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{{ID: 1, Name: "Calc I", Grade: models.GradeA, Credits: 4}}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	svc.DeleteEntry(context.Background(), 1)
	assert.Empty(t, svc.Roster())
	assert.Equal(t, 1, store.persists)
	assert.NotNil(t, store.saved)
	assert.Empty(t, store.saved)
}

func TestRosterServiceSaveAlwaysConfirms(t *testing.T) {
	store := &mockRosterStore{persistErr: errors.New("disk on fire")}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	result := svc.Save(context.Background())
	assert.Equal(t, SaveConfirmation, result.Message)
	assert.NotEmpty(t, result.ReceiptID)
	assert.False(t, result.SavedAt.IsZero())
	assert.Equal(t, 1, store.persists)
}

func TestRosterServiceDerivedTotals(t *testing.T) {
	store := &mockRosterStore{loadResp: models.Roster{
		{ID: 1, Name: "Calc I", Grade: models.GradeA, Credits: 4},
		{ID: 2, Name: "Transfer", Credits: 3},
	}}
	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, "4", svc.GPA())
	assert.Equal(t, 7, svc.TotalCredits())
}
