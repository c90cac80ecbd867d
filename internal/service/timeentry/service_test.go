package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracklite/timeclock-backend-go/internal/domain/timeentry"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/authz"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/database"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/sse"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/validator"
)

// fakeEntryRepository is an in-memory EntryRepository. It records delete
// calls so tests can assert that forbidden deletes never reach storage.
type fakeEntryRepository struct {
	entries      map[string]timeentry.TimeEntry
	activeClocks map[string]timeentry.ActiveClock
	deleteCalls  int
}

func newFakeEntryRepository() *fakeEntryRepository {
	return &fakeEntryRepository{
		entries:      make(map[string]timeentry.TimeEntry),
		activeClocks: make(map[string]timeentry.ActiveClock),
	}
}

func (f *fakeEntryRepository) CreateEntry(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeEntryRepository) DeleteEntry(ctx context.Context, id string) error {
	f.deleteCalls++
	if _, ok := f.entries[id]; !ok {
		return timeentry.ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeEntryRepository) GetEntryByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeEntryRepository) ListEntries(ctx context.Context, scope timeentry.EntryScope) ([]timeentry.TimeEntry, error) {
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if scope.All || e.UserID == scope.UserID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepository) GetActiveClock(ctx context.Context, userID string) (*timeentry.ActiveClock, error) {
	clock, ok := f.activeClocks[userID]
	if !ok {
		return nil, nil
	}
	return &clock, nil
}

func (f *fakeEntryRepository) SetActiveClock(ctx context.Context, clock timeentry.ActiveClock) error {
	f.activeClocks[clock.UserID] = clock
	return nil
}

func (f *fakeEntryRepository) ClearActiveClock(ctx context.Context, userID string) error {
	delete(f.activeClocks, userID)
	return nil
}

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, userID, name string) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   userID + "@example.com",
		"name":    name,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// passthroughTx runs the transactional body directly, without a pool.
func passthroughTx(ctx context.Context, _ *database.DB, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

func newTestService(repo timeentry.EntryRepository, adminIDs ...string) timeentry.EntryService {
	return &EntryServiceImpl{
		EntryRepository: repo,
		policy:          authz.NewAllowListPolicy(adminIDs),
		hub:             sse.NewHub(),
		runTx:           passthroughTx,
	}
}

func TestClockIn_Success(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	svc := newTestService(repo)
	ctx := authedContext(t, "user-1", "Alice")

	resp, err := svc.ClockIn(ctx, timeentry.ClockInRequest{Task: "triage"})

	require.NoError(t, err)
	assert.True(t, resp.ClockedIn)
	assert.Equal(t, "Alice", resp.Username)
	assert.Equal(t, "triage", resp.Task)
	assert.NotEmpty(t, repo.activeClocks["user-1"])
}

func TestClockIn_AlreadyClockedIn(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	svc := newTestService(repo)
	ctx := authedContext(t, "user-1", "Alice")

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, timeentry.ClockInRequest{})
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedIn)
}

func TestClockIn_PublishesEvent(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	hub := sse.NewHub()
	svc := &EntryServiceImpl{
		EntryRepository: repo,
		policy:          authz.NewAllowListPolicy(nil),
		hub:             hub,
	}
	ctx := authedContext(t, "user-1", "Alice")

	events, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{Task: "triage"})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "clock.started", event.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a clock.started event")
	}
}

func TestClockOut_RequiresTask(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	svc := newTestService(repo)
	ctx := authedContext(t, "user-1", "Alice")

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, timeentry.ClockOutRequest{Task: "   "})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "task", verrs[0].Field)

	// Validation failure leaves the clock open.
	assert.Len(t, repo.activeClocks, 1)
}

func TestClockOut_WritesEntryAndClearsClock(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	svc := newTestService(repo)
	ctx := authedContext(t, "user-1", "Alice")

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{Task: "draft"})
	require.NoError(t, err)

	resp, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{Task: "triage"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Alice", resp.Username)
	assert.Equal(t, "triage", resp.Task)
	assert.Len(t, repo.entries, 1)
	assert.Empty(t, repo.activeClocks)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	svc := newTestService(repo)
	ctx := authedContext(t, "user-1", "Alice")

	_, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{Task: "triage"})
	assert.ErrorIs(t, err, timeentry.ErrNotClockedIn)
}

func TestList_ScopesToViewerUnlessAdmin(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	now := time.Now().UTC()
	for _, userID := range []string{"user-1", "user-2"} {
		_, err := repo.CreateEntry(context.Background(), timeentry.TimeEntry{
			UserID:       userID,
			Username:     userID,
			ClockInTime:  now.Add(-time.Hour),
			ClockOutTime: now,
			Task:         "work",
		})
		require.NoError(t, err)
	}

	svc := newTestService(repo, "admin-1")

	own, err := svc.List(authedContext(t, "user-1", "Alice"))
	require.NoError(t, err)
	assert.Equal(t, 1, own.Total)

	all, err := svc.List(authedContext(t, "admin-1", "Root"))
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestDelete_OwnerAllowed(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	now := time.Now().UTC()
	created, err := repo.CreateEntry(context.Background(), timeentry.TimeEntry{
		UserID:       "user-1",
		Username:     "Alice",
		ClockInTime:  now.Add(-time.Hour),
		ClockOutTime: now,
	})
	require.NoError(t, err)

	svc := newTestService(repo)

	err = svc.Delete(authedContext(t, "user-1", "Alice"), created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.entries)
}

func TestDelete_AdminMayDeleteOthers(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	now := time.Now().UTC()
	created, err := repo.CreateEntry(context.Background(), timeentry.TimeEntry{
		UserID:       "user-1",
		Username:     "Alice",
		ClockInTime:  now.Add(-time.Hour),
		ClockOutTime: now,
	})
	require.NoError(t, err)

	svc := newTestService(repo, "admin-1")

	err = svc.Delete(authedContext(t, "admin-1", "Root"), created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.entries)
}

func TestDelete_ForbiddenBeforeRepositoryCall(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	now := time.Now().UTC()
	created, err := repo.CreateEntry(context.Background(), timeentry.TimeEntry{
		UserID:       "user-1",
		Username:     "Alice",
		ClockInTime:  now.Add(-time.Hour),
		ClockOutTime: now,
	})
	require.NoError(t, err)

	svc := newTestService(repo)

	err = svc.Delete(authedContext(t, "user-2", "Mallory"), created.ID)
	assert.ErrorIs(t, err, timeentry.ErrDeleteForbidden)
	assert.Zero(t, repo.deleteCalls)
	assert.Len(t, repo.entries, 1)
}

func TestActiveClock_NotClockedIn(t *testing.T) {
	t.Parallel()
	repo := newFakeEntryRepository()
	svc := newTestService(repo)

	resp, err := svc.ActiveClock(authedContext(t, "user-1", "Alice"))
	require.NoError(t, err)
	assert.False(t, resp.ClockedIn)
	assert.Empty(t, resp.ClockInTime)
}
