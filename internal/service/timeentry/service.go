package timeentry

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/tracklite/timeclock-backend-go/internal/domain/auth"
	"github.com/tracklite/timeclock-backend-go/internal/domain/timeentry"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/authz"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/database"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/sse"
	"github.com/tracklite/timeclock-backend-go/internal/repository/postgresql"
)

const (
	eventClockStarted = "clock.started"
	eventClockCleared = "clock.cleared"
)

// txRunner abstracts the transactional boundary so the service logic can be
// exercised without a live pool.
type txRunner func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error

type EntryServiceImpl struct {
	db *database.DB
	timeentry.EntryRepository
	policy authz.Policy
	hub    *sse.Hub
	runTx  txRunner
}

func NewEntryService(db *database.DB, entryRepository timeentry.EntryRepository, policy authz.Policy, hub *sse.Hub) timeentry.EntryService {
	return &EntryServiceImpl{
		db:              db,
		EntryRepository: entryRepository,
		policy:          policy,
		hub:             hub,
		runTx:           postgresql.WithTransaction,
	}
}

// viewer pulls the authenticated identity out of the JWT claims.
func viewer(ctx context.Context) (userID string, username string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", auth.ErrInvalidToken
	}

	username, _ = claims["name"].(string)
	if username == "" {
		username, _ = claims["email"].(string)
	}

	return userID, username, nil
}

// ClockIn implements timeentry.EntryService.
func (s *EntryServiceImpl) ClockIn(ctx context.Context, req timeentry.ClockInRequest) (timeentry.ActiveClockResponse, error) {
	userID, username, err := viewer(ctx)
	if err != nil {
		return timeentry.ActiveClockResponse{}, err
	}

	existing, err := s.EntryRepository.GetActiveClock(ctx, userID)
	if err != nil {
		return timeentry.ActiveClockResponse{}, fmt.Errorf("failed to check active clock: %w", err)
	}
	if existing != nil {
		return timeentry.ActiveClockResponse{}, timeentry.ErrAlreadyClockedIn
	}

	now := time.Now().UTC()
	clock := timeentry.ActiveClock{
		UserID:      userID,
		Username:    username,
		Task:        req.Task,
		ClockInTime: now,
		LastUpdated: now,
	}

	if err := s.EntryRepository.SetActiveClock(ctx, clock); err != nil {
		return timeentry.ActiveClockResponse{}, fmt.Errorf("failed to set active clock: %w", err)
	}

	resp := clock.ToResponse()
	s.hub.Publish(userID, sse.Event{UserID: userID, Event: eventClockStarted, Data: resp})

	return resp, nil
}

// ClockOut implements timeentry.EntryService.
func (s *EntryServiceImpl) ClockOut(ctx context.Context, req timeentry.ClockOutRequest) (timeentry.TimeEntryResponse, error) {
	userID, username, err := viewer(ctx)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	clock, err := s.EntryRepository.GetActiveClock(ctx, userID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to check active clock: %w", err)
	}
	if clock == nil {
		return timeentry.TimeEntryResponse{}, timeentry.ErrNotClockedIn
	}

	if clock.Username != "" {
		username = clock.Username
	}

	entry := timeentry.TimeEntry{
		UserID:       userID,
		Username:     username,
		ClockInTime:  clock.ClockInTime,
		ClockOutTime: time.Now().UTC(),
		Task:         req.Task,
	}

	// The entry write and the clock clear commit together; a failure on
	// either side leaves the user still clocked in.
	var created timeentry.TimeEntry
	err = s.runTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.EntryRepository.CreateEntry(txCtx, entry)
		if err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		if err := s.EntryRepository.ClearActiveClock(txCtx, userID); err != nil {
			return fmt.Errorf("failed to clear active clock: %w", err)
		}

		return nil
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	s.hub.Publish(userID, sse.Event{UserID: userID, Event: eventClockCleared, Data: nil})

	return created.ToResponse(), nil
}

// ActiveClock implements timeentry.EntryService.
func (s *EntryServiceImpl) ActiveClock(ctx context.Context) (timeentry.ActiveClockResponse, error) {
	userID, _, err := viewer(ctx)
	if err != nil {
		return timeentry.ActiveClockResponse{}, err
	}

	return s.ActiveClockForUser(ctx, userID)
}

// ActiveClockForUser implements timeentry.EntryService.
func (s *EntryServiceImpl) ActiveClockForUser(ctx context.Context, userID string) (timeentry.ActiveClockResponse, error) {
	clock, err := s.EntryRepository.GetActiveClock(ctx, userID)
	if err != nil {
		return timeentry.ActiveClockResponse{}, fmt.Errorf("failed to get active clock: %w", err)
	}
	if clock == nil {
		return timeentry.ActiveClockResponse{ClockedIn: false}, nil
	}

	return clock.ToResponse(), nil
}

// List implements timeentry.EntryService.
func (s *EntryServiceImpl) List(ctx context.Context) (timeentry.ListEntriesResponse, error) {
	userID, _, err := viewer(ctx)
	if err != nil {
		return timeentry.ListEntriesResponse{}, err
	}

	scope := timeentry.ScopeUser(userID)
	if s.policy.IsAdmin(userID) {
		scope = timeentry.ScopeAll()
	}

	entries, err := s.EntryRepository.ListEntries(ctx, scope)
	if err != nil {
		return timeentry.ListEntriesResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := timeentry.ListEntriesResponse{
		Entries: make([]timeentry.TimeEntryResponse, 0, len(entries)),
		Total:   len(entries),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, e.ToResponse())
	}

	return resp, nil
}

// Delete implements timeentry.EntryService.
func (s *EntryServiceImpl) Delete(ctx context.Context, id string) error {
	userID, _, err := viewer(ctx)
	if err != nil {
		return err
	}

	entry, err := s.EntryRepository.GetEntryByID(ctx, id)
	if err != nil {
		return err
	}

	// Ownership is settled before any delete reaches the repository.
	if entry.UserID != userID && !s.policy.IsAdmin(userID) {
		return timeentry.ErrDeleteForbidden
	}

	return s.EntryRepository.DeleteEntry(ctx, id)
}
