package space

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeSpaceRepo struct {
	spaces map[uuid.UUID]*Space
}

func newFakeSpaceRepo() *fakeSpaceRepo {
	return &fakeSpaceRepo{spaces: make(map[uuid.UUID]*Space)}
}

func (f *fakeSpaceRepo) Create(_ context.Context, s *Space) error {
	cp := *s
	f.spaces[s.ID] = &cp
	return nil
}

func (f *fakeSpaceRepo) GetByID(_ context.Context, id uuid.UUID) (*Space, error) {
	s, ok := f.spaces[id]
	if !ok {
		return nil, ErrSpaceNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSpaceRepo) Update(_ context.Context, s *Space) error {
	if _, ok := f.spaces[s.ID]; !ok {
		return ErrSpaceNotFound
	}
	cp := *s
	f.spaces[s.ID] = &cp
	return nil
}

func (f *fakeSpaceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	s, ok := f.spaces[id]
	if !ok {
		return ErrSpaceNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeSpaceRepo) List(_ context.Context, filter *Filter, _ *Pagination) ([]*Space, int, error) {
	var out []*Space
	for _, s := range f.spaces {
		if filter != nil && filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter != nil && filter.HostID != nil && s.HostID != *filter.HostID {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (f *fakeSpaceRepo) ListByHost(ctx context.Context, hostID uuid.UUID, p *Pagination) ([]*Space, int, error) {
	return f.List(ctx, &Filter{HostID: &hostID}, p)
}

type fakeBlockedRepo struct {
	blocked map[uuid.UUID]*BlockedHour
}

func newFakeBlockedRepo() *fakeBlockedRepo {
	return &fakeBlockedRepo{blocked: make(map[uuid.UUID]*BlockedHour)}
}

func (f *fakeBlockedRepo) Create(_ context.Context, b *BlockedHour) error {
	for _, existing := range f.blocked {
		if existing.SpaceID == b.SpaceID &&
			existing.BlockedDate.Equal(b.BlockedDate) &&
			existing.StartTime == b.StartTime {
			return ErrBlockedHourExists
		}
	}
	f.blocked[b.ID] = b
	return nil
}

func (f *fakeBlockedRepo) GetByID(_ context.Context, id uuid.UUID) (*BlockedHour, error) {
	b, ok := f.blocked[id]
	if !ok {
		return nil, ErrBlockedHourNotFound
	}
	return b, nil
}

func (f *fakeBlockedRepo) ListForDay(_ context.Context, spaceID uuid.UUID, date time.Time) ([]*BlockedHour, error) {
	var out []*BlockedHour
	for _, b := range f.blocked {
		if b.SpaceID == spaceID && b.BlockedDate.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockedRepo) ListForSpace(_ context.Context, spaceID uuid.UUID, from time.Time) ([]*BlockedHour, error) {
	var out []*BlockedHour
	for _, b := range f.blocked {
		if b.SpaceID == spaceID && !b.BlockedDate.Before(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockedRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.blocked[id]; !ok {
		return ErrBlockedHourNotFound
	}
	delete(f.blocked, id)
	return nil
}

type notifyRecorder struct {
	calls []string
}

func (n *notifyRecorder) AvailabilityChanged(_ context.Context, spaceID uuid.UUID, date string) {
	n.calls = append(n.calls, spaceID.String()+"/"+date)
}

func newTestService() (*Service, *fakeSpaceRepo, *fakeBlockedRepo, *notifyRecorder) {
	spaces := newFakeSpaceRepo()
	blocked := newFakeBlockedRepo()
	notify := &notifyRecorder{}
	return NewService(spaces, blocked, notify), spaces, blocked, notify
}

func TestCreateSetsDefaults(t *testing.T) {
	svc, _, _, _ := newTestService()
	hostID := uuid.New()

	space, err := svc.Create(context.Background(), hostID, &CreateSpaceRequest{
		Title:        "Loft on Main",
		Street:       "1 Main St",
		City:         "Austin",
		Country:      "US",
		Capacity:     10,
		PricePerHour: 75,
		Currency:     "USD",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if space.Status != StatusActive {
		t.Errorf("expected active status, got %s", space.Status)
	}
	if space.HostID != hostID {
		t.Errorf("host not set")
	}
	if space.AvailabilityHours == nil {
		t.Errorf("expected non-nil schedule")
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	svc, repo, _, _ := newTestService()
	hostID := uuid.New()

	space := &Space{ID: uuid.New(), HostID: hostID, Title: "Studio", Status: StatusActive}
	repo.Create(context.Background(), space)

	title := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), space.ID, &UpdateSpaceRequest{Title: &title})
	if !errors.Is(err, ErrNotSpaceOwner) {
		t.Fatalf("expected ErrNotSpaceOwner, got %v", err)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc, repo, _, notify := newTestService()
	hostID := uuid.New()

	space := &Space{
		ID:           uuid.New(),
		HostID:       hostID,
		Title:        "Studio",
		City:         "Austin",
		Capacity:     8,
		PricePerHour: 50,
		Currency:     "USD",
		Status:       StatusActive,
	}
	repo.Create(context.Background(), space)

	price := 60.0
	updated, err := svc.Update(context.Background(), hostID, space.ID, &UpdateSpaceRequest{
		PricePerHour: &price,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.PricePerHour != 60 {
		t.Errorf("price not updated: %v", updated.PricePerHour)
	}
	if updated.Title != "Studio" || updated.City != "Austin" || updated.Capacity != 8 {
		t.Errorf("unset fields changed: %+v", updated)
	}
	if len(notify.calls) != 0 {
		t.Errorf("price change should not signal availability change")
	}

	hours := WeeklySchedule{"monday": {Start: "10:00", End: "18:00"}}
	if _, err := svc.Update(context.Background(), hostID, space.ID, &UpdateSpaceRequest{ServiceHours: &hours}); err != nil {
		t.Fatalf("schedule update: %v", err)
	}
	if len(notify.calls) != 1 {
		t.Errorf("schedule change should signal availability change, got %d calls", len(notify.calls))
	}
}

func TestBlockHour(t *testing.T) {
	svc, repo, _, notify := newTestService()
	hostID := uuid.New()

	space := &Space{ID: uuid.New(), HostID: hostID, Status: StatusActive}
	repo.Create(context.Background(), space)

	req := &BlockHourRequest{Date: "2026-09-14", StartTime: "10:00", Reason: "maintenance"}

	blocked, err := svc.BlockHour(context.Background(), hostID, space.ID, req)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	if blocked.StartTime != "10:00" {
		t.Errorf("start time: %s", blocked.StartTime)
	}
	if !blocked.Reason.Valid || blocked.Reason.String != "maintenance" {
		t.Errorf("reason not stored")
	}
	if len(notify.calls) != 1 {
		t.Errorf("expected availability change signal")
	}

	// Same hour again conflicts.
	if _, err := svc.BlockHour(context.Background(), hostID, space.ID, req); !errors.Is(err, ErrBlockedHourExists) {
		t.Errorf("expected ErrBlockedHourExists, got %v", err)
	}

	// Bad clock string.
	bad := &BlockHourRequest{Date: "2026-09-14", StartTime: "25:00"}
	if _, err := svc.BlockHour(context.Background(), hostID, space.ID, bad); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}

	// Non-owner cannot block.
	if _, err := svc.BlockHour(context.Background(), uuid.New(), space.ID, req); !errors.Is(err, ErrNotSpaceOwner) {
		t.Errorf("expected ErrNotSpaceOwner, got %v", err)
	}
}

func TestUnblockHourScopedToSpace(t *testing.T) {
	svc, repo, blockedRepo, _ := newTestService()
	hostID := uuid.New()

	spaceA := &Space{ID: uuid.New(), HostID: hostID, Status: StatusActive}
	spaceB := &Space{ID: uuid.New(), HostID: hostID, Status: StatusActive}
	repo.Create(context.Background(), spaceA)
	repo.Create(context.Background(), spaceB)

	b := &BlockedHour{
		ID:          uuid.New(),
		SpaceID:     spaceA.ID,
		BlockedDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
	}
	blockedRepo.Create(context.Background(), b)

	// Wrong space in the path does not delete.
	if err := svc.UnblockHour(context.Background(), hostID, spaceB.ID, b.ID); !errors.Is(err, ErrBlockedHourNotFound) {
		t.Fatalf("expected ErrBlockedHourNotFound, got %v", err)
	}

	if err := svc.UnblockHour(context.Background(), hostID, spaceA.ID, b.ID); err != nil {
		t.Fatalf("unblock: %v", err)
	}
}

func TestListDefaultsToActive(t *testing.T) {
	svc, repo, _, _ := newTestService()
	hostID := uuid.New()

	repo.Create(context.Background(), &Space{ID: uuid.New(), HostID: hostID, Status: StatusActive})
	repo.Create(context.Background(), &Space{ID: uuid.New(), HostID: hostID, Status: StatusArchived})

	spaces, total, err := svc.List(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(spaces) != 1 {
		t.Fatalf("expected 1 active space, got %d", total)
	}
	if spaces[0].Status != StatusActive {
		t.Errorf("listed a non-active space")
	}
}
