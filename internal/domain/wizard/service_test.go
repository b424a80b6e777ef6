package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/spacely/spacely-api/internal/domain/space"
)

type fakeCreator struct {
	created []*Draft
	fail    bool
}

func (f *fakeCreator) CreateFromDraft(_ context.Context, _ uuid.UUID, draft *Draft) (uuid.UUID, error) {
	if f.fail {
		return uuid.Nil, errors.New("create failed")
	}
	f.created = append(f.created, draft)
	return uuid.New(), nil
}

func newWizardTestService() (*Service, *MemoryRepository, *fakeCreator) {
	repo := NewMemoryRepository()
	creator := &fakeCreator{}
	return NewService(repo, creator), repo, creator
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

// completeDraft walks a host through every step.
func completeDraft(t *testing.T, svc *Service, userID uuid.UUID) {
	t.Helper()
	steps := []*StepPatch{
		{BasicInfo: &BasicInfoPatch{Title: strPtr("Garden Studio")}},
		{Address: &AddressPatch{Street: strPtr("1 Main St"), City: strPtr("Austin"), Country: strPtr("US")}},
		{Details: &DetailsPatch{Capacity: intPtr(6)}},
		{Media: &MediaPatch{URLs: []string{"https://cdn.example.com/a.jpg"}}},
		{Pricing: &PricingPatch{PricePerHour: floatPtr(40)}},
	}
	for i, patch := range steps {
		if _, err := svc.SubmitStep(context.Background(), userID, i+1, patch); err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
	}
}

func TestFreshStateStartsAtStepOne(t *testing.T) {
	svc, _, _ := newWizardTestService()

	state, err := svc.State(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.FurthestStep != 1 {
		t.Errorf("furthest = %d, want 1", state.FurthestStep)
	}
	if state.TotalSteps != 5 {
		t.Errorf("total = %d, want 5", state.TotalSteps)
	}
	if len(state.Steps) != 5 || state.Steps[0].Slug != "basic-info" {
		t.Errorf("steps = %+v", state.Steps)
	}
	if state.Draft.Pricing.Currency != "USD" {
		t.Errorf("default currency = %q", state.Draft.Pricing.Currency)
	}
}

func TestLockedStepRedirects(t *testing.T) {
	svc, _, _ := newWizardTestService()
	userID := uuid.New()

	view, err := svc.Step(context.Background(), userID, 4)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if view.Redirect == nil || *view.Redirect != 1 {
		t.Fatalf("expected redirect to 1, got %+v", view.Redirect)
	}
	if view.Draft != nil {
		t.Errorf("locked step leaked draft data")
	}

	// After completing step 1, step 2 opens but step 3 still redirects.
	if _, err := svc.SubmitStep(context.Background(), userID, 1, &StepPatch{
		BasicInfo: &BasicInfoPatch{Title: strPtr("Garden Studio")},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	view, err = svc.Step(context.Background(), userID, 2)
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}
	if view.Redirect != nil {
		t.Errorf("unlocked step redirected to %d", *view.Redirect)
	}
	if view.Draft == nil {
		t.Errorf("unlocked step missing draft")
	}

	view, err = svc.Step(context.Background(), userID, 3)
	if err != nil {
		t.Fatalf("step 3: %v", err)
	}
	if view.Redirect == nil || *view.Redirect != 2 {
		t.Errorf("expected redirect to 2, got %+v", view.Redirect)
	}
}

func TestSubmitLockedStepRejected(t *testing.T) {
	svc, _, _ := newWizardTestService()

	_, err := svc.SubmitStep(context.Background(), uuid.New(), 3, &StepPatch{
		Details: &DetailsPatch{Capacity: intPtr(4)},
	})
	if !errors.Is(err, ErrStepLocked) {
		t.Fatalf("got %v, want ErrStepLocked", err)
	}
}

func TestSubmitUnknownStep(t *testing.T) {
	svc, _, _ := newWizardTestService()

	for _, n := range []int{0, 6, -1} {
		if _, err := svc.SubmitStep(context.Background(), uuid.New(), n, &StepPatch{}); !errors.Is(err, ErrUnknownStep) {
			t.Errorf("step %d: got %v, want ErrUnknownStep", n, err)
		}
	}
}

func TestSubmitPatchMismatch(t *testing.T) {
	svc, _, _ := newWizardTestService()

	// Address payload against step 1.
	_, err := svc.SubmitStep(context.Background(), uuid.New(), 1, &StepPatch{
		Address: &AddressPatch{City: strPtr("Austin")},
	})
	if !errors.Is(err, ErrPatchMismatch) {
		t.Fatalf("got %v, want ErrPatchMismatch", err)
	}

	// Two sections at once is also rejected.
	_, err = svc.SubmitStep(context.Background(), uuid.New(), 1, &StepPatch{
		BasicInfo: &BasicInfoPatch{Title: strPtr("Garden Studio")},
		Address:   &AddressPatch{City: strPtr("Austin")},
	})
	if !errors.Is(err, ErrPatchMismatch) {
		t.Fatalf("got %v, want ErrPatchMismatch", err)
	}
}

func TestStepValidation(t *testing.T) {
	svc, _, _ := newWizardTestService()

	_, err := svc.SubmitStep(context.Background(), uuid.New(), 1, &StepPatch{
		BasicInfo: &BasicInfoPatch{Title: strPtr("ab")},
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if _, ok := validationErr.Fields["title"]; !ok {
		t.Errorf("missing title error: %v", validationErr.Fields)
	}
}

func TestResubmitMergesOverExistingValues(t *testing.T) {
	svc, _, _ := newWizardTestService()
	userID := uuid.New()

	if _, err := svc.SubmitStep(context.Background(), userID, 1, &StepPatch{
		BasicInfo: &BasicInfoPatch{Title: strPtr("Garden Studio"), Description: strPtr("Sunny and quiet")},
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Resubmitting step 1 with only a title keeps the description.
	state, err := svc.SubmitStep(context.Background(), userID, 1, &StepPatch{
		BasicInfo: &BasicInfoPatch{Title: strPtr("Garden Loft")},
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if state.Draft.BasicInfo.Title != "Garden Loft" {
		t.Errorf("title = %q", state.Draft.BasicInfo.Title)
	}
	if state.Draft.BasicInfo.Description != "Sunny and quiet" {
		t.Errorf("description lost on merge: %q", state.Draft.BasicInfo.Description)
	}
	// Gate stays at 2; resubmitting an early step never rewinds it.
	if state.FurthestStep != 2 {
		t.Errorf("furthest = %d, want 2", state.FurthestStep)
	}
}

func TestArraysReplaceWholesale(t *testing.T) {
	svc, _, _ := newWizardTestService()
	userID := uuid.New()
	completeDraft(t, svc, userID)

	if _, err := svc.SubmitStep(context.Background(), userID, 3, &StepPatch{
		Details: &DetailsPatch{Amenities: []string{"wifi", "parking"}},
	}); err != nil {
		t.Fatalf("set amenities: %v", err)
	}

	state, err := svc.SubmitStep(context.Background(), userID, 3, &StepPatch{
		Details: &DetailsPatch{Amenities: []string{"projector"}},
	})
	if err != nil {
		t.Fatalf("replace amenities: %v", err)
	}
	if len(state.Draft.Details.Amenities) != 1 || state.Draft.Details.Amenities[0] != "projector" {
		t.Errorf("amenities = %v, want wholesale replacement", state.Draft.Details.Amenities)
	}
	if state.Draft.Details.Capacity != 6 {
		t.Errorf("capacity lost: %d", state.Draft.Details.Capacity)
	}
}

func TestServiceHoursReplaceWholesale(t *testing.T) {
	svc, _, _ := newWizardTestService()
	userID := uuid.New()
	completeDraft(t, svc, userID)

	if _, err := svc.SubmitStep(context.Background(), userID, 3, &StepPatch{
		Details: &DetailsPatch{ServiceHours: space.WeeklySchedule{
			"monday":  {Start: "09:00", End: "17:00"},
			"tuesday": {Start: "09:00", End: "17:00"},
		}},
	}); err != nil {
		t.Fatalf("set hours: %v", err)
	}

	state, err := svc.SubmitStep(context.Background(), userID, 3, &StepPatch{
		Details: &DetailsPatch{ServiceHours: space.WeeklySchedule{
			"friday": {Start: "10:00", End: "14:00"},
		}},
	})
	if err != nil {
		t.Fatalf("replace hours: %v", err)
	}
	if len(state.Draft.Details.ServiceHours) != 1 {
		t.Errorf("hours = %v, want wholesale replacement", state.Draft.Details.ServiceHours)
	}
	if state.Draft.Details.Capacity != 6 {
		t.Errorf("capacity lost: %d", state.Draft.Details.Capacity)
	}

	// Bad windows are rejected.
	_, err = svc.SubmitStep(context.Background(), userID, 3, &StepPatch{
		Details: &DetailsPatch{ServiceHours: space.WeeklySchedule{
			"friday": {Start: "14:00", End: "10:00"},
		}},
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("inverted window = %v, want ValidationError", err)
	}
}

func TestGateClampsAtLastStep(t *testing.T) {
	svc, _, _ := newWizardTestService()
	userID := uuid.New()
	completeDraft(t, svc, userID)

	state, err := svc.SubmitStep(context.Background(), userID, 5, &StepPatch{
		Pricing: &PricingPatch{PricePerHour: floatPtr(55)},
	})
	if err != nil {
		t.Fatalf("resubmit last: %v", err)
	}
	if state.FurthestStep != 5 {
		t.Errorf("furthest = %d, want clamp at 5", state.FurthestStep)
	}
}

func TestPublish(t *testing.T) {
	svc, repo, creator := newWizardTestService()
	userID := uuid.New()

	// Incomplete draft cannot publish.
	if _, err := svc.Publish(context.Background(), userID); !errors.Is(err, ErrStepsIncomplete) {
		t.Fatalf("empty publish = %v, want ErrStepsIncomplete", err)
	}

	completeDraft(t, svc, userID)

	spaceID, err := svc.Publish(context.Background(), userID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if spaceID == uuid.Nil {
		t.Errorf("no space id returned")
	}
	if len(creator.created) != 1 {
		t.Fatalf("creator calls = %d", len(creator.created))
	}
	if creator.created[0].BasicInfo.Title != "Garden Studio" {
		t.Errorf("draft not passed to creator")
	}

	// Draft is gone after publish.
	if _, err := repo.Get(context.Background(), userID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("draft survived publish: %v", err)
	}
	state, _ := svc.State(context.Background(), userID)
	if state.FurthestStep != 1 {
		t.Errorf("wizard did not restart after publish")
	}
}

func TestPublishKeepsDraftOnCreateFailure(t *testing.T) {
	svc, repo, creator := newWizardTestService()
	creator.fail = true
	userID := uuid.New()
	completeDraft(t, svc, userID)

	if _, err := svc.Publish(context.Background(), userID); err == nil {
		t.Fatal("expected publish error")
	}
	if _, err := repo.Get(context.Background(), userID); err != nil {
		t.Errorf("draft lost after failed publish: %v", err)
	}
}

func TestReset(t *testing.T) {
	svc, repo, _ := newWizardTestService()
	userID := uuid.New()
	completeDraft(t, svc, userID)

	if err := svc.Reset(context.Background(), userID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := repo.Get(context.Background(), userID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("draft survived reset")
	}
}

func TestDraftHydratesOverDefaults(t *testing.T) {
	repo := NewMemoryRepository()
	userID := uuid.New()

	// Simulate a draft written before the pricing step carried a
	// currency: the stored JSON simply lacks the field.
	repo.drafts[userID] = []byte(`{"basic_info":{"title":"Garden Studio"},"furthest_step":2}`)

	draft, err := repo.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if draft.Pricing.Currency != "USD" {
		t.Errorf("currency default lost: %q", draft.Pricing.Currency)
	}
	if draft.BasicInfo.Title != "Garden Studio" {
		t.Errorf("stored fields lost: %q", draft.BasicInfo.Title)
	}
	if draft.FurthestStep != 2 {
		t.Errorf("furthest = %d", draft.FurthestStep)
	}
}
