package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SpaceCreator turns a completed draft into a live space listing.
type SpaceCreator interface {
	CreateFromDraft(ctx context.Context, hostID uuid.UUID, draft *Draft) (uuid.UUID, error)
}

// Service handles listing wizard business logic
type Service struct {
	drafts  Repository
	creator SpaceCreator
	now     func() time.Time
}

// NewService creates new wizard service
func NewService(drafts Repository, creator SpaceCreator) *Service {
	return &Service{
		drafts:  drafts,
		creator: creator,
		now:     time.Now,
	}
}

// StepView is what a step request renders. A locked step carries a
// redirect to the furthest reachable step instead of draft data.
type StepView struct {
	Step     StepInfo `json:"step"`
	Redirect *int     `json:"redirect,omitempty"`
	Draft    *Draft   `json:"draft,omitempty"`
}

// loadOrStart returns the caller's draft, starting a fresh one when
// none exists.
func (s *Service) loadOrStart(ctx context.Context, userID uuid.UUID) (*Draft, error) {
	draft, err := s.drafts.Get(ctx, userID)
	if errors.Is(err, ErrDraftNotFound) {
		return NewDraft(), nil
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// State returns the full wizard state for the caller.
func (s *Service) State(ctx context.Context, userID uuid.UUID) (*State, error) {
	draft, err := s.loadOrStart(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &State{
		Draft:        draft,
		Steps:        Steps,
		FurthestStep: draft.FurthestStep,
		TotalSteps:   LastStep,
	}, nil
}

// Step returns one step's view. Opening a step past the gate yields a
// redirect to the furthest reachable step rather than an error, so
// deep links degrade gracefully.
func (s *Service) Step(ctx context.Context, userID uuid.UUID, n int) (*StepView, error) {
	info, ok := StepByNumber(n)
	if !ok {
		return nil, ErrUnknownStep
	}

	draft, err := s.loadOrStart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if n > draft.FurthestStep {
		redirect := draft.FurthestStep
		target, _ := StepByNumber(redirect)
		return &StepView{Step: target, Redirect: &redirect}, nil
	}

	return &StepView{Step: info, Draft: draft}, nil
}

// SubmitStep validates and merges one step's patch, then advances the
// gate. The gate never moves backward and never past the last step.
func (s *Service) SubmitStep(ctx context.Context, userID uuid.UUID, n int, patch *StepPatch) (*State, error) {
	if _, ok := StepByNumber(n); !ok {
		return nil, ErrUnknownStep
	}

	draft, err := s.loadOrStart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if n > draft.FurthestStep {
		return nil, ErrStepLocked
	}

	if _, ok := patch.sectionFor(n); !ok {
		return nil, ErrPatchMismatch
	}

	patch.apply(draft, n)

	if fields := validateStep(draft, n); fields != nil {
		return nil, &ValidationError{Step: n, Fields: fields}
	}

	if next := n + 1; next > draft.FurthestStep {
		draft.FurthestStep = next
	}
	if draft.FurthestStep > LastStep {
		draft.FurthestStep = LastStep
	}
	draft.UpdatedAt = s.now()

	if err := s.drafts.Save(ctx, userID, draft); err != nil {
		return nil, err
	}

	return &State{
		Draft:        draft,
		Steps:        Steps,
		FurthestStep: draft.FurthestStep,
		TotalSteps:   LastStep,
	}, nil
}

// Publish turns the draft into a live space and clears the draft.
// Every required step must validate.
func (s *Service) Publish(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			return uuid.Nil, ErrStepsIncomplete
		}
		return uuid.Nil, err
	}

	for _, step := range Steps {
		if fields := validateStep(draft, step.Number); fields != nil {
			return uuid.Nil, ErrStepsIncomplete
		}
	}

	spaceID, err := s.creator.CreateFromDraft(ctx, userID, draft)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.drafts.Delete(ctx, userID); err != nil {
		// The listing exists; a stale draft is the lesser failure.
		log.Error().Err(err).Str("user_id", userID.String()).Msg("draft cleanup failed after publish")
	}

	log.Info().
		Str("space_id", spaceID.String()).
		Str("host_id", userID.String()).
		Msg("listing published from wizard")

	return spaceID, nil
}

// Reset discards the caller's draft.
func (s *Service) Reset(ctx context.Context, userID uuid.UUID) error {
	return s.drafts.Delete(ctx, userID)
}
