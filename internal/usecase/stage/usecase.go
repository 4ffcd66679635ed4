package stage

import (
	"context"
	"errors"
	"time"

	"vivim-backend/internal/domain/actor"
	"vivim-backend/internal/domain/event"
	domainProposal "vivim-backend/internal/domain/proposal"
	domainStage "vivim-backend/internal/domain/stage"
	"vivim-backend/internal/domain/uow"
	"vivim-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the stage gate: it owns the ordered stage list, the project's
// current-stage pointer, and the promotion rules that read proposal outcomes.
// It never writes a proposal.
type Usecase struct {
	repos  uow.Repos
	uow    uow.UnitOfWork
	events event.Publisher
}

func NewUsecase(r uow.Repos, tx uow.UnitOfWork, pub event.Publisher) *Usecase {
	return &Usecase{repos: r, uow: tx, events: pub}
}

func (u *Usecase) CreateProject(ctx context.Context, act actor.Actor, in CreateProjectInput) (*ProjectDTO, error) {
	if !act.IsAdmin() {
		return nil, actor.ErrForbidden
	}
	p := &domainStage.Project{
		ProjectID:            id.NewID32(),
		Name:                 in.Name,
		CurrentStagePosition: 1,
	}
	if err := u.repos.Projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return &ProjectDTO{ProjectID: p.ProjectID, Name: p.Name, CurrentStagePosition: p.CurrentStagePosition}, nil
}

// CreateStage appends a stage at position N+1.
func (u *Usecase) CreateStage(ctx context.Context, act actor.Actor, projectID string, in CreateStageInput) (*StageDTO, error) {
	if !act.IsAdmin() {
		return nil, actor.ErrForbidden
	}
	var dto *StageDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		proj, err := lockProject(ctx, r, projectID)
		if err != nil {
			return err
		}
		stages, err := r.Stages.ListByProjectID(ctx, proj.ID)
		if err != nil {
			return err
		}
		s := &domainStage.Stage{
			StageID:   id.NewID32(),
			ProjectID: proj.ID,
			Name:      in.Name,
			Position:  len(stages) + 1,
		}
		if err := r.Stages.Create(ctx, s); err != nil {
			return err
		}
		dto = &StageDTO{StageID: s.StageID, Name: s.Name, Position: s.Position}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CurrentStage resolves the stage the project pointer marks as actively worked.
func (u *Usecase) CurrentStage(ctx context.Context, projectID string) (*StageDTO, error) {
	proj, err := u.repos.Projects.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainStage.ErrProjectNotFound
		}
		return nil, err
	}
	stages, err := u.repos.Stages.ListByProjectID(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	for i := range stages {
		if stages[i].Position == proj.CurrentStagePosition {
			return &StageDTO{StageID: stages[i].StageID, Name: stages[i].Name, Position: stages[i].Position}, nil
		}
	}
	return nil, domainStage.ErrNotFound
}

// CompletionRate is approved/total over non-deleted proposals; 0 with
// Total == 0 when the stage is empty.
func (u *Usecase) CompletionRate(ctx context.Context, stageID string) (*StageProgressDTO, error) {
	s, err := u.repos.Stages.GetByStageID(ctx, stageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainStage.ErrNotFound
		}
		return nil, err
	}
	proj, err := u.repos.Projects.GetByID(ctx, s.ProjectID)
	if err != nil {
		return nil, err
	}
	total, approved, err := stageCounts(ctx, u.repos, s.ID)
	if err != nil {
		return nil, err
	}
	return &StageProgressDTO{
		StageID:   s.StageID,
		Name:      s.Name,
		Position:  s.Position,
		Total:     total,
		Approved:  approved,
		Rate:      rate(approved, total),
		IsCurrent: s.Position == proj.CurrentStagePosition,
	}, nil
}

// Promote advances the current-stage pointer by exactly one. Every
// non-deleted proposal in the current stage must be final-approved first.
func (u *Usecase) Promote(ctx context.Context, act actor.Actor, projectID string) (*ProjectDTO, error) {
	if !act.IsAdmin() {
		return nil, actor.ErrForbidden
	}
	var (
		dto *ProjectDTO
		evs []event.Event
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		proj, err := lockProject(ctx, r, projectID)
		if err != nil {
			return err
		}
		stages, err := r.Stages.ListByProjectID(ctx, proj.ID)
		if err != nil {
			return err
		}
		if proj.CurrentStagePosition >= len(stages) {
			return domainStage.ErrNotCurrentStage
		}
		var current, next *domainStage.Stage
		for i := range stages {
			switch stages[i].Position {
			case proj.CurrentStagePosition:
				current = &stages[i]
			case proj.CurrentStagePosition + 1:
				next = &stages[i]
			}
		}
		if current == nil || next == nil {
			return domainStage.ErrNotCurrentStage
		}
		proposals, err := r.Proposals.ListByStageID(ctx, current.ID)
		if err != nil {
			return err
		}
		for i := range proposals {
			if proposals[i].Status != domainProposal.StatusFinalApproved {
				return domainStage.ErrIncompleteStage
			}
		}
		proj.CurrentStagePosition++
		if err := r.Projects.Save(ctx, proj); err != nil {
			return err
		}
		dto = &ProjectDTO{ProjectID: proj.ProjectID, Name: proj.Name, CurrentStagePosition: proj.CurrentStagePosition}
		evs = append(evs, event.Event{
			Type:       event.TypeStagePromoted,
			EntityType: "stage",
			EntityID:   next.StageID,
			ProjectID:  proj.ProjectID,
			ActorID:    act.ID,
			Timestamp:  time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, e := range evs {
		u.events.Publish(ctx, e)
	}
	return dto, nil
}

// Reorder moves one stage to targetPosition with a stable array move and
// renumbers everything 1..N. Stages before the current pointer are frozen,
// and nothing may be moved in front of it.
func (u *Usecase) Reorder(ctx context.Context, act actor.Actor, projectID, stageID string, targetPosition int) ([]StageDTO, error) {
	if !act.IsAdmin() {
		return nil, actor.ErrForbidden
	}
	var out []StageDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		proj, err := lockProject(ctx, r, projectID)
		if err != nil {
			return err
		}
		stages, err := r.Stages.ListByProjectID(ctx, proj.ID)
		if err != nil {
			return err
		}
		moving := -1
		for i := range stages {
			if stages[i].StageID == stageID {
				moving = i
				break
			}
		}
		if moving == -1 {
			return domainStage.ErrNotFound
		}
		if targetPosition < 1 || targetPosition > len(stages) {
			return domainStage.ErrBadPosition
		}
		if stages[moving].Position < proj.CurrentStagePosition || targetPosition < proj.CurrentStagePosition {
			return domainStage.ErrFrozenPosition
		}
		// stable move: pull the stage out, insert at target index
		reordered := make([]domainStage.Stage, 0, len(stages))
		reordered = append(reordered, stages[:moving]...)
		reordered = append(reordered, stages[moving+1:]...)
		idx := targetPosition - 1
		reordered = append(reordered[:idx], append([]domainStage.Stage{stages[moving]}, reordered[idx:]...)...)
		out = make([]StageDTO, 0, len(reordered))
		for i := range reordered {
			if reordered[i].Position != i+1 {
				reordered[i].Position = i + 1
				if err := r.Stages.Save(ctx, &reordered[i]); err != nil {
					return err
				}
			}
			out = append(out, StageDTO{StageID: reordered[i].StageID, Name: reordered[i].Name, Position: reordered[i].Position})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteStage removes an empty stage and closes the position gap. The
// current-stage pointer shifts down when a stage before it disappears.
func (u *Usecase) DeleteStage(ctx context.Context, act actor.Actor, stageID string) error {
	if !act.IsAdmin() {
		return actor.ErrForbidden
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Stages.GetByStageID(ctx, stageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainStage.ErrNotFound
			}
			return err
		}
		owner, err := r.Projects.GetByID(ctx, s.ProjectID)
		if err != nil {
			return err
		}
		proj, err := lockProject(ctx, r, owner.ProjectID)
		if err != nil {
			return err
		}
		n, err := r.Proposals.CountByStageID(ctx, s.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domainStage.ErrNonEmptyStage
		}
		if err := r.Stages.SoftDelete(ctx, s, act.ID); err != nil {
			return err
		}
		remaining, err := r.Stages.ListByProjectID(ctx, proj.ID)
		if err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].Position != i+1 {
				remaining[i].Position = i + 1
				if err := r.Stages.Save(ctx, &remaining[i]); err != nil {
					return err
				}
			}
		}
		if s.Position < proj.CurrentStagePosition {
			proj.CurrentStagePosition--
			return r.Projects.Save(ctx, proj)
		}
		return nil
	})
}

// ProjectProgress is the read projection behind the project dashboard.
func (u *Usecase) ProjectProgress(ctx context.Context, projectID string) (*ProjectProgressDTO, error) {
	proj, err := u.repos.Projects.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainStage.ErrProjectNotFound
		}
		return nil, err
	}
	stages, err := u.repos.Stages.ListByProjectID(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	out := &ProjectProgressDTO{
		ProjectID:            proj.ProjectID,
		CurrentStagePosition: proj.CurrentStagePosition,
		Stages:               make([]StageProgressDTO, 0, len(stages)),
	}
	grandTotal, grandApproved := 0, 0
	for i := range stages {
		s := &stages[i]
		total, approved, err := stageCounts(ctx, u.repos, s.ID)
		if err != nil {
			return nil, err
		}
		grandTotal += total
		grandApproved += approved
		out.Stages = append(out.Stages, StageProgressDTO{
			StageID:   s.StageID,
			Name:      s.Name,
			Position:  s.Position,
			Total:     total,
			Approved:  approved,
			Rate:      rate(approved, total),
			IsCurrent: s.Position == proj.CurrentStagePosition,
		})
	}
	out.OverallRate = rate(grandApproved, grandTotal)
	return out, nil
}

func lockProject(ctx context.Context, r uow.Repos, projectID string) (*domainStage.Project, error) {
	proj, err := r.Projects.GetByProjectIDForUpdate(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainStage.ErrProjectNotFound
		}
		return nil, err
	}
	return proj, nil
}

func stageCounts(ctx context.Context, r uow.Repos, stageNumID uint64) (total, approved int, err error) {
	proposals, err := r.Proposals.ListByStageID(ctx, stageNumID)
	if err != nil {
		return 0, 0, err
	}
	for i := range proposals {
		total++
		if proposals[i].Status == domainProposal.StatusFinalApproved {
			approved++
		}
	}
	return total, approved, nil
}

func rate(approved, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(approved) / float64(total)
}
