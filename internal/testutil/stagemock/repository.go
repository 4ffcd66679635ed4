package stagemock

import (
	"context"

	domain "vivim-backend/internal/domain/stage"
)

var _ domain.ProjectRepository = (*ProjectRepo)(nil)

type ProjectRepo struct {
	CreateFn                  func(ctx context.Context, p *domain.Project) error
	GetByProjectIDFn          func(ctx context.Context, projectID string) (*domain.Project, error)
	GetByProjectIDForUpdateFn func(ctx context.Context, projectID string) (*domain.Project, error)
	GetByIDFn                 func(ctx context.Context, id uint64) (*domain.Project, error)
	SaveFn                    func(ctx context.Context, p *domain.Project) error
}

func (m *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *ProjectRepo) GetByProjectID(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetByProjectIDFn != nil {
		return m.GetByProjectIDFn(ctx, projectID)
	}
	return nil, context.Canceled
}
func (m *ProjectRepo) GetByProjectIDForUpdate(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetByProjectIDForUpdateFn != nil {
		return m.GetByProjectIDForUpdateFn(ctx, projectID)
	}
	return nil, context.Canceled
}
func (m *ProjectRepo) GetByID(ctx context.Context, id uint64) (*domain.Project, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *ProjectRepo) Save(ctx context.Context, p *domain.Project) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

var _ domain.Repository = (*StageRepo)(nil)

type StageRepo struct {
	CreateFn          func(ctx context.Context, s *domain.Stage) error
	GetByStageIDFn    func(ctx context.Context, stageID string) (*domain.Stage, error)
	GetByIDFn         func(ctx context.Context, id uint64) (*domain.Stage, error)
	ListByProjectIDFn func(ctx context.Context, projectID uint64) ([]domain.Stage, error)
	SaveFn            func(ctx context.Context, s *domain.Stage) error
	SoftDeleteFn      func(ctx context.Context, s *domain.Stage, deletedBy string) error
}

func (m *StageRepo) Create(ctx context.Context, s *domain.Stage) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}
func (m *StageRepo) GetByStageID(ctx context.Context, stageID string) (*domain.Stage, error) {
	if m.GetByStageIDFn != nil {
		return m.GetByStageIDFn(ctx, stageID)
	}
	return nil, context.Canceled
}
func (m *StageRepo) GetByID(ctx context.Context, id uint64) (*domain.Stage, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *StageRepo) ListByProjectID(ctx context.Context, projectID uint64) ([]domain.Stage, error) {
	if m.ListByProjectIDFn != nil {
		return m.ListByProjectIDFn(ctx, projectID)
	}
	return nil, nil
}
func (m *StageRepo) Save(ctx context.Context, s *domain.Stage) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
func (m *StageRepo) SoftDelete(ctx context.Context, s *domain.Stage, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, s, deletedBy)
	}
	return nil
}
