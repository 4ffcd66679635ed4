package stage

import "context"

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByProjectID(ctx context.Context, projectID string) (*Project, error)
	// FOR UPDATE variant; promotion and reorder serialize on the project row.
	GetByProjectIDForUpdate(ctx context.Context, projectID string) (*Project, error)
	GetByID(ctx context.Context, id uint64) (*Project, error)
	Save(ctx context.Context, p *Project) error
}

type Repository interface {
	Create(ctx context.Context, s *Stage) error
	GetByStageID(ctx context.Context, stageID string) (*Stage, error)
	GetByID(ctx context.Context, id uint64) (*Stage, error)
	// Non-deleted stages of a project ordered by position.
	ListByProjectID(ctx context.Context, projectID uint64) ([]Stage, error)
	Save(ctx context.Context, s *Stage) error
	SoftDelete(ctx context.Context, s *Stage, deletedBy string) error
}
