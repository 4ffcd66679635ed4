package mysql

import (
	"context"

	stageDomain "vivim-backend/internal/domain/stage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) Create(ctx context.Context, p *stageDomain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) Save(ctx context.Context, p *stageDomain.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectRepository) GetByProjectID(ctx context.Context, projectID string) (*stageDomain.Project, error) {
	var out stageDomain.Project
	res := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByProjectIDForUpdate(ctx context.Context, projectID string) (*stageDomain.Project, error) {
	var out stageDomain.Project
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).
		First(&out)
	return &out, res.Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint64) (*stageDomain.Project, error) {
	var out stageDomain.Project
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

type StageRepository struct{ db *gorm.DB }

func NewStageRepository(db *gorm.DB) *StageRepository { return &StageRepository{db: db} }

func (r *StageRepository) Create(ctx context.Context, s *stageDomain.Stage) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StageRepository) Save(ctx context.Context, s *stageDomain.Stage) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StageRepository) GetByStageID(ctx context.Context, stageID string) (*stageDomain.Stage, error) {
	var out stageDomain.Stage
	res := r.db.WithContext(ctx).Where("stage_id = ?", stageID).First(&out)
	return &out, res.Error
}

func (r *StageRepository) GetByID(ctx context.Context, id uint64) (*stageDomain.Stage, error) {
	var out stageDomain.Stage
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *StageRepository) ListByProjectID(ctx context.Context, projectID uint64) ([]stageDomain.Stage, error) {
	var out []stageDomain.Stage
	res := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *StageRepository) SoftDelete(ctx context.Context, s *stageDomain.Stage, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(s).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(s).Error
}
