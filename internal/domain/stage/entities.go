package stage

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("stage not found")
	ErrProjectNotFound = errors.New("project not found")
	// Precondition errors on the stage gate.
	ErrNotCurrentStage = errors.New("no next stage to promote into")
	ErrIncompleteStage = errors.New("current stage has proposals that are not final-approved")
	ErrFrozenPosition  = errors.New("stages before the current position are frozen")
	ErrNonEmptyStage   = errors.New("stage still owns proposals")
	ErrBadPosition     = errors.New("target position out of range")
)

// Project carries the single current-stage pointer. Promotion only ever
// advances it; the only way it moves down is renumbering after a stage
// before it is deleted, which keeps it on the same stage.
type Project struct {
	ID                   uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID            string         `gorm:"column:project_id;type:char(32);not null;uniqueIndex:ux_projects_project_id"`
	Name                 string         `gorm:"column:name;size:255;not null"`
	CurrentStagePosition int            `gorm:"column:current_stage_position;not null;default:1"`
	CreatedAt            time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt            gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Project) TableName() string { return "projects" }

// Stage positions are 1-based and form a dense permutation 1..N within a
// project after every reorder or deletion.
type Stage struct {
	ID      uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	StageID string `gorm:"column:stage_id;type:char(32);not null;uniqueIndex:ux_stages_stage_id"`
	// FK to projects.id (numeric)
	ProjectID uint64         `gorm:"column:project_id;not null;index:idx_stages_project"`
	Name      string         `gorm:"column:name;size:100;not null"`
	Position  int            `gorm:"column:position;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
	DeletedBy *string        `gorm:"column:deleted_by;type:char(32)"`
}

func (Stage) TableName() string { return "stages" }
