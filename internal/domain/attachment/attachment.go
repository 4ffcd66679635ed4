package attachment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("attachment not found")
	ErrBadKind  = errors.New("attachment kind must be file or link")
)

type OwnerType string

const (
	OwnerProposal OwnerType = "proposal"
	OwnerDecision OwnerType = "decision"
)

type Kind string

const (
	KindFile Kind = "file"
	KindLink Kind = "link"
)

// Ref is an opaque pointer into the external attachment store. The engine
// never inspects content; it only forwards create/delete keyed by owner.
type Ref struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	AttachmentID string         `gorm:"column:attachment_id;type:char(32);not null;uniqueIndex:ux_attachments_attachment_id"`
	OwnerType    OwnerType      `gorm:"column:owner_type;type:enum('proposal','decision');not null;index:idx_attachments_owner"`
	OwnerID      uint64         `gorm:"column:owner_id;not null;index:idx_attachments_owner"`
	Kind         Kind           `gorm:"column:kind;type:enum('file','link');not null"`
	Name         string         `gorm:"column:name;size:255"`
	URI          string         `gorm:"column:uri;type:text;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
	DeletedBy    *string        `gorm:"column:deleted_by;type:char(32)"`
}

func (Ref) TableName() string { return "attachments" }

type Repository interface {
	Create(ctx context.Context, r *Ref) error
	GetByAttachmentID(ctx context.Context, attachmentID string) (*Ref, error)
	ListByOwner(ctx context.Context, ownerType OwnerType, ownerID uint64) ([]Ref, error)
	CountByOwner(ctx context.Context, ownerType OwnerType, ownerID uint64) (int64, error)
	SoftDelete(ctx context.Context, r *Ref, deletedBy string) error
}
