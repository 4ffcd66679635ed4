package mysql

import (
	"testing"
	"time"

	attachmentDomain "vivim-backend/internal/domain/attachment"
	proposalDomain "vivim-backend/internal/domain/proposal"
	stageDomain "vivim-backend/internal/domain/stage"
	"vivim-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type projectSQLite struct {
	ID                   uint64         `gorm:"primaryKey;column:id"`
	ProjectID            string         `gorm:"size:32;column:project_id"`
	Name                 string         `gorm:"column:name"`
	CurrentStagePosition int            `gorm:"column:current_stage_position"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (projectSQLite) TableName() string { return "projects" }

type stageSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	StageID   string         `gorm:"size:32;column:stage_id"`
	ProjectID uint64         `gorm:"column:project_id"`
	Name      string         `gorm:"column:name"`
	Position  int            `gorm:"column:position"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy *string        `gorm:"column:deleted_by"`
}

func (stageSQLite) TableName() string { return "stages" }

type proposalSQLite struct {
	ID         uint64         `gorm:"primaryKey;column:id"`
	ProposalID string         `gorm:"size:32;column:proposal_id"`
	StageID    uint64         `gorm:"column:stage_id"`
	Title      string         `gorm:"column:title"`
	Content    string         `gorm:"column:content"`
	Status     string         `gorm:"type:text;column:status"` // ← no enum
	CreatorID  string         `gorm:"size:32;column:creator_id"`
	LastSentAt       *time.Time     `gorm:"column:last_sent_at"`
	ContentUpdatedAt *time.Time     `gorm:"column:content_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy        *string        `gorm:"column:deleted_by"`
}

func (proposalSQLite) TableName() string { return "proposals" }

type approverSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	ApproverID  string    `gorm:"size:32;column:approver_id"`
	ProposalID  uint64    `gorm:"column:proposal_id"`
	UserID      string    `gorm:"size:32;column:user_id"`
	DisplayName string    `gorm:"column:display_name"`
	CompanyName string    `gorm:"column:company_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (approverSQLite) TableName() string { return "approvers" }

type decisionSQLite struct {
	ID         uint64         `gorm:"primaryKey;column:id"`
	DecisionID string         `gorm:"size:32;column:decision_id"`
	ApproverID uint64         `gorm:"column:approver_id"`
	Content    string         `gorm:"column:content"`
	Status     string         `gorm:"type:text;column:status"` // ← no enum
	DecidedAt  time.Time      `gorm:"column:decided_at"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy  *string        `gorm:"column:deleted_by"`
}

func (decisionSQLite) TableName() string { return "decisions" }

type attachmentSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	AttachmentID string         `gorm:"size:32;column:attachment_id"`
	OwnerType    string         `gorm:"type:text;column:owner_type"` // ← no enum
	OwnerID      uint64         `gorm:"column:owner_id"`
	Kind         string         `gorm:"type:text;column:kind"` // ← no enum
	Name         string         `gorm:"column:name"`
	URI          string         `gorm:"column:uri"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy    *string        `gorm:"column:deleted_by"`
}

func (attachmentSQLite) TableName() string { return "attachments" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, NOT the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&projectSQLite{}, &stageSQLite{}, &proposalSQLite{},
		&approverSQLite{}, &decisionSQLite{}, &attachmentSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeProposal(stageNumID uint64, creatorID string) *proposalDomain.Proposal {
	return &proposalDomain.Proposal{
		ProposalID: id.NewID32(),
		StageID:    stageNumID,
		Title:      "wireframes",
		Content:    "first pass",
		Status:     proposalDomain.StatusDraft,
		CreatorID:  creatorID,
	}
}

func makeApprover(proposalNumID uint64, userID string) *proposalDomain.Approver {
	return &proposalDomain.Approver{
		ApproverID:  id.NewID32(),
		ProposalID:  proposalNumID,
		UserID:      userID,
		DisplayName: "Reviewer",
		CompanyName: "ACME",
	}
}

func makeStage(projectNumID uint64, name string, pos int) *stageDomain.Stage {
	return &stageDomain.Stage{
		StageID:   id.NewID32(),
		ProjectID: projectNumID,
		Name:      name,
		Position:  pos,
	}
}

func makeRef(owner attachmentDomain.OwnerType, ownerID uint64, name string) *attachmentDomain.Ref {
	return &attachmentDomain.Ref{
		AttachmentID: id.NewID32(),
		OwnerType:    owner,
		OwnerID:      ownerID,
		Kind:         attachmentDomain.KindFile,
		Name:         name,
		URI:          "s3://bucket/" + name,
	}
}
