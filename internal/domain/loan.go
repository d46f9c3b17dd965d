package domain

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusVerified Status = "VERIFIED"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusVerified, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// LoanApplication 贷款申请。OwnerID 创建后不变；status 只经状态机变更。
// ApproverID 目前没有任何流转会写入，字段保留（历史 schema）。
type LoanApplication struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	Amount     float64 `gorm:"not null" json:"amount"`
	Purpose    string  `gorm:"size:255" json:"purpose,omitempty"`
	OwnerID    string  `gorm:"size:36;index;not null" json:"ownerId"`
	Owner      *User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	VerifierID *string `gorm:"size:36;index" json:"verifierId"`
	Verifier   *User   `gorm:"foreignKey:VerifierID" json:"verifier,omitempty"`
	ApproverID *string `gorm:"size:36" json:"approverId"`
	Approver   *User   `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`

	Status    Status    `gorm:"size:16;not null;default:PENDING" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LoanApplication) TableName() string { return "loan_applications" }

// StatusUpdate 一次状态变更；VerifierID 非 nil 时一并盖章
type StatusUpdate struct {
	Status     Status
	VerifierID *string
}

type LoanRepository interface {
	Create(ctx context.Context, l *LoanApplication) error
	FindByID(ctx context.Context, id string) (*LoanApplication, error)
	UpdateStatus(ctx context.Context, id string, up StatusUpdate) (*LoanApplication, error)

	// 按角色作用域查询（谓词进 SQL，不做事后过滤）
	ListAll(ctx context.Context) ([]LoanApplication, error)
	ListForVerifier(ctx context.Context, verifierID string) ([]LoanApplication, error)
	ListForOwner(ctx context.Context, ownerID string) ([]LoanApplication, error)
}
