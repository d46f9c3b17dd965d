package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"loan-management/internal/domain"
)

type LoanRepo struct{ db *gorm.DB }

var _ domain.LoanRepository = (*LoanRepo)(nil)

func NewLoanRepo(db *gorm.DB) *LoanRepo { return &LoanRepo{db: db} }

func (r *LoanRepo) Create(ctx context.Context, l *domain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepo) FindByID(ctx context.Context, id string) (*domain.LoanApplication, error) {
	var l domain.LoanApplication
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

// UpdateStatus 单条 UPDATE，末写胜出；verifier_id 只在盖章时写，否则不动
func (r *LoanRepo) UpdateStatus(ctx context.Context, id string, up domain.StatusUpdate) (*domain.LoanApplication, error) {
	cur, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, domain.ErrNotFound
	}

	values := map[string]any{"status": up.Status}
	if up.VerifierID != nil {
		values["verifier_id"] = *up.VerifierID
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.LoanApplication{}).
		Where("id = ?", id).
		Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// ADMIN 视图：全量 + 申请人/核验人/审批人摘要
func (r *LoanRepo) ListAll(ctx context.Context) ([]domain.LoanApplication, error) {
	var loans []domain.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Verifier").
		Preload("Approver").
		Find(&loans).Error
	return loans, err
}

// VERIFIER 视图：自己经手的 + 待处理的
func (r *LoanRepo) ListForVerifier(ctx context.Context, verifierID string) ([]domain.LoanApplication, error) {
	var loans []domain.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("verifier_id = ? OR status = ?", verifierID, domain.StatusPending).
		Find(&loans).Error
	return loans, err
}

// USER 视图：只看自己的
func (r *LoanRepo) ListForOwner(ctx context.Context, ownerID string) ([]domain.LoanApplication, error) {
	var loans []domain.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("Verifier").
		Preload("Approver").
		Where("owner_id = ?", ownerID).
		Find(&loans).Error
	return loans, err
}
