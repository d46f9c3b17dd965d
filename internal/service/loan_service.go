package service

import (
	"context"

	"go.uber.org/zap"

	"loan-management/internal/domain"
	"loan-management/pkg/utils"
)

// LoanService 贷款申请流转：鉴权 → 授权 → 状态机校验 → 落库。
// 任何前置校验失败都在写库之前短路。
type LoanService struct {
	loans domain.LoanRepository
	log   *zap.Logger
}

func NewLoanService(loans domain.LoanRepository, log *zap.Logger) *LoanService {
	return &LoanService{loans: loans, log: log}
}

func (s *LoanService) Create(ctx context.Context, id domain.Identity, amount float64, purpose string) (*domain.LoanApplication, error) {
	if err := domain.Authorize(id, domain.ActionCreateLoan); err != nil {
		return nil, err
	}
	l := &domain.LoanApplication{
		ID:      utils.NewID(),
		Amount:  amount,
		Purpose: purpose,
		OwnerID: id.SubjectID,
		Status:  domain.StatusPending,
	}
	if err := s.loans.Create(ctx, l); err != nil {
		s.log.Error("create loan", zap.Error(err))
		return nil, err
	}
	return l, nil
}

// List 按调用者角色收窄结果集（谓词下推到仓储查询）
func (s *LoanService) List(ctx context.Context, id domain.Identity) ([]domain.LoanApplication, error) {
	if err := domain.Authorize(id, domain.ActionListLoans); err != nil {
		return nil, err
	}
	switch id.Role {
	case domain.RoleAdmin:
		return s.loans.ListAll(ctx)
	case domain.RoleVerifier:
		return s.loans.ListForVerifier(ctx, id.SubjectID)
	default:
		return s.loans.ListForOwner(ctx, id.SubjectID)
	}
}

// Verify 核验通过：VERIFIER 专属，status → VERIFIED 并盖 verifierId
func (s *LoanService) Verify(ctx context.Context, id domain.Identity, loanID string) (*domain.LoanApplication, error) {
	if err := domain.Authorize(id, domain.ActionVerifyLoan); err != nil {
		return nil, err
	}
	return s.loans.UpdateStatus(ctx, loanID, domain.StatusUpdate{
		Status:     domain.StatusVerified,
		VerifierID: &id.SubjectID,
	})
}

// Reject 核验驳回：VERIFIER 专属，status → REJECTED 并盖 verifierId
func (s *LoanService) Reject(ctx context.Context, id domain.Identity, loanID string) (*domain.LoanApplication, error) {
	if err := domain.Authorize(id, domain.ActionRejectLoan); err != nil {
		return nil, err
	}
	return s.loans.UpdateStatus(ctx, loanID, domain.StatusUpdate{
		Status:     domain.StatusRejected,
		VerifierID: &id.SubjectID,
	})
}

// UpdateStatus 通用状态变更。校验顺序：状态值 → 角色 → 状态机；
// VERIFIER 操作才盖 verifierId，ADMIN 不清不改。
func (s *LoanService) UpdateStatus(ctx context.Context, id domain.Identity, loanID, status string) (*domain.LoanApplication, error) {
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(id, domain.ActionUpdateStatus); err != nil {
		return nil, err
	}
	if err := domain.CheckTransition(id.Role, target); err != nil {
		return nil, err
	}

	up := domain.StatusUpdate{Status: target}
	if id.Role == domain.RoleVerifier {
		up.VerifierID = &id.SubjectID
	}
	return s.loans.UpdateStatus(ctx, loanID, up)
}
