package domain

type Action string

const (
	ActionCreateLoan      Action = "loan:create"
	ActionListLoans       Action = "loan:list"
	ActionVerifyLoan      Action = "loan:verify"
	ActionRejectLoan      Action = "loan:reject"
	ActionUpdateStatus    Action = "loan:update-status"
	ActionListUsersByRole Action = "user:list-by-role"
	ActionChangeUserRole  Action = "user:change-role"
	ActionDeleteUser      Action = "user:delete"
)

// 权限矩阵集中在一张表里，nil 表示任意已登录角色即可
var policy = map[Action][]Role{
	ActionCreateLoan:      nil,
	ActionListLoans:       nil,
	ActionListUsersByRole: nil,
	ActionVerifyLoan:      {RoleVerifier},
	ActionRejectLoan:      {RoleVerifier},
	ActionUpdateStatus:    {RoleVerifier, RoleAdmin},
	ActionChangeUserRole:  {RoleAdmin},
	ActionDeleteUser:      {RoleAdmin},
}

// Authorize 纯判定：允许返回 nil，拒绝返回 ErrForbidden
func Authorize(id Identity, action Action) error {
	if id.SubjectID == "" {
		return ErrUnauthenticated
	}
	roles, ok := policy[action]
	if !ok {
		return ErrForbidden
	}
	if roles == nil {
		return nil
	}
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// CheckTransition 通用状态变更规则（verify/reject 是它的收窄版）：
//   - 目标必须是四个枚举值之一
//   - VERIFIER 不允许置为 APPROVED
//   - 其余角色必须是 VERIFIER 或 ADMIN
//
// 允许重入任意状态（幂等纠错），不校验当前状态。
func CheckTransition(actor Role, target Status) error {
	if _, err := ParseStatus(string(target)); err != nil {
		return err
	}
	if actor == RoleVerifier && target == StatusApproved {
		return ErrForbidden
	}
	if actor != RoleVerifier && actor != RoleAdmin {
		return ErrForbidden
	}
	return nil
}
