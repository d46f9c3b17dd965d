package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"loan-management/internal/core/auth"
	"loan-management/internal/domain"
	"loan-management/internal/repo"
	"loan-management/internal/service"
	"loan-management/pkg/utils"

	"go.uber.org/zap"
)

// newTestDB 每个测试一个独立的内存库；单连接，避免 :memory: 连接间不共享
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.LoanApplication{}))
	return db
}

func newTestJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "loan-management", TTL: time.Hour}
}

func seedUser(t *testing.T, db *gorm.DB, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         "test user",
		PasswordHash: utils.HashPassword("pass123"),
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func identityOf(u *domain.User) domain.Identity {
	return domain.Identity{SubjectID: u.ID, Role: u.Role}
}

func newLoanService(t *testing.T, db *gorm.DB) *service.LoanService {
	t.Helper()
	return service.NewLoanService(repo.NewLoanRepo(db), zap.NewNop())
}
