package services

import (
	"fmt"
	"testing"

	"society-connect-http-service/config"
	"society-connect-http-service/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 为每个测试创建独立的内存数据库并迁移全部模型
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.Announcement{},
		&models.Meeting{},
		&models.MeetingRSVP{},
		&models.Notification{},
		&models.MaintenancePayment{},
		&models.StaffAssignment{},
		&models.SocietyFund{},
	)
	require.NoError(t, err)

	return db
}

// testConfig 返回测试用配置
func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:             "test-secret-key",
		DefaultMaintenanceAmount: 2500,
	}
}

// createTestUser 插入一个指定角色的用户并返回
func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	wing := "A"
	flat := "101"
	user := &models.User{
		Username:   username,
		Password:   "password123",
		FullName:   "Test " + username,
		Email:      username + "@example.com",
		Role:       role,
		Wing:       &wing,
		FlatNumber: &flat,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// principalFor 构造用户对应的认证主体
func principalFor(user *models.User) Principal {
	return Principal{UserID: user.ID, Role: user.Role}
}
