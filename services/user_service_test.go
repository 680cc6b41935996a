package services

import (
	"testing"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterForcesResidentRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	user := &models.User{
		Username: "ramesh",
		Password: "secret123",
		FullName: "Ramesh Kumar",
		Role:     models.RoleAdmin, // 试图自封管理员
	}
	require.NoError(t, svc.Register(user))
	assert.Equal(t, models.RoleResident, user.Role)

	// 密码在钩子中被哈希
	assert.NotEqual(t, "secret123", user.Password)

	// 用户名唯一
	err := svc.Register(&models.User{Username: "ramesh", Password: "x", FullName: "x"})
	assert.EqualError(t, err, "用户名已被使用")
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())

	require.NoError(t, svc.Register(&models.User{
		Username: "ramesh",
		Password: "secret123",
		FullName: "Ramesh Kumar",
	}))

	user, err := svc.Authenticate("ramesh", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ramesh", user.Username)

	// 错误密码和不存在的用户名返回同样的错误
	_, err = svc.Authenticate("ramesh", "wrong")
	assert.EqualError(t, err, "用户名或密码错误")
	_, err = svc.Authenticate("nobody", "secret123")
	assert.EqualError(t, err, "用户名或密码错误")
}

func TestUpdateProfileAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	// 本人可以改
	updated, err := svc.UpdateProfile(principalFor(resident1), resident1.ID, map[string]interface{}{
		"phone": "9800000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "9800000000", updated.Phone)

	// 他人不能改
	_, err = svc.UpdateProfile(principalFor(resident2), resident1.ID, map[string]interface{}{
		"phone": "1",
	})
	assert.EqualError(t, err, "没有权限修改该档案")

	// 管理员可以改
	_, err = svc.UpdateProfile(principalFor(admin), resident1.ID, map[string]interface{}{
		"full_name": "New Name",
	})
	require.NoError(t, err)

	// 角色和密码不通过本接口修改
	updated, err = svc.UpdateProfile(principalFor(resident1), resident1.ID, map[string]interface{}{
		"role":     models.RoleAdmin,
		"password": "hijack",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleResident, updated.Role)
}

func TestCreateStaffAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())
	resident := createTestUser(t, db, "resident1", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	// 非管理员不能创建
	err := svc.CreateStaffAccount(principalFor(resident), &models.User{
		Username: "staff1", Password: "x", FullName: "x",
	})
	assert.EqualError(t, err, "没有权限创建员工账户")

	staff := &models.User{
		Username: "staff1",
		Password: "staff123",
		FullName: "Suresh Yadav",
		Role:     models.RoleResident, // 会被强制为维修人员
	}
	require.NoError(t, svc.CreateStaffAccount(principalFor(admin), staff))
	assert.Equal(t, models.RoleMaintenanceStaff, staff.Role)

	list, err := svc.GetMaintenanceStaff()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "staff1", list[0].Username)
}

func TestGetDirectoryResidentsOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db, testConfig())
	createTestUser(t, db, "resident1", models.RoleResident)
	createTestUser(t, db, "resident2", models.RoleResident)
	createTestUser(t, db, "admin1", models.RoleAdmin)
	createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)

	directory, err := svc.GetDirectory()
	require.NoError(t, err)
	assert.Len(t, directory, 2)
	for _, entry := range directory {
		assert.Equal(t, models.RoleResident, entry.Role)
	}
}
