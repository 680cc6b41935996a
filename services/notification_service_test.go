package services

import (
	"testing"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, testConfig(), nil, nil)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	err := svc.Notify(resident.ID, "停水通知", "明日上午停水检修", models.NotificationWarning)
	require.NoError(t, err)

	notifications, err := svc.GetNotifications(principalFor(resident), 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationWarning, notifications[0].Type)
	assert.False(t, notifications[0].IsRead)

	// 标题内容必填
	err = svc.Notify(resident.ID, "", "x", models.NotificationInfo)
	assert.EqualError(t, err, "通知标题和内容不能为空")

	// 未知类型退化为info
	err = svc.Notify(resident.ID, "t", "m", "bogus")
	require.NoError(t, err)
	notifications, err = svc.GetNotifications(principalFor(resident), 10)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationInfo, notifications[0].Type)
}

func TestFanOutToResidents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, testConfig(), nil, nil)
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	delivered, err := svc.FanOutToResidents("新公告", "电梯年检通知", models.NotificationAnnouncement)
	require.NoError(t, err)
	// 只投递给居民，不投递给员工和管理员
	assert.Equal(t, 2, delivered)

	for _, u := range []*models.User{resident1, resident2} {
		count, err := svc.GetUnreadCount(principalFor(u))
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	}
	for _, u := range []*models.User{staff, admin} {
		count, err := svc.GetUnreadCount(principalFor(u))
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	}
}

func TestBroadcastAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, testConfig(), nil, nil)
	resident := createTestUser(t, db, "resident1", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	// 居民不能发送通知
	_, err := svc.Broadcast(principalFor(resident), nil, "t", "m")
	assert.EqualError(t, err, "没有权限发送通知")

	// 定向发送
	delivered, err := svc.Broadcast(principalFor(admin), &resident.ID, "t", "m")
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)

	// 目标用户不存在
	missing := uint(9999)
	_, err = svc.Broadcast(principalFor(admin), &missing, "t", "m")
	assert.EqualError(t, err, "接收用户不存在")

	// 定向发送只能面向居民
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)
	_, err = svc.Broadcast(principalFor(admin), &staff.ID, "t", "m")
	assert.EqualError(t, err, "只能向居民发送通知")
}

func TestMarkReadScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, testConfig(), nil, nil)
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)

	require.NoError(t, svc.Notify(resident1.ID, "t1", "m1", models.NotificationInfo))
	require.NoError(t, svc.Notify(resident2.ID, "t2", "m2", models.NotificationInfo))

	var n1 models.Notification
	require.NoError(t, db.Where("user_id = ?", resident1.ID).First(&n1).Error)

	// 他人不能把别人的通知标记为已读
	err := svc.MarkRead(principalFor(resident2), n1.ID)
	assert.EqualError(t, err, "通知不存在")

	require.NoError(t, svc.MarkRead(principalFor(resident1), n1.ID))
	count, err := svc.GetUnreadCount(principalFor(resident1))
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestMarkAllReadScopedToCaller(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db, testConfig(), nil, nil)
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(resident1.ID, "t", "m", models.NotificationInfo))
	}
	require.NoError(t, svc.Notify(resident2.ID, "t", "m", models.NotificationInfo))

	require.NoError(t, svc.MarkAllRead(principalFor(resident1)))

	count, err := svc.GetUnreadCount(principalFor(resident1))
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// 其他用户的未读不受影响
	count, err = svc.GetUnreadCount(principalFor(resident2))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
