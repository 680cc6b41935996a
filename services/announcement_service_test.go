package services

import (
	"testing"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAnnouncementFansOutToResidents(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	notifier := NewNotificationService(db, cfg, nil, nil)
	svc := NewAnnouncementService(db, cfg, notifier)

	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	announcement := &models.Announcement{
		Title:   "电梯年检通知",
		Content: "本周六上午全体电梯停运年检",
	}
	require.NoError(t, svc.CreateAnnouncement(principalFor(admin), announcement))
	assert.Equal(t, admin.ID, announcement.CreatedBy)

	// 居民收到公告通知
	notifications, err := notifier.GetNotifications(principalFor(resident), 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "新公告: 电梯年检通知", notifications[0].Title)
	assert.Equal(t, models.NotificationAnnouncement, notifications[0].Type)
}

func TestCreateAnnouncementEmergencyPrefix(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	notifier := NewNotificationService(db, cfg, nil, nil)
	svc := NewAnnouncementService(db, cfg, notifier)

	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	announcement := &models.Announcement{
		Title:       "停水通知",
		Content:     "今晚8点起全区停水",
		IsEmergency: true,
	}
	require.NoError(t, svc.CreateAnnouncement(principalFor(admin), announcement))

	notifications, err := notifier.GetNotifications(principalFor(resident), 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "紧急公告: 停水通知", notifications[0].Title)
}

func TestAnnouncementAdminOnlyWrites(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewAnnouncementService(db, cfg, nil)

	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	err := svc.CreateAnnouncement(principalFor(resident), &models.Announcement{Title: "x", Content: "y"})
	assert.EqualError(t, err, "只有管理员可以发布公告")

	announcement := &models.Announcement{Title: "t", Content: "c"}
	require.NoError(t, svc.CreateAnnouncement(principalFor(admin), announcement))

	_, err = svc.UpdateAnnouncement(principalFor(resident), announcement.ID, map[string]interface{}{"title": "z"})
	assert.EqualError(t, err, "只有管理员可以编辑公告")

	updated, err := svc.UpdateAnnouncement(principalFor(admin), announcement.ID, map[string]interface{}{"title": "z"})
	require.NoError(t, err)
	assert.Equal(t, "z", updated.Title)

	err = svc.DeleteAnnouncement(principalFor(resident), announcement.ID)
	assert.EqualError(t, err, "只有管理员可以删除公告")

	require.NoError(t, svc.DeleteAnnouncement(principalFor(admin), announcement.ID))
	err = svc.DeleteAnnouncement(principalFor(admin), announcement.ID)
	assert.EqualError(t, err, "公告不存在")
}
