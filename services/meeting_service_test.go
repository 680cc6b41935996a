package services

import (
	"testing"
	"time"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestMeeting(t *testing.T, svc InterfaceMeetingService, admin *models.User) *models.Meeting {
	t.Helper()

	meeting := &models.Meeting{
		Title:       "业主大会",
		Description: "讨论年度维修基金使用计划",
		MeetingDate: time.Now().Add(72 * time.Hour),
		Location:    "小区会所二楼",
	}
	require.NoError(t, svc.CreateMeeting(principalFor(admin), meeting))
	return meeting
}

func TestCreateMeeting(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMeetingService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	meeting := createTestMeeting(t, svc, admin)
	assert.Equal(t, admin.ID, meeting.CreatedBy)

	// 非管理员不能创建
	err := svc.CreateMeeting(principalFor(resident), &models.Meeting{
		Title:       "x",
		MeetingDate: time.Now(),
	})
	assert.EqualError(t, err, "只有管理员可以创建会议")

	// 标题和时间必填
	err = svc.CreateMeeting(principalFor(admin), &models.Meeting{Title: "x"})
	assert.EqualError(t, err, "会议标题和时间不能为空")
}

func TestSubmitRSVPIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMeetingService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	meeting := createTestMeeting(t, svc, admin)

	require.NoError(t, svc.SubmitRSVP(principalFor(resident), meeting.ID, models.RSVPAttending))
	// 重复提交只覆盖状态，不产生第二条记录
	require.NoError(t, svc.SubmitRSVP(principalFor(resident), meeting.ID, models.RSVPNotAttending))

	var count int64
	require.NoError(t, db.Model(&models.MeetingRSVP{}).
		Where("meeting_id = ? AND user_id = ?", meeting.ID, resident.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	rsvps, err := svc.GetUserRSVPs(principalFor(resident))
	require.NoError(t, err)
	require.Len(t, rsvps, 1)
	assert.Equal(t, models.RSVPNotAttending, rsvps[0].Status)
}

func TestSubmitRSVPValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMeetingService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	meeting := createTestMeeting(t, svc, admin)

	err := svc.SubmitRSVP(principalFor(resident), meeting.ID, "maybe")
	assert.EqualError(t, err, "无效的回执状态")

	err = svc.SubmitRSVP(principalFor(resident), 9999, models.RSVPAttending)
	assert.EqualError(t, err, "会议不存在")
}

func TestGetMeetingsWithCount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMeetingService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)

	meeting := createTestMeeting(t, svc, admin)

	require.NoError(t, svc.SubmitRSVP(principalFor(resident1), meeting.ID, models.RSVPAttending))
	require.NoError(t, svc.SubmitRSVP(principalFor(resident2), meeting.ID, models.RSVPNotAttending))

	meetings, err := svc.GetMeetings()
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	// 只统计attending状态
	assert.EqualValues(t, 1, meetings[0].AttendingCount)
}

func TestDeleteMeetingCascadesRSVPs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMeetingService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	meeting := createTestMeeting(t, svc, admin)
	require.NoError(t, svc.SubmitRSVP(principalFor(resident), meeting.ID, models.RSVPAttending))

	// 非管理员不能删除
	err := svc.DeleteMeeting(principalFor(resident), meeting.ID)
	assert.EqualError(t, err, "只有管理员可以删除会议")

	require.NoError(t, svc.DeleteMeeting(principalFor(admin), meeting.ID))

	var count int64
	require.NoError(t, db.Model(&models.MeetingRSVP{}).Where("meeting_id = ?", meeting.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
