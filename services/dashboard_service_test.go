package services

import (
	"testing"
	"time"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsByRole(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	dashboard := NewDashboardService(db, cfg)
	complaints := NewComplaintService(db, cfg, nil)
	payments := NewPaymentService(db, cfg)
	meetings := NewMeetingService(db, cfg)

	resident := createTestUser(t, db, "resident1", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)

	c1 := &models.Complaint{Title: "a", Description: "a", Category: models.CategoryPlumbing}
	require.NoError(t, complaints.CreateComplaint(principalFor(resident), c1))
	c2 := &models.Complaint{Title: "b", Description: "b", Category: models.CategoryNoise}
	require.NoError(t, complaints.CreateComplaint(principalFor(resident), c2))

	_, err := complaints.AssignComplaint(principalFor(admin), c1.ID, staff.ID)
	require.NoError(t, err)
	_, err = complaints.UpdateStatus(principalFor(staff), c1.ID, models.ComplaintStatusInProgress)
	require.NoError(t, err)
	_, err = complaints.UpdateStatus(principalFor(staff), c1.ID, models.ComplaintStatusResolved)
	require.NoError(t, err)

	require.NoError(t, meetings.CreateMeeting(principalFor(admin), &models.Meeting{
		Title:       "业主大会",
		MeetingDate: time.Now().Add(48 * time.Hour),
	}))

	// 居民视角: 投诉计数和待缴费标记
	stats, err := dashboard.GetStats(principalFor(resident))
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.MyComplaints)
	assert.EqualValues(t, 1, stats.MyOpenComplaints)
	assert.True(t, stats.PaymentDue)

	_, err = payments.RecordPayment(principalFor(resident), 2500, time.Now().Format("2006-01"), "upi")
	require.NoError(t, err)
	stats, err = dashboard.GetStats(principalFor(resident))
	require.NoError(t, err)
	assert.False(t, stats.PaymentDue)

	// 维修人员视角
	stats, err = dashboard.GetStats(principalFor(staff))
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.AssignedTasks)
	assert.EqualValues(t, 0, stats.TasksInProcess)
	assert.EqualValues(t, 1, stats.TasksResolved)

	// 管理员视角
	stats, err = dashboard.GetStats(principalFor(admin))
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalComplaints)
	assert.EqualValues(t, 1, stats.PendingComplaints)
	assert.EqualValues(t, 1, stats.TotalResidents)
	assert.EqualValues(t, 1, stats.UpcomingMeetings)

	// 未知角色默认拒绝
	_, err = dashboard.GetStats(Principal{UserID: 1, Role: "ghost"})
	assert.EqualError(t, err, "没有权限查看统计")
}

func TestComplaintAnalytics(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	dashboard := NewDashboardService(db, cfg)
	complaints := NewComplaintService(db, cfg, nil)

	resident := createTestUser(t, db, "resident1", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)

	// 非管理员不能查看
	_, err := dashboard.GetComplaintAnalytics(principalFor(resident))
	assert.EqualError(t, err, "只有管理员可以查看分析数据")

	c1 := &models.Complaint{Title: "a", Description: "a", Category: models.CategoryPlumbing}
	require.NoError(t, complaints.CreateComplaint(principalFor(resident), c1))
	c2 := &models.Complaint{Title: "b", Description: "b", Category: models.CategoryPlumbing}
	require.NoError(t, complaints.CreateComplaint(principalFor(resident), c2))
	c3 := &models.Complaint{Title: "c", Description: "c", Category: models.CategoryNoise}
	require.NoError(t, complaints.CreateComplaint(principalFor(resident), c3))

	_, err = complaints.AssignComplaint(principalFor(admin), c1.ID, staff.ID)
	require.NoError(t, err)
	_, err = complaints.UpdateStatus(principalFor(staff), c1.ID, models.ComplaintStatusInProgress)
	require.NoError(t, err)
	_, err = complaints.UpdateStatus(principalFor(staff), c1.ID, models.ComplaintStatusResolved)
	require.NoError(t, err)

	analytics, err := dashboard.GetComplaintAnalytics(principalFor(admin))
	require.NoError(t, err)
	assert.EqualValues(t, 3, analytics.Total)
	assert.EqualValues(t, 1, analytics.Resolved)
	assert.EqualValues(t, 2, analytics.Pending)
	assert.GreaterOrEqual(t, analytics.AvgResolutionDays, float64(0))

	byCategory := map[string]int64{}
	for _, item := range analytics.ByCategory {
		byCategory[item.Name] = item.Value
	}
	assert.EqualValues(t, 2, byCategory["plumbing"])
	assert.EqualValues(t, 1, byCategory["noise"])
}
