package services

import (
	"testing"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignment(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	notifier := NewNotificationService(db, cfg, nil, nil)
	svc := NewStaffAssignmentService(db, cfg, notifier)

	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	assignment := &models.StaffAssignment{
		StaffUserID:    staff.ID,
		AssignmentType: "存水箱清洗",
		Schedule:       models.ScheduleWeekly,
	}
	require.NoError(t, svc.CreateAssignment(principalFor(admin), assignment))
	assert.Equal(t, models.AssignmentActive, assignment.Status)
	assert.Equal(t, admin.ID, assignment.AssignedBy)

	// 被安排的维修人员收到通知
	notifications, err := notifier.GetNotifications(principalFor(staff), 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "新的排班工单", notifications[0].Title)

	// 非管理员不能创建
	err = svc.CreateAssignment(principalFor(staff), &models.StaffAssignment{
		StaffUserID: staff.ID, AssignmentType: "x", Schedule: models.ScheduleDaily,
	})
	assert.EqualError(t, err, "只有管理员可以创建工单")

	// 被安排人必须是维修人员
	err = svc.CreateAssignment(principalFor(admin), &models.StaffAssignment{
		StaffUserID: resident.ID, AssignmentType: "x", Schedule: models.ScheduleDaily,
	})
	assert.EqualError(t, err, "被安排人不是维修人员")

	// 排班周期校验
	err = svc.CreateAssignment(principalFor(admin), &models.StaffAssignment{
		StaffUserID: staff.ID, AssignmentType: "x", Schedule: "hourly",
	})
	assert.EqualError(t, err, "无效的排班周期")
}

func TestAssignmentVisibility(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewStaffAssignmentService(db, cfg, nil)

	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff1 := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)
	staff2 := createTestUser(t, db, "staff2", models.RoleMaintenanceStaff)

	for _, s := range []*models.User{staff1, staff2} {
		require.NoError(t, svc.CreateAssignment(principalFor(admin), &models.StaffAssignment{
			StaffUserID:    s.ID,
			AssignmentType: "巡检",
			Schedule:       models.ScheduleDaily,
		}))
	}

	// 管理员看全部
	all, err := svc.GetAssignments(principalFor(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// 维修人员只看本人的
	mine, err := svc.GetMyAssignments(principalFor(staff1))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, staff1.ID, mine[0].StaffUserID)

	// 维修人员不能看全部
	_, err = svc.GetAssignments(principalFor(staff1))
	assert.EqualError(t, err, "只有管理员可以查看工单")
}

func TestUpdateAssignmentStatus(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewStaffAssignmentService(db, cfg, nil)

	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)

	assignment := &models.StaffAssignment{
		StaffUserID:    staff.ID,
		AssignmentType: "巡检",
		Schedule:       models.ScheduleDaily,
	}
	require.NoError(t, svc.CreateAssignment(principalFor(admin), assignment))

	updated, err := svc.UpdateAssignmentStatus(principalFor(admin), assignment.ID, models.AssignmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCompleted, updated.Status)

	_, err = svc.UpdateAssignmentStatus(principalFor(admin), assignment.ID, "paused")
	assert.EqualError(t, err, "无效的工单状态")

	_, err = svc.UpdateAssignmentStatus(principalFor(staff), assignment.ID, models.AssignmentCancelled)
	assert.EqualError(t, err, "只有管理员可以更新工单状态")

	require.NoError(t, svc.DeleteAssignment(principalFor(admin), assignment.ID))
	err = svc.DeleteAssignment(principalFor(admin), assignment.ID)
	assert.EqualError(t, err, "工单不存在")
}
