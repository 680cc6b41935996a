package services

import (
	"testing"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComplaintService(t *testing.T) (InterfaceComplaintService, *models.User, *models.User, *models.User) {
	t.Helper()

	db := setupTestDB(t)
	cfg := testConfig()
	notifier := NewNotificationService(db, cfg, nil, nil)
	svc := NewComplaintService(db, cfg, notifier)

	resident := createTestUser(t, db, "resident1", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)
	return svc, resident, admin, staff
}

func submitComplaint(t *testing.T, svc InterfaceComplaintService, resident *models.User) *models.Complaint {
	t.Helper()

	complaint := &models.Complaint{
		Title:       "水管漏水",
		Description: "厨房水管接口处持续渗水",
		Category:    models.CategoryPlumbing,
		Priority:    models.PriorityHigh,
	}
	require.NoError(t, svc.CreateComplaint(principalFor(resident), complaint))
	return complaint
}

func TestCreateComplaint(t *testing.T) {
	svc, resident, admin, _ := newTestComplaintService(t)

	complaint := submitComplaint(t, svc, resident)

	assert.Equal(t, models.ComplaintStatusSubmitted, complaint.Status)
	assert.Equal(t, resident.ID, complaint.ResidentID)
	assert.NotEmpty(t, complaint.ComplaintNumber)
	assert.Nil(t, complaint.AssignedTo)
	assert.Nil(t, complaint.Rating)
	// 楼栋门牌从居民档案复制
	require.NotNil(t, complaint.Wing)
	assert.Equal(t, "A", *complaint.Wing)

	// 非居民不能提交投诉
	err := svc.CreateComplaint(principalFor(admin), &models.Complaint{
		Title:       "test",
		Description: "test",
		Category:    models.CategoryPlumbing,
	})
	assert.EqualError(t, err, "只有居民可以提交投诉")
}

func TestCreateComplaintDefaultsPriority(t *testing.T) {
	svc, resident, _, _ := newTestComplaintService(t)

	complaint := &models.Complaint{
		Title:       "楼道灯不亮",
		Description: "三楼楼道灯坏了两天",
		Category:    models.CategoryElectricity,
	}
	require.NoError(t, svc.CreateComplaint(principalFor(resident), complaint))
	assert.Equal(t, models.PriorityMedium, complaint.Priority)
}

func TestComplaintLifecycle(t *testing.T) {
	svc, resident, admin, staff := newTestComplaintService(t)

	complaint := submitComplaint(t, svc, resident)

	// 管理员分配给维修人员
	assigned, err := svc.AssignComplaint(principalFor(admin), complaint.ID, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, staff.ID, *assigned.AssignedTo)
	assert.NotNil(t, assigned.AssignedAt)

	// 维修人员开始处理
	inProgress, err := svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusInProgress, inProgress.Status)

	// 维修人员标记解决
	resolved, err := svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	// 居民评价并结单
	closed, err := svc.RateAndClose(principalFor(resident), complaint.ID, 5, "处理及时")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusClosed, closed.Status)
	require.NotNil(t, closed.Rating)
	assert.Equal(t, 5, *closed.Rating)
	assert.NotNil(t, closed.ClosedAt)
}

func TestAssignComplaintRules(t *testing.T) {
	svc, resident, admin, staff := newTestComplaintService(t)

	complaint := submitComplaint(t, svc, resident)

	// 非管理员不能分配
	_, err := svc.AssignComplaint(principalFor(resident), complaint.ID, staff.ID)
	assert.EqualError(t, err, "只有管理员可以分配投诉")

	// 被分配人必须是维修人员
	_, err = svc.AssignComplaint(principalFor(admin), complaint.ID, resident.ID)
	assert.EqualError(t, err, "被分配人不是维修人员")

	// 首次分配成功
	_, err = svc.AssignComplaint(principalFor(admin), complaint.ID, staff.ID)
	require.NoError(t, err)

	// 分配后不支持改派
	_, err = svc.AssignComplaint(principalFor(admin), complaint.ID, staff.ID)
	assert.EqualError(t, err, "只有待处理的投诉可以分配")
}

func TestUpdateStatusRules(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewComplaintService(db, cfg, nil)

	resident := createTestUser(t, db, "resident1", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)
	other := createTestUser(t, db, "staff2", models.RoleMaintenanceStaff)

	complaint := submitComplaint(t, svc, resident)
	_, err := svc.AssignComplaint(principalFor(admin), complaint.ID, staff.ID)
	require.NoError(t, err)

	// 未被分配的维修人员不能更新
	_, err = svc.UpdateStatus(principalFor(other), complaint.ID, models.ComplaintStatusInProgress)
	assert.EqualError(t, err, "该投诉未分配给您")

	// 不能直接跳回submitted等非法目标
	_, err = svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusSubmitted)
	assert.EqualError(t, err, "无效的目标状态")

	// assigned不能跳过in_progress直接resolved
	_, err = svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusResolved)
	assert.EqualError(t, err, "非法的状态迁移")

	_, err = svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusInProgress)
	require.NoError(t, err)
	resolved, err := svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, resolved.Status)

	// resolved后不能再回到in_progress
	_, err = svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusInProgress)
	assert.EqualError(t, err, "非法的状态迁移")
}

func TestRateAndCloseRules(t *testing.T) {
	svc, resident, admin, staff := newTestComplaintService(t)

	complaint := submitComplaint(t, svc, resident)

	// 未解决的投诉不能评价
	_, err := svc.RateAndClose(principalFor(resident), complaint.ID, 4, "")
	assert.EqualError(t, err, "只有已解决的投诉可以评价结单")

	_, err = svc.AssignComplaint(principalFor(admin), complaint.ID, staff.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusInProgress)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(principalFor(staff), complaint.ID, models.ComplaintStatusResolved)
	require.NoError(t, err)

	// 评分范围校验
	_, err = svc.RateAndClose(principalFor(resident), complaint.ID, 0, "")
	assert.EqualError(t, err, "评分必须在1到5之间")
	_, err = svc.RateAndClose(principalFor(resident), complaint.ID, 6, "")
	assert.EqualError(t, err, "评分必须在1到5之间")

	// 非发起人不能评价
	stranger := Principal{UserID: 999, Role: models.RoleResident}
	_, err = svc.RateAndClose(stranger, complaint.ID, 4, "")
	assert.EqualError(t, err, "只有投诉发起人可以评价")

	closed, err := svc.RateAndClose(principalFor(resident), complaint.ID, 4, "不错")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusClosed, closed.Status)

	// 结单后不能再评价
	_, err = svc.RateAndClose(principalFor(resident), complaint.ID, 3, "")
	assert.EqualError(t, err, "只有已解决的投诉可以评价结单")
}

func TestGetComplaintsVisibility(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewComplaintService(db, cfg, nil)

	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	staff := createTestUser(t, db, "staff1", models.RoleMaintenanceStaff)

	c1 := &models.Complaint{Title: "a", Description: "a", Category: models.CategoryPlumbing}
	require.NoError(t, svc.CreateComplaint(principalFor(resident1), c1))
	c2 := &models.Complaint{Title: "b", Description: "b", Category: models.CategoryElectricity}
	require.NoError(t, svc.CreateComplaint(principalFor(resident2), c2))

	_, err := svc.AssignComplaint(principalFor(admin), c2.ID, staff.ID)
	require.NoError(t, err)

	// 居民只能看自己的
	list, total, err := svc.GetComplaints(principalFor(resident1), ComplaintFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, c1.ID, list[0].ID)

	// 维修人员只能看分配给自己的
	list, total, err = svc.GetComplaints(principalFor(staff), ComplaintFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, c2.ID, list[0].ID)

	// 管理员能看全部
	_, total, err = svc.GetComplaints(principalFor(admin), ComplaintFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// 未知角色默认拒绝
	_, _, err = svc.GetComplaints(Principal{UserID: 1, Role: "ghost"}, ComplaintFilter{}, 1, 10)
	assert.EqualError(t, err, "没有权限查看投诉")

	// 他人的投诉按不存在处理
	_, err = svc.GetComplaintByID(principalFor(resident1), c2.ID)
	assert.EqualError(t, err, "投诉不存在")
}

func TestGetComplaintsPagination(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	svc := NewComplaintService(db, cfg, nil)

	resident := createTestUser(t, db, "resident1", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	for i := 0; i < 3; i++ {
		c := &models.Complaint{Title: "t", Description: "d", Category: models.CategoryOther}
		require.NoError(t, svc.CreateComplaint(principalFor(resident), c))
	}

	// 分页切片，total始终是过滤后的全量
	list, total, err := svc.GetComplaints(principalFor(admin), ComplaintFilter{}, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, list, 2)

	list, total, err = svc.GetComplaints(principalFor(admin), ComplaintFilter{}, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, list, 1)

	// 非法分页参数回落到缺省值
	list, _, err = svc.GetComplaints(principalFor(admin), ComplaintFilter{}, 0, -5)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
