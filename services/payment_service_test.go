package services

import (
	"testing"
	"time"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db, testConfig())
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	payment, err := svc.RecordPayment(principalFor(resident), 2500, "2026-09", "upi")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	assert.Equal(t, "2026-09", payment.Month)
	assert.NotEmpty(t, payment.TransactionID)
	assert.NotNil(t, payment.PaidAt)
}

func TestRecordPaymentDefaultsAmount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db, testConfig())
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	// 未指定金额时按配置的统一物业费登记
	payment, err := svc.RecordPayment(principalFor(resident), 0, "2026-09", "upi")
	require.NoError(t, err)
	assert.InDelta(t, 2500, payment.Amount, 0.001)
}

func TestRecordPaymentValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db, testConfig())
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	_, err := svc.RecordPayment(principalFor(resident), -100, "2026-09", "upi")
	assert.EqualError(t, err, "缴费金额必须大于0")

	_, err = svc.RecordPayment(principalFor(resident), 2500, "2026-13", "upi")
	assert.EqualError(t, err, "无效的月份格式，应为YYYY-MM")

	_, err = svc.RecordPayment(principalFor(resident), 2500, "202609", "upi")
	assert.EqualError(t, err, "无效的月份格式，应为YYYY-MM")
}

func TestRecordPaymentDuplicateMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db, testConfig())
	resident := createTestUser(t, db, "resident1", models.RoleResident)
	other := createTestUser(t, db, "resident2", models.RoleResident)

	_, err := svc.RecordPayment(principalFor(resident), 2500, "2026-09", "upi")
	require.NoError(t, err)

	// 同一用户同一月份第二次缴费被拒绝
	_, err = svc.RecordPayment(principalFor(resident), 2500, "2026-09", "cash")
	assert.EqualError(t, err, "本月物业费已缴纳")

	// 其他月份和其他用户不受影响
	_, err = svc.RecordPayment(principalFor(resident), 2500, "2026-10", "upi")
	assert.NoError(t, err)
	_, err = svc.RecordPayment(principalFor(other), 2500, "2026-09", "upi")
	assert.NoError(t, err)
}

func TestGetPaymentsScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db, testConfig())
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	_, err := svc.RecordPayment(principalFor(resident1), 2500, "2026-08", "upi")
	require.NoError(t, err)
	_, err = svc.RecordPayment(principalFor(resident2), 2500, "2026-08", "upi")
	require.NoError(t, err)

	mine, err := svc.GetPayments(principalFor(resident1))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, resident1.ID, mine[0].UserID)

	all, err := svc.GetPayments(principalFor(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetSummary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db, testConfig())
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	// 非管理员不能查看
	_, err := svc.GetSummary(principalFor(resident1))
	assert.EqualError(t, err, "只有管理员可以查看收缴汇总")

	currentMonth := time.Now().Format("2006-01")
	_, err = svc.RecordPayment(principalFor(resident1), 2500, currentMonth, "upi")
	require.NoError(t, err)
	_, err = svc.RecordPayment(principalFor(resident2), 3000, "2025-12", "cash")
	require.NoError(t, err)

	summary, err := svc.GetSummary(principalFor(admin))
	require.NoError(t, err)
	assert.InDelta(t, 5500, summary.TotalCollected, 0.001)
	assert.EqualValues(t, 1, summary.PaidThisMonth)
	assert.EqualValues(t, 2, summary.TotalResidents)
}
