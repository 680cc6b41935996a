package services

import (
	"testing"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFundOverviewBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFundService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)

	require.NoError(t, svc.CreateEntry(principalFor(admin), &models.SocietyFund{
		Title: "物业费收入", Type: models.FundIncome, Amount: 50000,
	}))
	require.NoError(t, svc.CreateEntry(principalFor(admin), &models.SocietyFund{
		Title: "电梯维保费", Type: models.FundExpense, Amount: 18000,
	}))
	require.NoError(t, svc.CreateEntry(principalFor(admin), &models.SocietyFund{
		Title: "绿化支出", Type: models.FundExpense, Amount: 6000,
	}))

	overview, err := svc.GetOverview()
	require.NoError(t, err)
	assert.Len(t, overview.Entries, 3)
	assert.InDelta(t, 50000, overview.TotalIncome, 0.001)
	assert.InDelta(t, 24000, overview.TotalExpense, 0.001)
	assert.InDelta(t, 26000, overview.Balance, 0.001)
}

func TestFundEntryValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFundService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	err := svc.CreateEntry(principalFor(resident), &models.SocietyFund{
		Title: "x", Type: models.FundIncome, Amount: 1,
	})
	assert.EqualError(t, err, "只有管理员可以记账")

	err = svc.CreateEntry(principalFor(admin), &models.SocietyFund{
		Title: "", Type: models.FundIncome, Amount: 1,
	})
	assert.EqualError(t, err, "账目标题不能为空")

	err = svc.CreateEntry(principalFor(admin), &models.SocietyFund{
		Title: "x", Type: "transfer", Amount: 1,
	})
	assert.EqualError(t, err, "无效的账目类型")

	err = svc.CreateEntry(principalFor(admin), &models.SocietyFund{
		Title: "x", Type: models.FundIncome, Amount: 0,
	})
	assert.EqualError(t, err, "账目金额必须大于0")
}

func TestDeleteFundEntry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFundService(db, testConfig())
	admin := createTestUser(t, db, "admin1", models.RoleAdmin)
	resident := createTestUser(t, db, "resident1", models.RoleResident)

	entry := &models.SocietyFund{Title: "x", Type: models.FundIncome, Amount: 100}
	require.NoError(t, svc.CreateEntry(principalFor(admin), entry))

	err := svc.DeleteEntry(principalFor(resident), entry.ID)
	assert.EqualError(t, err, "只有管理员可以删除账目")

	require.NoError(t, svc.DeleteEntry(principalFor(admin), entry.ID))
	err = svc.DeleteEntry(principalFor(admin), entry.ID)
	assert.EqualError(t, err, "账目不存在")
}
