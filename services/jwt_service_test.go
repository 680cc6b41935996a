package services

import (
	"testing"

	"society-connect-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(42, models.RoleMaintenanceStaff)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleMaintenanceStaff, claims.Role)
	assert.Equal(t, "society-connect-http-service", claims.Issuer)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(1, models.RoleResident)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPrincipalRoleHelpers(t *testing.T) {
	admin := Principal{UserID: 1, Role: models.RoleAdmin}
	staff := Principal{UserID: 2, Role: models.RoleMaintenanceStaff}
	resident := Principal{UserID: 3, Role: models.RoleResident}

	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsStaff())
	assert.True(t, staff.IsStaff())
	assert.False(t, resident.IsAdmin())
	assert.False(t, resident.IsStaff())
}
