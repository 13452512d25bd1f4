package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	models "seed_ledger/core/api/models/mongodb"
	"seed_ledger/core/common"
)

func activeEnterprise() models.Enterprise {
	return models.Enterprise{
		Status:    models.EnterpriseStatusEnable,
		StartDate: "2025-01-01",
		EndDate:   "2025-12-31",
	}
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestCheckLifecycle_ActiveTenantPasses(t *testing.T) {
	assert.NoError(t, CheckLifecycle(activeEnterprise(), day("2025-06-15")))
}

func TestCheckLifecycle_WindowIsInclusiveOnBothEnds(t *testing.T) {
	e := activeEnterprise()
	assert.NoError(t, CheckLifecycle(e, day("2025-01-01")))
	assert.NoError(t, CheckLifecycle(e, day("2025-12-31")))

	assert.ErrorIs(t, CheckLifecycle(e, day("2024-12-31")), common.ErrTenantAuthorizationExpired)
	assert.ErrorIs(t, CheckLifecycle(e, day("2026-01-01")), common.ErrTenantAuthorizationExpired)
}

func TestCheckLifecycle_DisabledTenantIsRejected(t *testing.T) {
	e := activeEnterprise()
	e.Status = models.EnterpriseStatusDisable
	assert.ErrorIs(t, CheckLifecycle(e, day("2025-06-15")), common.ErrTenantDisabled)
}

func TestCheckLifecycle_DeletedTenantIsRejected(t *testing.T) {
	e := activeEnterprise()
	e.IsDeleted = true
	assert.ErrorIs(t, CheckLifecycle(e, day("2025-06-15")), common.ErrTenantDeleted)
}

func TestCheckLifecycle_StatusWinsOverDeletion(t *testing.T) {
	e := activeEnterprise()
	e.Status = models.EnterpriseStatusDisable
	e.IsDeleted = true
	// Disabled is checked before the deletion tombstone and both before
	// the window.
	assert.ErrorIs(t, CheckLifecycle(e, day("2026-06-15")), common.ErrTenantDisabled)
}

func TestCheckLifecycle_DeletionWinsOverExpiredWindow(t *testing.T) {
	e := activeEnterprise()
	e.IsDeleted = true
	assert.ErrorIs(t, CheckLifecycle(e, day("2026-06-15")), common.ErrTenantDeleted)
}

func TestCheckLifecycle_EmptyWindowNeverExpires(t *testing.T) {
	e := activeEnterprise()
	e.StartDate = ""
	e.EndDate = ""
	assert.NoError(t, CheckLifecycle(e, day("1999-01-01")))
	assert.NoError(t, CheckLifecycle(e, day("2099-01-01")))
}
