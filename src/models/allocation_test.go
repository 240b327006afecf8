package models

import (
	"mrs/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validAllocation() *StorageAllocation {
	days := 7
	return &StorageAllocation{
		BodyID:               1,
		StorageUnitID:        1,
		AllocatedDate:        time.Now(),
		ExpectedDurationDays: &days,
		Status:               types.ALLOCATION_ACTIVE,
		PriorityLevel:        types.PRIORITY_NORMAL,
		TemperatureRequired:  DefaultRequiredTemperature,
		AllocatedBy:          "admin",
		AllocationType:       types.ALLOCATION_MANUAL,
		ProviderID:           1,
		OutletID:             1,
	}
}

func TestValidateOk(t *testing.T) {
	a := validAllocation()
	assert.Empty(t, a.Validate())
}

func TestValidateMissingRequiredFields(t *testing.T) {
	a := validAllocation()
	a.BodyID = 0
	assert.Contains(t, a.Validate(), "Body ID is required")

	a = validAllocation()
	a.StorageUnitID = 0
	assert.Equal(t, []string{"Storage unit ID is required"}, a.Validate())

	a = validAllocation()
	a.AllocatedBy = ""
	assert.Contains(t, a.Validate(), "Allocated by is required")
}

func TestValidateEnumMembership(t *testing.T) {
	a := validAllocation()
	a.Status = "Frozen"
	assert.Contains(t, a.Validate(), "Invalid status value")

	a = validAllocation()
	a.PriorityLevel = "Critical"
	assert.Contains(t, a.Validate(), "Invalid priority level")
}

func TestValidateExpectedDuration(t *testing.T) {
	a := validAllocation()
	zero := 0
	a.ExpectedDurationDays = &zero
	assert.Contains(t, a.Validate(), "Expected duration must be positive")

	a.ExpectedDurationDays = nil
	assert.Empty(t, a.Validate())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	a := &StorageAllocation{}
	problems := a.Validate()
	assert.Len(t, problems, 3)
}

func TestCurrentDurationZeroWithoutAllocatedDate(t *testing.T) {
	a := validAllocation()
	a.AllocatedDate = time.Time{}
	assert.Equal(t, 0, a.CurrentDuration())
}

func TestCurrentDurationCeiling(t *testing.T) {
	a := validAllocation()
	now := time.Now()
	a.AllocatedDate = now.Add(-36 * time.Hour)
	assert.Equal(t, 2, a.CurrentDurationAt(now))
	a.AllocatedDate = now.Add(-10 * 24 * time.Hour)
	assert.Equal(t, 10, a.CurrentDurationAt(now))
}

func TestCurrentDurationAbsoluteOnClockSkew(t *testing.T) {
	a := validAllocation()
	now := time.Now()
	a.AllocatedDate = now.Add(30 * time.Hour)
	assert.Equal(t, 2, a.CurrentDurationAt(now))
}

func TestCurrentDurationMonotonic(t *testing.T) {
	a := validAllocation()
	base := time.Now()
	a.AllocatedDate = base
	prev := 0
	for i := 1; i <= 48; i++ {
		d := a.CurrentDurationAt(base.Add(time.Duration(i) * 6 * time.Hour))
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestIsOverdue(t *testing.T) {
	a := validAllocation()
	a.ExpectedDurationDays = nil
	a.AllocatedDate = time.Now().Add(-30 * 24 * time.Hour)
	assert.False(t, a.IsOverdue())

	days := 7
	a.ExpectedDurationDays = &days
	assert.True(t, a.IsOverdue())

	a.AllocatedDate = time.Now()
	assert.False(t, a.IsOverdue())
}

func TestEffectiveStatus(t *testing.T) {
	a := validAllocation()
	a.AllocatedDate = time.Now().Add(-10 * 24 * time.Hour)
	assert.Equal(t, types.ALLOCATION_OVERDUE, a.EffectiveStatus())

	a.Status = types.ALLOCATION_MAINTENANCE
	assert.Equal(t, types.ALLOCATION_MAINTENANCE, a.EffectiveStatus())

	a.Status = types.ALLOCATION_ACTIVE
	a.AllocatedDate = time.Now()
	assert.Equal(t, types.ALLOCATION_ACTIVE, a.EffectiveStatus())
}

func TestFreshAllocationNotOverdue(t *testing.T) {
	a := validAllocation()
	now := time.Now()
	a.AllocatedDate = now
	assert.False(t, a.isOverdueAt(now))
	assert.Equal(t, 0, a.CurrentDurationAt(now))
}

func TestRowRoundTrip(t *testing.T) {
	a := validAllocation()
	a.ID = 42
	temp := -16.5
	a.CurrentTemperature = &temp
	releasedBy := "nurse2"
	releasedAt := time.Now().Add(-time.Hour)
	actual := 3
	a.Status = types.ALLOCATION_RELEASED
	a.ReleasedBy = &releasedBy
	a.ReleasedDate = &releasedAt
	a.ActualDurationDays = &actual
	a.Notes = "transfer pending paperwork"

	got := a.ToRow().FromRow()
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.BodyID, got.BodyID)
	assert.Equal(t, a.StorageUnitID, got.StorageUnitID)
	assert.Equal(t, a.AllocatedDate, got.AllocatedDate)
	assert.Equal(t, a.ExpectedDurationDays, got.ExpectedDurationDays)
	assert.Equal(t, a.ActualDurationDays, got.ActualDurationDays)
	assert.Equal(t, a.Status, got.Status)
	assert.Equal(t, a.PriorityLevel, got.PriorityLevel)
	assert.Equal(t, a.TemperatureRequired, got.TemperatureRequired)
	assert.Equal(t, a.CurrentTemperature, got.CurrentTemperature)
	assert.Equal(t, a.AllocatedBy, got.AllocatedBy)
	assert.Equal(t, a.ReleasedDate, got.ReleasedDate)
	assert.Equal(t, a.ReleasedBy, got.ReleasedBy)
	assert.Equal(t, a.Notes, got.Notes)
	assert.Equal(t, a.AllocationType, got.AllocationType)
	assert.Equal(t, a.ProviderID, got.ProviderID)
	assert.Equal(t, a.OutletID, got.OutletID)
}
