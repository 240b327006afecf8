package common

import (
	"errors"
	"fmt"
	"mrs/src/models"
	"mrs/src/store"
	"mrs/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	js, err := store.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("could not initialize document store: %s", err.Error())
	}
	return NewService(js)
}

func registerTestBody(t *testing.T, svc *Service, name string) *models.Body {
	t.Helper()
	body, err := svc.RegisterBody(&types.RegisterBodyRequestBody{
		FullName:    name,
		Gender:      "male",
		DateOfDeath: "2026-08-20 14:30:00 +00:00",
		Source:      "emergency ward",
	})
	if err != nil {
		t.Fatalf("could not register body: %s", err.Error())
	}
	return body
}

func createTestUnit(t *testing.T, svc *Service, code string, capacity uint) *models.StorageUnit {
	t.Helper()
	unit, err := svc.CreateStorageUnit(&types.CreateStorageUnitRequestBody{
		Code:        code,
		Type:        "freezer",
		Capacity:    capacity,
		Temperature: -20,
	})
	if err != nil {
		t.Fatalf("could not create storage unit: %s", err.Error())
	}
	return unit
}

func TestCreateAllocationDefaults(t *testing.T) {
	svc := newTestService(t)
	body := registerTestBody(t, svc, "John Doe")
	unit := createTestUnit(t, svc, "F-01", 2)

	days := 7
	allocation, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:               body.ID,
		StorageUnitID:        unit.ID,
		ExpectedDurationDays: &days,
	}, "admin")
	assert.Nil(t, err)
	assert.NotZero(t, allocation.ID)
	assert.Equal(t, types.ALLOCATION_ACTIVE, allocation.Status)
	assert.Equal(t, types.PRIORITY_NORMAL, allocation.PriorityLevel)
	assert.Equal(t, types.ALLOCATION_MANUAL, allocation.AllocationType)
	assert.Equal(t, models.DefaultRequiredTemperature, allocation.TemperatureRequired)
	assert.Equal(t, "admin", allocation.AllocatedBy)
	assert.False(t, allocation.AllocatedDate.IsZero())

	stored, err := svc.GetBody(body.ID)
	assert.Nil(t, err)
	assert.Equal(t, types.BODY_ALLOCATED, stored.Status)

	movements, err := svc.ListMovements()
	assert.Nil(t, err)
	assert.Len(t, movements, 1)
	assert.Equal(t, unit.Code, movements[0].ToLocation)
}

func TestCreateAllocationCollectsProblems(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{BodyID: 1}, "admin")
	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"Storage unit ID is required"}, validation.Problems)

	_, err = svc.CreateAllocation(&types.CreateAllocationRequestBody{}, "")
	assert.True(t, errors.As(err, &validation))
	assert.Len(t, validation.Problems, 3)
}

func TestCreateAllocationUnknownRecords(t *testing.T) {
	svc := newTestService(t)
	body := registerTestBody(t, svc, "John Doe")

	_, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        body.ID,
		StorageUnitID: 42,
	}, "admin")
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Storage unit", notFound.Resource)

	unit := createTestUnit(t, svc, "F-01", 2)
	_, err = svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        99,
		StorageUnitID: unit.ID,
	}, "admin")
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Body", notFound.Resource)
}

func TestCreateAllocationCapacityConflict(t *testing.T) {
	svc := newTestService(t)
	unit := createTestUnit(t, svc, "F-01", 1)
	first := registerTestBody(t, svc, "John Doe")
	second := registerTestBody(t, svc, "Jim Doe")

	_, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        first.ID,
		StorageUnitID: unit.ID,
	}, "admin")
	assert.Nil(t, err)

	_, err = svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        second.ID,
		StorageUnitID: unit.ID,
	}, "admin")
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "storage unit is at capacity", conflict.Reason)
}

func TestCreateAllocationNonOperationalUnit(t *testing.T) {
	svc := newTestService(t)
	body := registerTestBody(t, svc, "John Doe")
	unit := createTestUnit(t, svc, "F-01", 2)

	_, err := svc.SetUnitStatus(unit.ID, types.UNIT_MAINTENANCE)
	assert.Nil(t, err)

	_, err = svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        body.ID,
		StorageUnitID: unit.ID,
	}, "admin")
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "storage unit is not operational", conflict.Reason)
}

func TestReleaseAllocation(t *testing.T) {
	svc := newTestService(t)
	body := registerTestBody(t, svc, "John Doe")
	unit := createTestUnit(t, svc, "F-01", 2)

	days := 7
	allocation, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:               body.ID,
		StorageUnitID:        unit.ID,
		ExpectedDurationDays: &days,
	}, "admin")
	assert.Nil(t, err)

	released, err := svc.ReleaseAllocation(allocation.ID, "nurse2")
	assert.Nil(t, err)
	assert.Equal(t, types.ALLOCATION_RELEASED, released.Status)
	assert.NotNil(t, released.ReleasedDate)
	assert.NotNil(t, released.ReleasedBy)
	assert.Equal(t, "nurse2", *released.ReleasedBy)
	assert.NotNil(t, released.ActualDurationDays)

	_, err = svc.ReleaseAllocation(allocation.ID, "nurse2")
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "allocation has already been released", conflict.Reason)
}

func TestReleaseAllocationNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ReleaseAllocation(42, "nurse2")
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestSetAllocationStatus(t *testing.T) {
	svc := newTestService(t)
	body := registerTestBody(t, svc, "John Doe")
	unit := createTestUnit(t, svc, "F-01", 2)

	allocation, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        body.ID,
		StorageUnitID: unit.ID,
	}, "admin")
	assert.Nil(t, err)

	updated, err := svc.SetAllocationStatus(allocation.ID, types.ALLOCATION_MAINTENANCE)
	assert.Nil(t, err)
	assert.Equal(t, types.ALLOCATION_MAINTENANCE, updated.Status)

	var validation *ValidationError
	_, err = svc.SetAllocationStatus(allocation.ID, types.ALLOCATION_RELEASED)
	assert.True(t, errors.As(err, &validation))
	_, err = svc.SetAllocationStatus(allocation.ID, types.ALLOCATION_OVERDUE)
	assert.True(t, errors.As(err, &validation))

	_, err = svc.ReleaseAllocation(allocation.ID, "nurse2")
	assert.Nil(t, err)
	_, err = svc.SetAllocationStatus(allocation.ID, types.ALLOCATION_ACTIVE)
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestChangeAllocationPriority(t *testing.T) {
	svc := newTestService(t)
	body := registerTestBody(t, svc, "John Doe")
	unit := createTestUnit(t, svc, "F-01", 2)

	allocation, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        body.ID,
		StorageUnitID: unit.ID,
	}, "admin")
	assert.Nil(t, err)

	updated, err := svc.ChangeAllocationPriority(allocation.ID, types.PRIORITY_URGENT)
	assert.Nil(t, err)
	assert.Equal(t, types.PRIORITY_URGENT, updated.PriorityLevel)

	_, err = svc.ChangeAllocationPriority(allocation.ID, types.PriorityLevel("Extreme"))
	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Problems, "Invalid priority level")
}

func TestUpdateAllocationTemperature(t *testing.T) {
	svc := newTestService(t)
	body := registerTestBody(t, svc, "John Doe")
	unit := createTestUnit(t, svc, "F-01", 2)

	allocation, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
		BodyID:        body.ID,
		StorageUnitID: unit.ID,
	}, "admin")
	assert.Nil(t, err)

	updated, err := svc.UpdateAllocationTemperature(allocation.ID, -19.5)
	assert.Nil(t, err)
	assert.NotNil(t, updated.CurrentTemperature)
	assert.Equal(t, -19.5, *updated.CurrentTemperature)
}

func TestListAllocationsFilters(t *testing.T) {
	svc := newTestService(t)
	unitA := createTestUnit(t, svc, "F-01", 4)
	unitB := createTestUnit(t, svc, "F-02", 4)

	var allocations []*models.StorageAllocation
	for i := 0; i < 3; i++ {
		body := registerTestBody(t, svc, fmt.Sprintf("Body %d", i))
		unitId := unitA.ID
		if i == 2 {
			unitId = unitB.ID
		}
		a, err := svc.CreateAllocation(&types.CreateAllocationRequestBody{
			BodyID:        body.ID,
			StorageUnitID: unitId,
		}, "admin")
		assert.Nil(t, err)
		allocations = append(allocations, a)
	}
	_, err := svc.ReleaseAllocation(allocations[0].ID, "admin")
	assert.Nil(t, err)

	active, err := svc.ListAllocations(&types.AllocationQueryFilters{Status: "Active"})
	assert.Nil(t, err)
	assert.Len(t, active, 2)

	inUnitA, err := svc.ListAllocations(&types.AllocationQueryFilters{UnitID: unitA.ID})
	assert.Nil(t, err)
	assert.Len(t, inUnitA, 2)

	overdue, err := svc.ListAllocations(&types.AllocationQueryFilters{Overdue: true})
	assert.Nil(t, err)
	assert.Len(t, overdue, 0)
}
