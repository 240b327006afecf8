package common

import (
	"errors"
	"mrs/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessBodyExitValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ProcessBodyExit(1, &types.ProcessExitRequestBody{}, "clerk")
	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Problems, "Exit type is required")
	assert.Contains(t, validation.Problems, "Approved by is required")

	_, err = svc.ProcessBodyExit(1, &types.ProcessExitRequestBody{
		ExitType:   "released",
		ApprovedBy: "supervisor",
	}, "clerk")
	assert.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Problems, "Receiver name is required")

	_, err = svc.ProcessBodyExit(1, &types.ProcessExitRequestBody{
		ExitType:   "vanished",
		ApprovedBy: "supervisor",
	}, "clerk")
	assert.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Problems, "Invalid exit type")
}

func TestProcessBodyExitNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ProcessBodyExit(42, &types.ProcessExitRequestBody{
		ExitType:   "cremated",
		ApprovedBy: "supervisor",
	}, "clerk")
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Body", notFound.Resource)
}

func TestProcessBodyExitReleasesAllocations(t *testing.T) {
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

	exit, err := svc.ProcessBodyExit(body.ID, &types.ProcessExitRequestBody{
		ExitType:     "released",
		ReceiverName: "Jane Doe",
		ApprovedBy:   "supervisor",
	}, "clerk")
	assert.Nil(t, err)
	assert.NotZero(t, exit.ID)
	assert.Equal(t, types.EXIT_RELEASED, exit.ExitType)

	stored, err := svc.GetBody(body.ID)
	assert.Nil(t, err)
	assert.Equal(t, types.BODY_RELEASED, stored.Status)

	releasedAllocation, err := svc.GetAllocation(allocation.ID)
	assert.Nil(t, err)
	assert.Equal(t, types.ALLOCATION_RELEASED, releasedAllocation.Status)
	assert.NotNil(t, releasedAllocation.ActualDurationDays)
	assert.NotNil(t, releasedAllocation.ReleasedBy)
	assert.Equal(t, "clerk", *releasedAllocation.ReleasedBy)

	_, err = svc.ProcessBodyExit(body.ID, &types.ProcessExitRequestBody{
		ExitType:     "released",
		ReceiverName: "Jane Doe",
		ApprovedBy:   "supervisor",
	}, "clerk")
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "body has already been released", conflict.Reason)

	exits, err := svc.ListExits()
	assert.Nil(t, err)
	assert.Len(t, exits, 1)
}
