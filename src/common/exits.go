package common

import (
	"errors"
	"mrs/src/models"
	"mrs/src/store"
	"mrs/src/types"
	"time"
)

var validExitTypes = map[types.ExitType]bool{
	types.EXIT_RELEASED:    true,
	types.EXIT_TRANSFERRED: true,
	types.EXIT_BURIED:      true,
	types.EXIT_CREMATED:    true,
}

func validateExit(input *types.ProcessExitRequestBody) []string {
	problems := []string{}
	if input.ExitType == "" {
		problems = append(problems, "Exit type is required")
	} else if !validExitTypes[types.ExitType(input.ExitType)] {
		problems = append(problems, "Invalid exit type")
	}
	if input.ApprovedBy == "" {
		problems = append(problems, "Approved by is required")
	}
	switch types.ExitType(input.ExitType) {
	case types.EXIT_RELEASED, types.EXIT_TRANSFERRED:
		if input.ReceiverName == "" {
			problems = append(problems, "Receiver name is required")
		}
	}
	return problems
}

// ProcessBodyExit discharges a body: every active allocation is released,
// the exit event is recorded and the body leaves the active census. Runs as
// one transaction.
func (s *Service) ProcessBodyExit(bodyID uint, input *types.ProcessExitRequestBody, processedBy string) (*models.BodyExit, error) {
	if problems := validateExit(input); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	exit := &models.BodyExit{
		BodyID:       bodyID,
		ExitType:     types.ExitType(input.ExitType),
		ExitDate:     time.Now(),
		ReceiverName: input.ReceiverName,
		ReceiverID:   input.ReceiverID,
		ApprovedBy:   input.ApprovedBy,
		Notes:        input.Notes,
	}
	err := s.store.Transact(func(tx store.Gateway) error {
		body, err := tx.GetBody(bodyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Body", ID: bodyID}
			}
			return &PersistenceError{Op: "lookup body", Err: err}
		}
		if body.Status == types.BODY_RELEASED {
			return &ConflictError{Reason: "body has already been released"}
		}
		active, err := tx.ActiveAllocationsForBody(bodyID)
		if err != nil {
			return &PersistenceError{Op: "list active allocations", Err: err}
		}
		for i := range active {
			allocation := &active[i]
			actual := allocation.CurrentDuration()
			allocation.Status = types.ALLOCATION_RELEASED
			allocation.ReleasedDate = &exit.ExitDate
			allocation.ReleasedBy = &processedBy
			allocation.ActualDurationDays = &actual
			if err := tx.UpdateAllocation(allocation); err != nil {
				return &PersistenceError{Op: "release allocation", Err: err}
			}
		}
		if err := tx.CreateExit(exit); err != nil {
			return &PersistenceError{Op: "record exit", Err: err}
		}
		body.Status = types.BODY_RELEASED
		if err := tx.UpdateBody(body); err != nil {
			return &PersistenceError{Op: "update body status", Err: err}
		}
		movement := &models.Movement{
			BodyID:     bodyID,
			ToLocation: string(exit.ExitType),
			MovedBy:    processedBy,
			Reason:     "body exit",
			MovedAt:    exit.ExitDate,
		}
		if err := tx.CreateMovement(movement); err != nil {
			return &PersistenceError{Op: "record movement", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	InvalidateReportCaches()
	return exit, nil
}

// ListExits returns all recorded exits.
func (s *Service) ListExits() ([]models.BodyExit, error) {
	exits, err := s.store.ListExits()
	if err != nil {
		return nil, &PersistenceError{Op: "list exits", Err: err}
	}
	return exits, nil
}
