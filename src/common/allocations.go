package common

import (
	"errors"
	"log"
	"mrs/src/models"
	"mrs/src/store"
	"mrs/src/types"
	"time"
)

// Service coordinates the multi-step record operations the HTTP layer
// delegates to. The gateway is injected at boot; nothing here reaches for
// ambient state.
type Service struct {
	store store.Gateway
}

func NewService(g store.Gateway) *Service {
	return &Service{store: g}
}

func (s *Service) Store() store.Gateway {
	return s.store
}

// CreateAllocation assigns a body to a storage unit. Validation runs before
// any write; referenced records are looked up inside the transaction so the
// occupancy check and the insert see the same state.
func (s *Service) CreateAllocation(input *types.CreateAllocationRequestBody, allocatedBy string) (*models.StorageAllocation, error) {
	allocation := &models.StorageAllocation{
		BodyID:               input.BodyID,
		StorageUnitID:        input.StorageUnitID,
		AllocatedDate:        time.Now(),
		ExpectedDurationDays: input.ExpectedDurationDays,
		Status:               types.ALLOCATION_ACTIVE,
		PriorityLevel:        types.PRIORITY_NORMAL,
		TemperatureRequired:  models.DefaultRequiredTemperature,
		AllocatedBy:          allocatedBy,
		Notes:                input.Notes,
		AllocationType:       types.ALLOCATION_MANUAL,
		ProviderID:           1,
		OutletID:             1,
	}
	if input.PriorityLevel != "" {
		allocation.PriorityLevel = types.PriorityLevel(input.PriorityLevel)
	}
	if input.TemperatureRequired != nil {
		allocation.TemperatureRequired = *input.TemperatureRequired
	}
	if problems := allocation.Validate(); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	err := s.store.Transact(func(tx store.Gateway) error {
		body, err := tx.GetBody(allocation.BodyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Body", ID: allocation.BodyID}
			}
			return &PersistenceError{Op: "lookup body", Err: err}
		}
		unit, err := tx.GetStorageUnit(allocation.StorageUnitID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Storage unit", ID: allocation.StorageUnitID}
			}
			return &PersistenceError{Op: "lookup storage unit", Err: err}
		}
		if unit.Status != types.UNIT_OPERATIONAL {
			return &ConflictError{Reason: "storage unit is not operational"}
		}
		occupied, err := activeCountForUnit(tx, unit.ID)
		if err != nil {
			return &PersistenceError{Op: "count active allocations", Err: err}
		}
		if occupied >= int(unit.Capacity) {
			return &ConflictError{Reason: "storage unit is at capacity"}
		}
		if err := tx.CreateAllocation(allocation); err != nil {
			return &PersistenceError{Op: "create allocation", Err: err}
		}
		body.Status = types.BODY_ALLOCATED
		if err := tx.UpdateBody(body); err != nil {
			return &PersistenceError{Op: "update body status", Err: err}
		}
		movement := &models.Movement{
			BodyID:     body.ID,
			ToLocation: unit.Code,
			MovedBy:    allocatedBy,
			Reason:     "storage allocation",
			MovedAt:    allocation.AllocatedDate,
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
	return allocation, nil
}

// ReleaseAllocation ends an active allocation. Status is re-read inside the
// transaction so two concurrent release requests cannot both succeed.
func (s *Service) ReleaseAllocation(id uint, releasedBy string) (*models.StorageAllocation, error) {
	var released *models.StorageAllocation
	err := s.store.Transact(func(tx store.Gateway) error {
		allocation, err := tx.GetAllocation(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Allocation", ID: id}
			}
			return &PersistenceError{Op: "lookup allocation", Err: err}
		}
		if allocation.Status == types.ALLOCATION_RELEASED {
			return &ConflictError{Reason: "allocation has already been released"}
		}
		now := time.Now()
		actual := allocation.CurrentDuration()
		allocation.Status = types.ALLOCATION_RELEASED
		allocation.ReleasedDate = &now
		allocation.ReleasedBy = &releasedBy
		allocation.ActualDurationDays = &actual
		if err := tx.UpdateAllocation(allocation); err != nil {
			return &PersistenceError{Op: "release allocation", Err: err}
		}
		released = allocation
		return nil
	})
	if err != nil {
		return nil, err
	}
	InvalidateReportCaches()
	return released, nil
}

// UpdateAllocationTemperature records the latest reading for an allocation.
func (s *Service) UpdateAllocationTemperature(id uint, temperature float64) (*models.StorageAllocation, error) {
	var updated *models.StorageAllocation
	err := s.store.Transact(func(tx store.Gateway) error {
		allocation, err := tx.GetAllocation(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Allocation", ID: id}
			}
			return &PersistenceError{Op: "lookup allocation", Err: err}
		}
		allocation.CurrentTemperature = &temperature
		if err := tx.UpdateAllocation(allocation); err != nil {
			return &PersistenceError{Op: "update temperature", Err: err}
		}
		if temperature > allocation.TemperatureRequired+2.0 {
			log.Printf("Allocation [%d] temperature above requirement: %.1f > %.1f\n", id, temperature, allocation.TemperatureRequired)
		}
		updated = allocation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ChangeAllocationPriority assigns a new priority level.
func (s *Service) ChangeAllocationPriority(id uint, level types.PriorityLevel) (*models.StorageAllocation, error) {
	var updated *models.StorageAllocation
	err := s.store.Transact(func(tx store.Gateway) error {
		allocation, err := tx.GetAllocation(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Allocation", ID: id}
			}
			return &PersistenceError{Op: "lookup allocation", Err: err}
		}
		allocation.PriorityLevel = level
		if problems := allocation.Validate(); len(problems) > 0 {
			return &ValidationError{Problems: problems}
		}
		if err := tx.UpdateAllocation(allocation); err != nil {
			return &PersistenceError{Op: "change priority", Err: err}
		}
		updated = allocation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetAllocationStatus handles the Active/Inactive/Maintenance side
// transitions. Released is terminal and only reachable through
// ReleaseAllocation.
func (s *Service) SetAllocationStatus(id uint, status types.AllocationStatus) (*models.StorageAllocation, error) {
	if status == types.ALLOCATION_RELEASED || status == types.ALLOCATION_OVERDUE {
		return nil, &ValidationError{Problems: []string{"Invalid status value"}}
	}
	var updated *models.StorageAllocation
	err := s.store.Transact(func(tx store.Gateway) error {
		allocation, err := tx.GetAllocation(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Resource: "Allocation", ID: id}
			}
			return &PersistenceError{Op: "lookup allocation", Err: err}
		}
		if allocation.Status == types.ALLOCATION_RELEASED {
			return &ConflictError{Reason: "released allocation cannot change status"}
		}
		allocation.Status = status
		if problems := allocation.Validate(); len(problems) > 0 {
			return &ValidationError{Problems: problems}
		}
		if err := tx.UpdateAllocation(allocation); err != nil {
			return &PersistenceError{Op: "set allocation status", Err: err}
		}
		updated = allocation
		return nil
	})
	if err != nil {
		return nil, err
	}
	InvalidateReportCaches()
	return updated, nil
}

// GetAllocation loads one allocation.
func (s *Service) GetAllocation(id uint) (*models.StorageAllocation, error) {
	allocation, err := s.store.GetAllocation(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Allocation", ID: id}
		}
		return nil, &PersistenceError{Op: "lookup allocation", Err: err}
	}
	return allocation, nil
}

// ListAllocations applies the optional status/unit/overdue filters.
func (s *Service) ListAllocations(filters *types.AllocationQueryFilters) ([]models.StorageAllocation, error) {
	allocations, err := s.store.ListAllocations()
	if err != nil {
		return nil, &PersistenceError{Op: "list allocations", Err: err}
	}
	if filters == nil {
		return allocations, nil
	}
	filtered := make([]models.StorageAllocation, 0, len(allocations))
	for _, a := range allocations {
		if filters.Status != "" && a.Status != types.AllocationStatus(filters.Status) {
			continue
		}
		if filters.UnitID != 0 && a.StorageUnitID != filters.UnitID {
			continue
		}
		if filters.Overdue && !a.IsOverdue() {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered, nil
}

func activeCountForUnit(g store.Gateway, unitID uint) (int, error) {
	allocations, err := g.ListAllocations()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, a := range allocations {
		if a.StorageUnitID == unitID && a.Status == types.ALLOCATION_ACTIVE {
			count++
		}
	}
	return count, nil
}
