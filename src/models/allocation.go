package models

import (
	"math"
	"mrs/src/types"
	"time"
)

// DefaultRequiredTemperature is applied when an allocation is created
// without an explicit temperature requirement.
const DefaultRequiredTemperature = -18.0

// StorageAllocation is the sole source of truth for one body's occupancy of
// one storage unit. Domain logic works on these semantic fields only; the
// persisted column shape lives in AllocationRow and is reached exclusively
// through ToRow/FromRow.
type StorageAllocation struct {
	ID                   uint                   `json:"id"`
	BodyID               uint                   `json:"body_id"`
	StorageUnitID        uint                   `json:"storage_unit_id"`
	AllocatedDate        time.Time              `json:"allocated_date"`
	ExpectedDurationDays *int                   `json:"expected_duration_days,omitempty"`
	ActualDurationDays   *int                   `json:"actual_duration_days,omitempty"`
	Status               types.AllocationStatus `json:"status"`
	PriorityLevel        types.PriorityLevel    `json:"priority_level"`
	TemperatureRequired  float64                `json:"temperature_required"`
	CurrentTemperature   *float64               `json:"current_temperature,omitempty"`
	AllocatedBy          string                 `json:"allocated_by"`
	ReleasedDate         *time.Time             `json:"released_date,omitempty"`
	ReleasedBy           *string                `json:"released_by,omitempty"`
	Notes                string                 `json:"notes,omitempty"`
	AllocationType       types.AllocationType   `json:"allocation_type"`
	ProviderID           uint                   `json:"provider_id"`
	OutletID             uint                   `json:"outlet_id"`
	AddedOn              time.Time              `json:"added_on"`
	ModifiedOn           time.Time              `json:"modified_on"`

	Body        *Body        `gorm:"-" json:"body,omitempty"`
	StorageUnit *StorageUnit `gorm:"-" json:"storage_unit,omitempty"`
}

var validAllocationStatuses = map[types.AllocationStatus]bool{
	types.ALLOCATION_ACTIVE:      true,
	types.ALLOCATION_INACTIVE:    true,
	types.ALLOCATION_RELEASED:    true,
	types.ALLOCATION_MAINTENANCE: true,
}

var validPriorityLevels = map[types.PriorityLevel]bool{
	types.PRIORITY_LOW:    true,
	types.PRIORITY_NORMAL: true,
	types.PRIORITY_HIGH:   true,
	types.PRIORITY_URGENT: true,
}

// Validate reports every problem at once so the caller can surface the full
// list. An empty slice means the record is fit for persistence.
func (a *StorageAllocation) Validate() []string {
	problems := []string{}
	if a.BodyID == 0 {
		problems = append(problems, "Body ID is required")
	}
	if a.StorageUnitID == 0 {
		problems = append(problems, "Storage unit ID is required")
	}
	if a.AllocatedBy == "" {
		problems = append(problems, "Allocated by is required")
	}
	if a.Status != "" && !validAllocationStatuses[a.Status] {
		problems = append(problems, "Invalid status value")
	}
	if a.PriorityLevel != "" && !validPriorityLevels[a.PriorityLevel] {
		problems = append(problems, "Invalid priority level")
	}
	if a.ExpectedDurationDays != nil && *a.ExpectedDurationDays <= 0 {
		problems = append(problems, "Expected duration must be positive")
	}
	return problems
}

// CurrentDuration returns whole days elapsed since allocation, rounded up.
// The absolute difference guards against clock skew flipping the sign.
func (a *StorageAllocation) CurrentDuration() int {
	return a.CurrentDurationAt(time.Now())
}

func (a *StorageAllocation) CurrentDurationAt(now time.Time) int {
	if a.AllocatedDate.IsZero() {
		return 0
	}
	elapsed := now.Sub(a.AllocatedDate)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}

func (a *StorageAllocation) IsOverdue() bool {
	return a.isOverdueAt(time.Now())
}

func (a *StorageAllocation) isOverdueAt(now time.Time) bool {
	if a.ExpectedDurationDays == nil {
		return false
	}
	return a.CurrentDurationAt(now) > *a.ExpectedDurationDays
}

// EffectiveStatus is the display status: "Overdue" for an active allocation
// past its expected duration, the stored status otherwise. Never persisted.
func (a *StorageAllocation) EffectiveStatus() types.AllocationStatus {
	if a.Status == types.ALLOCATION_ACTIVE && a.IsOverdue() {
		return types.ALLOCATION_OVERDUE
	}
	return a.Status
}
