package models

import (
	"mrs/src/types"
	"time"

	"gorm.io/gorm"
)

// AllocationRow is the persisted shape of a StorageAllocation. The column
// names follow the hospital records schema; nothing outside ToRow/FromRow
// should touch them.
type AllocationRow struct {
	ID                   uint                   `gorm:"primarykey" json:"id"`
	BodyID               uint                   `gorm:"column:SA_Body_FK" json:"SA_Body_FK"`
	StorageUnitID        uint                   `gorm:"column:SA_Storage_Unit_FK" json:"SA_Storage_Unit_FK"`
	AllocatedDate        time.Time              `gorm:"column:SA_Allocated_Date" json:"SA_Allocated_Date"`
	ExpectedDurationDays *int                   `gorm:"column:SA_Expected_Duration_Days" json:"SA_Expected_Duration_Days,omitempty"`
	ActualDurationDays   *int                   `gorm:"column:SA_Actual_Duration_Days" json:"SA_Actual_Duration_Days,omitempty"`
	Status               types.AllocationStatus `gorm:"column:SA_Status;default:'Active'" json:"SA_Status"`
	PriorityLevel        types.PriorityLevel    `gorm:"column:SA_Priority_Level;default:'Normal'" json:"SA_Priority_Level"`
	TemperatureRequired  float64                `gorm:"column:SA_Temperature_Required" json:"SA_Temperature_Required"`
	CurrentTemperature   *float64               `gorm:"column:SA_Current_Temperature" json:"SA_Current_Temperature,omitempty"`
	AllocatedBy          string                 `gorm:"column:SA_Allocated_By" json:"SA_Allocated_By"`
	ReleasedDate         *time.Time             `gorm:"column:SA_Released_Date" json:"SA_Released_Date,omitempty"`
	ReleasedBy           *string                `gorm:"column:SA_Released_By" json:"SA_Released_By,omitempty"`
	Notes                string                 `gorm:"column:SA_Notes" json:"SA_Notes,omitempty"`
	AllocationType       types.AllocationType   `gorm:"column:SA_Allocation_Type;default:'Manual'" json:"SA_Allocation_Type"`
	ProviderID           uint                   `gorm:"column:SA_Provider_FK;default:1" json:"SA_Provider_FK"`
	OutletID             uint                   `gorm:"column:SA_Outlet_FK;default:1" json:"SA_Outlet_FK"`
	AddedOn              time.Time              `gorm:"column:SA_Added_On;autoCreateTime:nano" json:"SA_Added_On"`
	ModifiedOn           time.Time              `gorm:"column:SA_Modified_On;autoUpdateTime:nano" json:"SA_Modified_On"`
	DeletedAt            gorm.DeletedAt         `gorm:"index" json:"deleted_at,omitempty"`
}

func (AllocationRow) TableName() string {
	return "storage_allocations"
}

// ToRow maps the semantic model to the storage schema. Derived values
// (current duration, effective status) are intentionally absent.
func (a *StorageAllocation) ToRow() *AllocationRow {
	return &AllocationRow{
		ID:                   a.ID,
		BodyID:               a.BodyID,
		StorageUnitID:        a.StorageUnitID,
		AllocatedDate:        a.AllocatedDate,
		ExpectedDurationDays: a.ExpectedDurationDays,
		ActualDurationDays:   a.ActualDurationDays,
		Status:               a.Status,
		PriorityLevel:        a.PriorityLevel,
		TemperatureRequired:  a.TemperatureRequired,
		CurrentTemperature:   a.CurrentTemperature,
		AllocatedBy:          a.AllocatedBy,
		ReleasedDate:         a.ReleasedDate,
		ReleasedBy:           a.ReleasedBy,
		Notes:                a.Notes,
		AllocationType:       a.AllocationType,
		ProviderID:           a.ProviderID,
		OutletID:             a.OutletID,
		AddedOn:              a.AddedOn,
		ModifiedOn:           a.ModifiedOn,
	}
}

func (r *AllocationRow) FromRow() *StorageAllocation {
	return &StorageAllocation{
		ID:                   r.ID,
		BodyID:               r.BodyID,
		StorageUnitID:        r.StorageUnitID,
		AllocatedDate:        r.AllocatedDate,
		ExpectedDurationDays: r.ExpectedDurationDays,
		ActualDurationDays:   r.ActualDurationDays,
		Status:               r.Status,
		PriorityLevel:        r.PriorityLevel,
		TemperatureRequired:  r.TemperatureRequired,
		CurrentTemperature:   r.CurrentTemperature,
		AllocatedBy:          r.AllocatedBy,
		ReleasedDate:         r.ReleasedDate,
		ReleasedBy:           r.ReleasedBy,
		Notes:                r.Notes,
		AllocationType:       r.AllocationType,
		ProviderID:           r.ProviderID,
		OutletID:             r.OutletID,
		AddedOn:              r.AddedOn,
		ModifiedOn:           r.ModifiedOn,
	}
}
