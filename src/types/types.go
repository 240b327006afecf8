package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BodyStatus string

const (
	BODY_REGISTERED BodyStatus = "registered"
	BODY_VERIFIED   BodyStatus = "verified"
	BODY_ALLOCATED  BodyStatus = "allocated"
	BODY_RELEASED   BodyStatus = "released"
)

type AllocationStatus string

const (
	ALLOCATION_ACTIVE      AllocationStatus = "Active"
	ALLOCATION_INACTIVE    AllocationStatus = "Inactive"
	ALLOCATION_RELEASED    AllocationStatus = "Released"
	ALLOCATION_MAINTENANCE AllocationStatus = "Maintenance"

	// Display-only value returned by EffectiveStatus, never stored.
	ALLOCATION_OVERDUE AllocationStatus = "Overdue"
)

type PriorityLevel string

const (
	PRIORITY_LOW    PriorityLevel = "Low"
	PRIORITY_NORMAL PriorityLevel = "Normal"
	PRIORITY_HIGH   PriorityLevel = "High"
	PRIORITY_URGENT PriorityLevel = "Urgent"
)

type AllocationType string

const (
	ALLOCATION_MANUAL    AllocationType = "Manual"
	ALLOCATION_AUTOMATIC AllocationType = "Automatic"
	ALLOCATION_UPDATED   AllocationType = "Updated"
)

type UnitStatus string

const (
	UNIT_OPERATIONAL UnitStatus = "operational"
	UNIT_MAINTENANCE UnitStatus = "maintenance"
	UNIT_OFFLINE     UnitStatus = "offline"
)

type ExitType string

const (
	EXIT_RELEASED    ExitType = "released"
	EXIT_TRANSFERRED ExitType = "transferred"
	EXIT_BURIED      ExitType = "buried"
	EXIT_CREMATED    ExitType = "cremated"
)

type RegisterBodyRequestBody struct {
	FullName       string  `json:"full_name" binding:"required"`
	Gender         string  `json:"gender,omitempty"`
	DateOfDeath    string  `json:"date_of_death" binding:"required" time_format:"2006-01-02 15:04:05 -07:00"`
	Source         string  `json:"source,omitempty"`
	CauseOfDeath   string  `json:"cause_of_death,omitempty"`
	NextOfKinName  *string `json:"next_of_kin_name,omitempty"`
	NextOfKinPhone *string `json:"next_of_kin_phone,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

type UpdateBodyRequestBody struct {
	FullName       *string `json:"full_name,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	CauseOfDeath   *string `json:"cause_of_death,omitempty"`
	NextOfKinName  *string `json:"next_of_kin_name,omitempty"`
	NextOfKinPhone *string `json:"next_of_kin_phone,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type VerifyBodyRequestBody struct {
	VerifiedBy string `json:"verified_by" binding:"required"`
}

type CreateStorageUnitRequestBody struct {
	Code        string  `json:"code" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=fridge freezer"`
	Capacity    uint    `json:"capacity" binding:"required,min=1"`
	Temperature float64 `json:"temperature" binding:"storagetemp"`
}

type CreateAllocationRequestBody struct {
	BodyID               uint     `json:"body_id" binding:"required"`
	StorageUnitID        uint     `json:"storage_unit_id" binding:"required"`
	ExpectedDurationDays *int     `json:"expected_duration_days,omitempty" binding:"omitempty,min=1"`
	PriorityLevel        string   `json:"priority_level,omitempty"`
	TemperatureRequired  *float64 `json:"temperature_required,omitempty" binding:"omitempty,storagetemp"`
	Notes                string   `json:"notes,omitempty"`
}

type ReleaseAllocationRequestBody struct {
	Notes string `json:"notes,omitempty"`
}

type ChangePriorityRequestBody struct {
	PriorityLevel string `json:"priority_level" binding:"required,oneof=Low Normal High Urgent"`
}

type SetAllocationStatusRequestBody struct {
	Status string `json:"status" binding:"required,oneof=Active Inactive Maintenance"`
}

type ProcessExitRequestBody struct {
	ExitType     string  `json:"exit_type" binding:"required,oneof=released transferred buried cremated"`
	ReceiverName string  `json:"receiver_name,omitempty"`
	ReceiverID   *string `json:"receiver_id,omitempty"`
	ApprovedBy   string  `json:"approved_by,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type CreateMovementRequestBody struct {
	BodyID       uint   `json:"body_id" binding:"required"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location" binding:"required"`
	Reason       string `json:"reason,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ReportQueryFilters struct {
	From string `form:"from,omitempty"`
	To   string `form:"to,omitempty"`
}

type AllocationQueryFilters struct {
	Status  string `form:"status,omitempty"`
	UnitID  uint   `form:"unit,omitempty"`
	Overdue bool   `form:"overdue,omitempty"`
}

type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type Environment string

const (
	Local      Environment = "local"
	Test       Environment = "test"
	Production Environment = "production"
)
