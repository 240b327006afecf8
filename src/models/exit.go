package models

import (
	"mrs/src/types"
	"time"
)

type BodyExit struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	BodyID       uint           `json:"body_id,omitempty"`
	ExitType     types.ExitType `json:"exit_type,omitempty"`
	ExitDate     time.Time      `json:"exit_date,omitempty"`
	ReceiverName string         `json:"receiver_name,omitempty"`
	ReceiverID   *string        `json:"receiver_id,omitempty"`
	ApprovedBy   string         `json:"approved_by,omitempty"`
	Notes        string         `json:"notes,omitempty"`

	Body Body `gorm:"foreignKey:body_id" json:"body,omitempty"`

	types.Timestamps
}
