package models

import (
	"mrs/src/types"
	"time"
)

type Movement struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	BodyID       uint      `json:"body_id,omitempty"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	MovedBy      string    `json:"moved_by,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	MovedAt      time.Time `json:"moved_at,omitempty"`

	types.Timestamps
}
