package models

import (
	"mrs/src/types"
	"time"
)

type Body struct {
	ID             uint             `gorm:"primarykey" json:"id"`
	TagNumber      string           `gorm:"uniqueIndex" json:"tag_number,omitempty"`
	FullName       string           `json:"full_name,omitempty"`
	Gender         string           `json:"gender,omitempty"`
	DateOfDeath    time.Time        `json:"date_of_death,omitempty"`
	Source         string           `json:"source,omitempty"`
	CauseOfDeath   string           `json:"cause_of_death,omitempty"`
	NextOfKinName  *string          `json:"next_of_kin_name,omitempty"`
	NextOfKinPhone *string          `json:"next_of_kin_phone,omitempty"`
	Verified       bool             `json:"verified,omitempty"`
	VerifiedBy     *string          `json:"verified_by,omitempty"`
	Status         types.BodyStatus `gorm:"default:'registered'" json:"status,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	ProviderID     uint             `gorm:"default:1" json:"provider_id,omitempty"`
	OutletID       uint             `gorm:"default:1" json:"outlet_id,omitempty"`

	Movements []Movement `gorm:"foreignKey:body_id" json:"movements,omitempty"`

	types.Timestamps
}

type BodyDocument struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	BodyID      uint   `json:"body_id,omitempty"`
	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	ObjectKey   string `json:"object_key,omitempty"`
	UploadedBy  string `json:"uploaded_by,omitempty"`

	Body Body `gorm:"foreignKey:body_id" json:"-"`

	types.Timestamps
}
