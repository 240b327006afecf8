package models

import "mrs/src/types"

type StorageUnit struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Code        string           `gorm:"uniqueIndex" json:"code,omitempty"`
	Type        string           `gorm:"default:'fridge'" json:"type,omitempty"`
	Capacity    uint             `json:"capacity,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
	Status      types.UnitStatus `gorm:"default:'operational'" json:"status,omitempty"`

	types.Timestamps
}
