package models

import "mrs/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role  string `gorm:"default:'staff'" json:"role,omitempty"`

	types.Timestamps
}

type SequenceCounter struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Prefix string `gorm:"uniqueIndex:idx_prefix_day" json:"prefix"`
	Day    string `gorm:"uniqueIndex:idx_prefix_day" json:"day"`
	Value  int    `json:"value"`

	types.Timestamps
}
