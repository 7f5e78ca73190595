package models

import "time"

// Subject is a course offering. Semester is an explicit column rather than
// a digit embedded in the code, so lookups never parse the code format.
type Subject struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Code       string    `gorm:"size:16;uniqueIndex;not null" json:"code"`
	Name       string    `gorm:"size:255;not null;index" json:"name"`
	Credits    int       `gorm:"not null" json:"credits"`
	Practical  bool      `gorm:"not null;default:false" json:"practical"`
	Department string    `gorm:"size:64;not null" json:"department"`
	Semester   int       `gorm:"not null;index" json:"semester"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
