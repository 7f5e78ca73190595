package models

import "time"

// Curriculum assigns the set of subjects a batch takes in a given semester,
// together with the credit pool the SGPA is computed against. TotalCredits
// is authoritative; it is not re-derived from the subject list.
type Curriculum struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BatchCode    string    `gorm:"size:16;not null;uniqueIndex:idx_curriculum_key" json:"batch_code"`
	Semester     int       `gorm:"not null;uniqueIndex:idx_curriculum_key" json:"semester"`
	TotalCredits int       `gorm:"not null" json:"total_credits"`
	Subjects     []Subject `gorm:"many2many:curriculum_subjects" json:"subjects"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
