package models

import "time"

// SemesterResult is the computed aggregate for one (student, semester,
// session). The composite unique index backs the upsert so that repeated
// computation can never produce a second row.
type SemesterResult struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"not null;uniqueIndex:idx_semester_results_key" json:"student_id"`
	Semester      int       `gorm:"not null;uniqueIndex:idx_semester_results_key" json:"semester"`
	Session       string    `gorm:"size:16;not null;uniqueIndex:idx_semester_results_key" json:"session"`
	TotalMarks    float64   `gorm:"not null" json:"total_marks"`
	TotalCredits  int       `gorm:"not null" json:"total_credits"`
	EarnedCredits int       `gorm:"not null" json:"earned_credits"`
	SGPA          float64   `gorm:"not null" json:"sgpa"`
	Grade         string    `gorm:"size:8;not null" json:"grade"`
	Student       Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
