package models

import "time"

// AttendanceRecord is one row per (student, subject code, calendar day).
// Uniqueness is enforced by find-or-create over a day-bounded range query,
// not by a database constraint; see AttendanceRepository.FindForDay.
type AttendanceRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index:idx_attendance_student_subject" json:"student_id"`
	SubjectID   uint      `gorm:"not null" json:"subject_id"`
	SubjectCode string    `gorm:"size:16;not null;index:idx_attendance_student_subject" json:"subject_code"`
	SubjectName string    `gorm:"size:255;not null" json:"subject_name"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	IsPresent   bool      `gorm:"not null" json:"is_present"`
	Semester    int       `gorm:"not null" json:"semester"`
	MarkedByID  uint      `gorm:"not null" json:"marked_by_id"`
	Student     Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MarkedBy    Professor `gorm:"foreignKey:MarkedByID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DayBounds returns the inclusive day window [00:00:00.000, 23:59:59.999]
// for the calendar day of t in t's location. Attendance lookups must match
// exactly this range; anything else silently targets the wrong day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}
