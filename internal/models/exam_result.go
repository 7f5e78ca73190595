package models

import "time"

// ExamType identifies one of the fixed internal assessments.
type ExamType string

const (
	ExamQuiz1  ExamType = "quiz1"
	ExamMidsem ExamType = "midsem"
	ExamQuiz2  ExamType = "quiz2"
	ExamEndsem ExamType = "endsem"
)

// Valid reports whether the exam type is a supported value.
func (e ExamType) Valid() bool {
	switch e {
	case ExamQuiz1, ExamMidsem, ExamQuiz2, ExamEndsem:
		return true
	default:
		return false
	}
}

// ExamTypes lists the assessments that feed the semester aggregate.
func ExamTypes() []ExamType {
	return []ExamType{ExamQuiz1, ExamMidsem, ExamQuiz2, ExamEndsem}
}

// ExamResult is one recorded mark entry per (student, subject, exam) within
// a semester and batch. SubjectName is display-only denormalization; any
// lookup goes through SubjectID. IsUpdated gates re-processing on sheet
// resubmission.
type ExamResult struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;uniqueIndex:idx_exam_results_key" json:"student_id"`
	SubjectID   uint      `gorm:"not null;uniqueIndex:idx_exam_results_key" json:"subject_id"`
	SubjectName string    `gorm:"size:255;not null" json:"subject_name"`
	Exam        ExamType  `gorm:"size:16;not null;uniqueIndex:idx_exam_results_key" json:"exam"`
	Marks       float64   `gorm:"not null" json:"marks"`
	Semester    int       `gorm:"not null;uniqueIndex:idx_exam_results_key" json:"semester"`
	BatchCode   string    `gorm:"size:16;not null;uniqueIndex:idx_exam_results_key" json:"batch_code"`
	IsUpdated   bool      `gorm:"not null;default:false" json:"is_updated"`
	Student     Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Subject     Subject   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
