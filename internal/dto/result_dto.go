package dto

import (
	"time"

	"github.com/collegium/collegium-api/internal/models"
)

// ResultComputeRequest identifies the semester aggregate to (re)compute.
type ResultComputeRequest struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	Semester  int    `json:"semester" validate:"required,min=1,max=8"`
	Session   string `json:"session" validate:"required"`
}

// SemesterResultResponse serializes a computed semester result.
type SemesterResultResponse struct {
	StudentID     uint      `json:"student_id"`
	Semester      int       `json:"semester"`
	Session       string    `json:"session"`
	TotalMarks    float64   `json:"total_marks"`
	TotalCredits  int       `json:"total_credits"`
	EarnedCredits int       `json:"earned_credits"`
	SGPA          float64   `json:"sgpa"`
	Grade         string    `json:"grade"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSemesterResultResponse converts a semester result model into a DTO.
func NewSemesterResultResponse(model models.SemesterResult) SemesterResultResponse {
	return SemesterResultResponse{
		StudentID:     model.StudentID,
		Semester:      model.Semester,
		Session:       model.Session,
		TotalMarks:    model.TotalMarks,
		TotalCredits:  model.TotalCredits,
		EarnedCredits: model.EarnedCredits,
		SGPA:          model.SGPA,
		Grade:         model.Grade,
		UpdatedAt:     model.UpdatedAt,
	}
}
