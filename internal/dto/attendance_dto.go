package dto

import (
	"time"

	"github.com/collegium/collegium-api/internal/models"
)

// AttendanceMarkRequest is the payload for recording one student's presence
// for a subject on a calendar day.
type AttendanceMarkRequest struct {
	StudentID   uint      `json:"student_id" validate:"required,gt=0"`
	SubjectCode string    `json:"subject_code" validate:"required"`
	SubjectName string    `json:"subject_name" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	IsPresent   *bool     `json:"is_present" validate:"required"`
	Semester    int       `json:"semester" validate:"required,min=1,max=8"`
}

// AttendanceDayRequest selects a batch's attendance for one calendar day.
type AttendanceDayRequest struct {
	BatchCode string    `json:"batch_code" validate:"required,min=3"`
	Semester  int       `json:"semester" validate:"required,min=1,max=8"`
	Date      time.Time `json:"date" validate:"required"`
}

// RosterRequest fetches the students of a batch alongside one resolved
// subject document.
type RosterRequest struct {
	BatchCode   string `json:"batch_code" validate:"required,min=3"`
	Semester    int    `json:"semester" validate:"required,min=1,max=8"`
	SubjectName string `json:"subject_name" validate:"required"`
}

// StudentLite summarizes a student for attendance and roster listings.
type StudentLite struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	RollCode string `json:"roll_code"`
}

// AttendanceRecordResponse serializes one attendance row.
type AttendanceRecordResponse struct {
	ID          uint        `json:"id"`
	Student     StudentLite `json:"student"`
	SubjectCode string      `json:"subject_code"`
	SubjectName string      `json:"subject_name"`
	Date        time.Time   `json:"date"`
	IsPresent   bool        `json:"is_present"`
	Semester    int         `json:"semester"`
	MarkedByID  uint        `json:"marked_by_id"`
}

// SubjectResponse serializes a subject document.
type SubjectResponse struct {
	ID         uint   `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Credits    int    `json:"credits"`
	Practical  bool   `json:"practical"`
	Department string `json:"department"`
	Semester   int    `json:"semester"`
}

// RosterResponse pairs the resolved subject with the batch roster.
type RosterResponse struct {
	Subject  SubjectResponse `json:"subject"`
	Students []StudentLite   `json:"students"`
}

// NewStudentLite converts a student model into its summary form.
func NewStudentLite(model models.Student) StudentLite {
	return StudentLite{
		ID:       model.ID,
		Name:     model.Name,
		RollCode: model.RollCode,
	}
}

// NewSubjectResponse converts a subject model into a DTO.
func NewSubjectResponse(model models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:         model.ID,
		Code:       model.Code,
		Name:       model.Name,
		Credits:    model.Credits,
		Practical:  model.Practical,
		Department: model.Department,
		Semester:   model.Semester,
	}
}

// NewAttendanceRecordResponse converts an attendance model into a DTO.
func NewAttendanceRecordResponse(model models.AttendanceRecord) AttendanceRecordResponse {
	response := AttendanceRecordResponse{
		ID:          model.ID,
		SubjectCode: model.SubjectCode,
		SubjectName: model.SubjectName,
		Date:        model.Date,
		IsPresent:   model.IsPresent,
		Semester:    model.Semester,
		MarkedByID:  model.MarkedByID,
	}

	if model.Student.ID != 0 {
		response.Student = NewStudentLite(model.Student)
	} else {
		response.Student = StudentLite{ID: model.StudentID}
	}

	return response
}

// NewAttendanceRecordResponseSlice converts attendance models into DTOs.
func NewAttendanceRecordResponseSlice(records []models.AttendanceRecord) []AttendanceRecordResponse {
	responses := make([]AttendanceRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewAttendanceRecordResponse(record))
	}

	return responses
}
