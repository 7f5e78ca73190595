package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/dto"
	"github.com/collegium/collegium-api/internal/models"
	"github.com/collegium/collegium-api/internal/observability"
	"github.com/collegium/collegium-api/internal/repository"
)

// ErrForbidden indicates the caller's role may not perform the operation.
var ErrForbidden = errors.New("caller role not permitted")

// ErrInvalidBatchCode indicates a batch code too short or with an unknown
// branch prefix.
var ErrInvalidBatchCode = errors.New("invalid batch code")

// ErrSubjectNotFound indicates the referenced subject does not exist.
var ErrSubjectNotFound = errors.New("subject not found")

// AttendanceService reconciles daily attendance: exactly one record per
// (student, subject code, calendar day), last write winning on the presence
// flag.
type AttendanceService interface {
	Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor Actor) (dto.AttendanceRecordResponse, error)
	ListByDay(ctx context.Context, payload dto.AttendanceDayRequest) ([]dto.AttendanceRecordResponse, error)
	Roster(ctx context.Context, payload dto.RosterRequest) (dto.RosterResponse, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	students   repository.StudentRepository
	subjects   repository.SubjectRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewAttendanceService constructs an AttendanceService instance.
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, studentRepo repository.StudentRepository, subjectRepo repository.SubjectRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance: attendanceRepo,
		students:   studentRepo,
		subjects:   subjectRepo,
		validator:  validate,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor Actor) (dto.AttendanceRecordResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceRecordResponse{}, err
	}

	if !actor.CanRecordAcademicData() {
		return dto.AttendanceRecordResponse{}, ErrForbidden
	}

	// Find-then-write on the business key. Not atomic: concurrent marks for
	// the same (student, subject, day) race with last-write-wins.
	record, err := s.attendance.FindForDay(ctx, payload.StudentID, payload.SubjectCode, payload.Date)
	switch {
	case err == nil:
		record.IsPresent = *payload.IsPresent
		record.SubjectName = payload.SubjectName
		record.Semester = payload.Semester
		if err := s.attendance.Update(ctx, &record); err != nil {
			return dto.AttendanceRecordResponse{}, err
		}
		observability.AttendanceMarks().WithLabelValues("updated").Inc()
		s.logger.Info().Uint("student_id", payload.StudentID).Str("subject_code", payload.SubjectCode).Msg("attendance updated")

	case errors.Is(err, gorm.ErrRecordNotFound):
		subject, err := s.subjects.GetByCode(ctx, payload.SubjectCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.AttendanceRecordResponse{}, ErrSubjectNotFound
			}
			return dto.AttendanceRecordResponse{}, err
		}

		record = models.AttendanceRecord{
			StudentID:   payload.StudentID,
			SubjectID:   subject.ID,
			SubjectCode: payload.SubjectCode,
			SubjectName: payload.SubjectName,
			Date:        payload.Date,
			IsPresent:   *payload.IsPresent,
			Semester:    payload.Semester,
			MarkedByID:  actor.ID,
		}
		if err := s.attendance.Create(ctx, &record); err != nil {
			return dto.AttendanceRecordResponse{}, err
		}
		observability.AttendanceMarks().WithLabelValues("created").Inc()
		s.logger.Info().Uint("student_id", payload.StudentID).Str("subject_code", payload.SubjectCode).Msg("attendance created")

	default:
		return dto.AttendanceRecordResponse{}, err
	}

	return dto.NewAttendanceRecordResponse(record), nil
}

func (s *attendanceService) ListByDay(ctx context.Context, payload dto.AttendanceDayRequest) ([]dto.AttendanceRecordResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	roster, err := s.rosterStudents(ctx, payload.BatchCode, payload.Semester)
	if err != nil {
		return nil, err
	}

	if len(roster) == 0 {
		// An empty roster is a valid "no data" outcome, not an error.
		return []dto.AttendanceRecordResponse{}, nil
	}

	ids := make([]uint, 0, len(roster))
	for _, student := range roster {
		ids = append(ids, student.ID)
	}

	records, err := s.attendance.ListForDay(ctx, ids, payload.Date)
	if err != nil {
		return nil, err
	}

	return dto.NewAttendanceRecordResponseSlice(records), nil
}

func (s *attendanceService) Roster(ctx context.Context, payload dto.RosterRequest) (dto.RosterResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RosterResponse{}, err
	}

	subject, err := s.subjects.GetByNameAndSemester(ctx, payload.SubjectName, payload.Semester)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RosterResponse{}, ErrSubjectNotFound
		}
		return dto.RosterResponse{}, err
	}

	roster, err := s.rosterStudents(ctx, payload.BatchCode, payload.Semester)
	if err != nil {
		return dto.RosterResponse{}, err
	}

	students := make([]dto.StudentLite, 0, len(roster))
	for _, student := range roster {
		students = append(students, dto.NewStudentLite(student))
	}

	return dto.RosterResponse{
		Subject:  dto.NewSubjectResponse(subject),
		Students: students,
	}, nil
}

func (s *attendanceService) rosterStudents(ctx context.Context, batchCode string, semester int) ([]models.Student, error) {
	branch, ok := models.BranchFromBatchCode(batchCode)
	if !ok || !branch.Valid() {
		return nil, ErrInvalidBatchCode
	}

	return s.students.ListByBranchSemester(ctx, branch, semester)
}
