package service

import (
	"context"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/dto"
	"github.com/collegium/collegium-api/internal/models"
	"github.com/collegium/collegium-api/internal/repository"
)

// MarksService ingests batch mark sheets. The first submission for a sheet
// bulk-inserts every entry; later submissions only reconcile entries the
// caller flagged dirty, and only when the value actually changed.
type MarksService interface {
	SubmitSheet(ctx context.Context, payload dto.MarkSheetRequest, actor Actor) (dto.MarkSheetResponse, error)
}

type marksService struct {
	results   repository.ExamResultRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMarksService constructs a MarksService instance.
func NewMarksService(resultRepo repository.ExamResultRepository, subjectRepo repository.SubjectRepository, validate *validator.Validate, logger zerolog.Logger) MarksService {
	return &marksService{
		results:   resultRepo,
		subjects:  subjectRepo,
		validator: validate,
		logger:    logger.With().Str("component", "marks_service").Logger(),
	}
}

func (s *marksService) SubmitSheet(ctx context.Context, payload dto.MarkSheetRequest, actor Actor) (dto.MarkSheetResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MarkSheetResponse{}, err
	}

	if !actor.CanRecordAcademicData() {
		return dto.MarkSheetResponse{}, ErrForbidden
	}

	// Subject names are display-only beyond this point; everything keys on
	// the resolved subject ID.
	subject, err := s.subjects.GetByNameAndSemester(ctx, payload.SubjectName, payload.Semester)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarkSheetResponse{}, ErrSubjectNotFound
		}
		return dto.MarkSheetResponse{}, err
	}

	exam := models.ExamType(payload.Exam)

	existing, err := s.results.CountForSheet(ctx, exam, payload.Semester, payload.BatchCode, subject.ID)
	if err != nil {
		return dto.MarkSheetResponse{}, err
	}

	if existing == 0 {
		rows := make([]models.ExamResult, 0, len(payload.Entries))
		for _, entry := range payload.Entries {
			rows = append(rows, models.ExamResult{
				StudentID:   entry.StudentID,
				SubjectID:   subject.ID,
				SubjectName: subject.Name,
				Exam:        exam,
				Marks:       entry.Marks,
				Semester:    payload.Semester,
				BatchCode:   payload.BatchCode,
				IsUpdated:   false,
			})
		}

		if err := s.results.BulkCreate(ctx, rows); err != nil {
			return dto.MarkSheetResponse{}, err
		}

		s.logger.Info().Str("exam", payload.Exam).Str("batch_code", payload.BatchCode).Int("entries", len(rows)).Msg("mark sheet created")

		return dto.MarkSheetResponse{Created: true}, nil
	}

	updated := 0
	for _, entry := range payload.Entries {
		if !entry.IsUpdated {
			continue
		}

		key := repository.ExamResultKey{
			StudentID: entry.StudentID,
			SubjectID: subject.ID,
			Exam:      exam,
			Semester:  payload.Semester,
			BatchCode: payload.BatchCode,
		}

		row, err := s.results.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn().Uint("student_id", entry.StudentID).Str("exam", payload.Exam).Msg("dirty entry has no stored row, skipping")
				continue
			}
			return dto.MarkSheetResponse{}, err
		}

		if math.Abs(row.Marks-entry.Marks) < 1e-9 {
			continue
		}

		row.Marks = entry.Marks
		row.IsUpdated = false
		if err := s.results.Update(ctx, &row); err != nil {
			return dto.MarkSheetResponse{}, err
		}
		updated++
	}

	s.logger.Info().Str("exam", payload.Exam).Str("batch_code", payload.BatchCode).Int("updated", updated).Msg("mark sheet reconciled")

	return dto.MarkSheetResponse{Updated: true}, nil
}
