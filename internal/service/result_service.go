package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/dto"
	"github.com/collegium/collegium-api/internal/grading"
	"github.com/collegium/collegium-api/internal/models"
	"github.com/collegium/collegium-api/internal/observability"
	"github.com/collegium/collegium-api/internal/repository"
)

// ErrStudentNotFound indicates the referenced student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ErrCurriculumNotFound indicates no subject assignment exists for the
// student's batch and semester.
var ErrCurriculumNotFound = errors.New("curriculum not found")

// ErrResultNotFound indicates the semester result was never computed.
var ErrResultNotFound = errors.New("semester result not found")

// ResultService computes the credit-weighted semester aggregate and
// persists exactly one row per (student, semester, session).
type ResultService interface {
	Compute(ctx context.Context, payload dto.ResultComputeRequest) (dto.SemesterResultResponse, error)
	Get(ctx context.Context, studentID uint, semester int, session string) (dto.SemesterResultResponse, error)
}

type resultService struct {
	students  repository.StudentRepository
	curricula repository.CurriculumRepository
	marks     repository.ExamResultRepository
	results   repository.SemesterResultRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResultService constructs a ResultService instance.
func NewResultService(studentRepo repository.StudentRepository, curriculumRepo repository.CurriculumRepository, markRepo repository.ExamResultRepository, resultRepo repository.SemesterResultRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) ResultService {
	return &resultService{
		students:  studentRepo,
		curricula: curriculumRepo,
		marks:     markRepo,
		results:   resultRepo,
		cache:     cache,
		cacheTTL:  ttl,
		validator: validate,
		logger:    logger.With().Str("component", "result_service").Logger(),
	}
}

func resultCacheKey(studentID uint, semester int, session string) string {
	return fmt.Sprintf("result:%d:%d:%s", studentID, semester, session)
}

func (s *resultService) Compute(ctx context.Context, payload dto.ResultComputeRequest) (dto.SemesterResultResponse, error) {
	tracer := otel.Tracer("github.com/collegium/collegium-api/internal/service/result")
	ctx, span := tracer.Start(ctx, "result.compute")
	span.SetAttributes(
		attribute.Int64("result.student_id", int64(payload.StudentID)),
		attribute.Int("result.semester", payload.Semester),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SemesterResultResponse{}, err
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "student_not_found")
			return dto.SemesterResultResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "student_lookup_failed")
		return dto.SemesterResultResponse{}, err
	}

	curriculum, err := s.curricula.GetByBatchAndSemester(ctx, student.BatchCode, payload.Semester)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "curriculum_not_found")
			return dto.SemesterResultResponse{}, ErrCurriculumNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "curriculum_lookup_failed")
		return dto.SemesterResultResponse{}, err
	}

	entries, err := s.marks.ListByStudentSemester(ctx, student.ID, payload.Semester, models.ExamTypes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marks_fetch_failed")
		return dto.SemesterResultResponse{}, err
	}

	marksBySubject := make(map[uint]grading.ExamMarks, len(curriculum.Subjects))
	for _, entry := range entries {
		m := marksBySubject[entry.SubjectID]
		m.Set(entry.Exam, entry.Marks)
		marksBySubject[entry.SubjectID] = m
	}

	var totalMarks float64
	earnedCredits := 0
	for _, subject := range curriculum.Subjects {
		// Subjects with no recorded entries aggregate to zero.
		total := grading.SubjectTotal(marksBySubject[subject.ID])
		totalMarks += total
		if total >= grading.PassThreshold {
			earnedCredits += subject.Credits
		}
	}

	sgpa := grading.SGPA(earnedCredits, curriculum.TotalCredits)
	result := models.SemesterResult{
		StudentID:     student.ID,
		Semester:      payload.Semester,
		Session:       payload.Session,
		TotalMarks:    totalMarks,
		TotalCredits:  curriculum.TotalCredits,
		EarnedCredits: earnedCredits,
		SGPA:          sgpa,
		Grade:         grading.LetterGrade(sgpa * 10),
	}

	if err := s.results.Upsert(ctx, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "result_upsert_failed")
		return dto.SemesterResultResponse{}, err
	}

	stored, err := s.results.GetByKey(ctx, student.ID, payload.Semester, payload.Session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "result_reload_failed")
		return dto.SemesterResultResponse{}, err
	}

	response := dto.NewSemesterResultResponse(stored)
	s.storeCache(ctx, response)
	observability.ResultComputations().WithLabelValues(response.Grade).Inc()

	s.logger.Info().
		Uint("student_id", student.ID).
		Int("semester", payload.Semester).
		Float64("sgpa", response.SGPA).
		Str("grade", response.Grade).
		Msg("semester result computed")

	return response, nil
}

func (s *resultService) Get(ctx context.Context, studentID uint, semester int, session string) (dto.SemesterResultResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, resultCacheKey(studentID, semester, session)).Result()
		if err == nil {
			var response dto.SemesterResultResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("result cache hit")
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read result cache")
		}
	}

	stored, err := s.results.GetByKey(ctx, studentID, semester, session)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SemesterResultResponse{}, ErrResultNotFound
		}
		return dto.SemesterResultResponse{}, err
	}

	response := dto.NewSemesterResultResponse(stored)
	s.storeCache(ctx, response)

	return response, nil
}

func (s *resultService) storeCache(ctx context.Context, response dto.SemesterResultResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	key := resultCacheKey(response.StudentID, response.Semester, response.Session)
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store result cache")
	}
}
