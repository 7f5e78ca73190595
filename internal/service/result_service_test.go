package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/dto"
	"github.com/collegium/collegium-api/internal/models"
	"github.com/collegium/collegium-api/internal/repository"
)

type fakeCurriculumRepo struct {
	curricula map[string]models.Curriculum
}

func (f *fakeCurriculumRepo) GetByBatchAndSemester(_ context.Context, batchCode string, semester int) (models.Curriculum, error) {
	if curriculum, ok := f.curricula[fmt.Sprintf("%s:%d", batchCode, semester)]; ok {
		return curriculum, nil
	}
	return models.Curriculum{}, gorm.ErrRecordNotFound
}

type fakeSemesterResultRepo struct {
	rows    map[string]models.SemesterResult
	nextID  uint
	upserts int
}

func newFakeSemesterResultRepo() *fakeSemesterResultRepo {
	return &fakeSemesterResultRepo{rows: map[string]models.SemesterResult{}}
}

func semKey(studentID uint, semester int, session string) string {
	return fmt.Sprintf("%d:%d:%s", studentID, semester, session)
}

func (f *fakeSemesterResultRepo) GetByKey(_ context.Context, studentID uint, semester int, session string) (models.SemesterResult, error) {
	if row, ok := f.rows[semKey(studentID, semester, session)]; ok {
		return row, nil
	}
	return models.SemesterResult{}, gorm.ErrRecordNotFound
}

func (f *fakeSemesterResultRepo) Upsert(_ context.Context, result *models.SemesterResult) error {
	key := semKey(result.StudentID, result.Semester, result.Session)
	if existing, ok := f.rows[key]; ok {
		result.ID = existing.ID
	} else {
		f.nextID++
		result.ID = f.nextID
	}
	result.UpdatedAt = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	f.rows[key] = *result
	f.upserts++
	return nil
}

var _ repository.CurriculumRepository = (*fakeCurriculumRepo)(nil)
var _ repository.SemesterResultRepository = (*fakeSemesterResultRepo)(nil)

type resultFixture struct {
	students  *fakeStudentRepo
	curricula *fakeCurriculumRepo
	marks     *fakeExamResultRepo
	results   *fakeSemesterResultRepo
}

func newResultFixture() resultFixture {
	osSubject := models.Subject{ID: 7, Code: "CS401", Name: "Operating Systems", Credits: 4, Semester: 4}
	dbSubject := models.Subject{ID: 8, Code: "CS402", Name: "Databases", Credits: 4, Semester: 4}

	return resultFixture{
		students: &fakeStudentRepo{students: map[uint]models.Student{
			1: {ID: 1, Name: "Asha Rao", RollCode: "CSE-22-001", Branch: models.BranchCSE, Semester: 4, BatchCode: "CSEA22"},
		}},
		curricula: &fakeCurriculumRepo{curricula: map[string]models.Curriculum{
			"CSEA22:4": {
				ID:           1,
				BatchCode:    "CSEA22",
				Semester:     4,
				TotalCredits: 8,
				Subjects:     []models.Subject{osSubject, dbSubject},
			},
		}},
		marks:   &fakeExamResultRepo{},
		results: newFakeSemesterResultRepo(),
	}
}

func (f resultFixture) service(cache *redis.Client) ResultService {
	return NewResultService(f.students, f.curricula, f.marks, f.results, cache, time.Minute, testValidator(), testLogger())
}

func (f resultFixture) seedMark(subjectID uint, exam models.ExamType, marks float64) {
	f.marks.rows = append(f.marks.rows, models.ExamResult{
		ID:        uint(len(f.marks.rows) + 1),
		StudentID: 1,
		SubjectID: subjectID,
		Exam:      exam,
		Marks:     marks,
		Semester:  4,
		BatchCode: "CSEA22",
	})
}

func TestResultComputeAggregatesAndPersists(t *testing.T) {
	fixture := newResultFixture()
	// Operating Systems: 8 + 20 + 9 + 50/2 = 62, passes.
	fixture.seedMark(7, models.ExamQuiz1, 8)
	fixture.seedMark(7, models.ExamMidsem, 20)
	fixture.seedMark(7, models.ExamQuiz2, 9)
	fixture.seedMark(7, models.ExamEndsem, 50)
	// Databases: only quiz1 recorded, total 10, fails.
	fixture.seedMark(8, models.ExamQuiz1, 10)

	svc := fixture.service(nil)
	response, err := svc.Compute(context.Background(), dto.ResultComputeRequest{StudentID: 1, Semester: 4, Session: "2024-25"})
	require.NoError(t, err)

	require.Equal(t, 72.0, response.TotalMarks)
	require.Equal(t, 8, response.TotalCredits)
	require.Equal(t, 4, response.EarnedCredits)
	require.Equal(t, 5.0, response.SGPA)
	require.Equal(t, "CC", response.Grade)
	require.Len(t, fixture.results.rows, 1)
}

func TestResultComputeIsIdempotent(t *testing.T) {
	fixture := newResultFixture()
	fixture.seedMark(7, models.ExamQuiz1, 8)
	fixture.seedMark(7, models.ExamMidsem, 20)
	fixture.seedMark(7, models.ExamQuiz2, 9)
	fixture.seedMark(7, models.ExamEndsem, 50)

	svc := fixture.service(nil)
	request := dto.ResultComputeRequest{StudentID: 1, Semester: 4, Session: "2024-25"}

	first, err := svc.Compute(context.Background(), request)
	require.NoError(t, err)
	second, err := svc.Compute(context.Background(), request)
	require.NoError(t, err)

	require.Equal(t, first.TotalMarks, second.TotalMarks)
	require.Equal(t, first.SGPA, second.SGPA)
	require.Equal(t, first.Grade, second.Grade)
	require.Len(t, fixture.results.rows, 1)
	require.Equal(t, 2, fixture.results.upserts)
}

func TestResultComputeStudentNotFound(t *testing.T) {
	fixture := newResultFixture()
	svc := fixture.service(nil)

	_, err := svc.Compute(context.Background(), dto.ResultComputeRequest{StudentID: 99, Semester: 4, Session: "2024-25"})
	require.ErrorIs(t, err, ErrStudentNotFound)
	require.Empty(t, fixture.results.rows, "no partial result may be persisted")
}

func TestResultComputeCurriculumNotFound(t *testing.T) {
	fixture := newResultFixture()
	svc := fixture.service(nil)

	_, err := svc.Compute(context.Background(), dto.ResultComputeRequest{StudentID: 1, Semester: 6, Session: "2024-25"})
	require.ErrorIs(t, err, ErrCurriculumNotFound)
	require.Empty(t, fixture.results.rows)
}

func setupTestCache(t *testing.T) *redis.Client {
	t.Helper()
	server := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func TestResultComputeWritesThroughCache(t *testing.T) {
	fixture := newResultFixture()
	fixture.seedMark(7, models.ExamQuiz1, 8)
	cache := setupTestCache(t)

	svc := fixture.service(cache)
	computed, err := svc.Compute(context.Background(), dto.ResultComputeRequest{StudentID: 1, Semester: 4, Session: "2024-25"})
	require.NoError(t, err)

	cached, err := svc.Get(context.Background(), 1, 4, "2024-25")
	require.NoError(t, err)
	require.Equal(t, computed, cached)

	// Re-read must succeed from cache alone.
	fixture.results.rows = map[string]models.SemesterResult{}
	cachedAgain, err := svc.Get(context.Background(), 1, 4, "2024-25")
	require.NoError(t, err)
	require.Equal(t, computed, cachedAgain)
}

func TestResultGetFallsBackToStorage(t *testing.T) {
	fixture := newResultFixture()
	fixture.seedMark(7, models.ExamQuiz1, 8)
	cache := setupTestCache(t)

	svc := fixture.service(nil)
	_, err := svc.Compute(context.Background(), dto.ResultComputeRequest{StudentID: 1, Semester: 4, Session: "2024-25"})
	require.NoError(t, err)

	warm := fixture.service(cache)
	stored, err := warm.Get(context.Background(), 1, 4, "2024-25")
	require.NoError(t, err)
	require.Equal(t, "XX", stored.Grade)

	_, err = warm.Get(context.Background(), 1, 4, "2019-20")
	require.ErrorIs(t, err, ErrResultNotFound)
}
