package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/config"
	"github.com/collegium/collegium-api/internal/dto"
	"github.com/collegium/collegium-api/internal/handler"
	"github.com/collegium/collegium-api/internal/models"
	"github.com/collegium/collegium-api/internal/repository"
	"github.com/collegium/collegium-api/internal/router"
	"github.com/collegium/collegium-api/internal/service"
	"github.com/collegium/collegium-api/internal/utils"
)

func setupApp(t *testing.T, actor service.Actor) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.Professor{},
		&models.Subject{},
		&models.Curriculum{},
		&models.ExamResult{},
		&models.AttendanceRecord{},
		&models.SemesterResult{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	examResultRepo := repository.NewExamResultRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	semesterResultRepo := repository.NewSemesterResultRepository(db)

	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, subjectRepo, validate, logger)
	marksService := service.NewMarksService(examResultRepo, subjectRepo, validate, logger)
	resultService := service.NewResultService(studentRepo, curriculumRepo, examResultRepo, semesterResultRepo, nil, time.Minute, validate, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		MarksHandler:      handler.NewMarksHandler(marksService, logger),
		ResultHandler:     handler.NewResultHandler(resultService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", actor.ID)
			c.Locals("user_role", actor.Role)
			return c.Next()
		},
	})

	return app, db
}

func createStudent(t *testing.T, db *gorm.DB, roll string) models.Student {
	t.Helper()
	student := models.Student{
		Name:      "Student " + roll,
		Email:     roll + "@college.test",
		RollCode:  roll,
		Branch:    models.BranchCSE,
		Section:   "A",
		Semester:  4,
		BatchCode: "CSEA22",
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func createSubject(t *testing.T, db *gorm.DB, code, name string) models.Subject {
	t.Helper()
	subject := models.Subject{
		Code:       code,
		Name:       name,
		Credits:    4,
		Department: "CSE",
		Semester:   4,
	}
	require.NoError(t, db.Create(&subject).Error)
	return subject
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, utils.APIResponse) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, utils.APIResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func decodeData(t *testing.T, envelope utils.APIResponse, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestAttendanceMarkCreateThenFlip(t *testing.T) {
	professor := service.Actor{ID: 42, Role: service.RoleProfessor}
	app, db := setupApp(t, professor)
	student := createStudent(t, db, "CSE-22-301")
	createSubject(t, db, "CS431", "Compiler Design")

	day := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)
	mark := dto.AttendanceMarkRequest{
		StudentID:   student.ID,
		SubjectCode: "CS431",
		SubjectName: "Compiler Design",
		Date:        day,
		IsPresent:   func() *bool { v := true; return &v }(),
		Semester:    4,
	}

	status, envelope := postJSON(t, app, "/api/v1/attendance", mark)
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, envelope.Success)

	var first dto.AttendanceRecordResponse
	decodeData(t, envelope, &first)
	require.True(t, first.IsPresent)
	require.Equal(t, professor.ID, first.MarkedByID)

	// Second mark later the same day flips the flag on the same record.
	mark.Date = day.Add(5 * time.Hour)
	mark.IsPresent = func() *bool { v := false; return &v }()
	status, envelope = postJSON(t, app, "/api/v1/attendance", mark)
	require.Equal(t, fiber.StatusOK, status)

	var second dto.AttendanceRecordResponse
	decodeData(t, envelope, &second)
	require.False(t, second.IsPresent)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.AttendanceRecord{}).
		Where("student_id = ?", student.ID).
		Where("subject_code = ?", "CS431").
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAttendanceMarkForbiddenForStudents(t *testing.T) {
	app, db := setupApp(t, service.Actor{ID: 7, Role: service.RoleStudent})
	student := createStudent(t, db, "CSE-22-302")
	createSubject(t, db, "CS432", "Computer Networks")

	mark := dto.AttendanceMarkRequest{
		StudentID:   student.ID,
		SubjectCode: "CS432",
		SubjectName: "Computer Networks",
		Date:        time.Now(),
		IsPresent:   func() *bool { v := true; return &v }(),
		Semester:    4,
	}

	status, envelope := postJSON(t, app, "/api/v1/attendance", mark)
	require.Equal(t, fiber.StatusForbidden, status)
	require.False(t, envelope.Success)
}

func TestAttendanceListByDayEmptyRosterVersusMalformedBatch(t *testing.T) {
	app, _ := setupApp(t, service.Actor{ID: 42, Role: service.RoleProfessor})

	status, envelope := getJSON(t, app, "/api/v1/attendance?batch_code=EEEB23&semester=7&date=2025-03-10")
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, envelope.Success)

	var records []dto.AttendanceRecordResponse
	decodeData(t, envelope, &records)
	require.Empty(t, records)

	status, envelope = getJSON(t, app, "/api/v1/attendance?batch_code=QQQX99&semester=7&date=2025-03-10")
	require.Equal(t, fiber.StatusBadRequest, status)
	require.False(t, envelope.Success)
}

func TestAttendanceRosterEndpoint(t *testing.T) {
	app, db := setupApp(t, service.Actor{ID: 42, Role: service.RoleProfessor})
	createStudent(t, db, "CSE-22-303")
	createSubject(t, db, "CS433", "Software Engineering")

	status, envelope := getJSON(t, app, fmt.Sprintf("/api/v1/attendance/roster?batch_code=CSEA22&semester=4&subject=%s", "Software+Engineering"))
	require.Equal(t, fiber.StatusOK, status)

	var roster dto.RosterResponse
	decodeData(t, envelope, &roster)
	require.Equal(t, "CS433", roster.Subject.Code)
	require.NotEmpty(t, roster.Students)
}
