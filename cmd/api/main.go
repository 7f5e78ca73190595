package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegium/collegium-api/internal/config"
	"github.com/collegium/collegium-api/internal/database"
	"github.com/collegium/collegium-api/internal/handler"
	"github.com/collegium/collegium-api/internal/middleware"
	"github.com/collegium/collegium-api/internal/models"
	"github.com/collegium/collegium-api/internal/repository"
	"github.com/collegium/collegium-api/internal/router"
	"github.com/collegium/collegium-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Professor{},
		&models.Subject{},
		&models.Curriculum{},
		&models.ExamResult{},
		&models.AttendanceRecord{},
		&models.SemesterResult{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	curriculumRepo := repository.NewCurriculumRepository(db)
	examResultRepo := repository.NewExamResultRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	semesterResultRepo := repository.NewSemesterResultRepository(db)

	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, subjectRepo, validate, logger)
	marksService := service.NewMarksService(examResultRepo, subjectRepo, validate, logger)
	resultService := service.NewResultService(studentRepo, curriculumRepo, examResultRepo, semesterResultRepo, redisClient, cfg.ResultCacheTTL, validate, logger)

	attendanceHandler := handler.NewAttendanceHandler(attendanceService, logger)
	marksHandler := handler.NewMarksHandler(marksService, logger)
	resultHandler := handler.NewResultHandler(resultService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AttendanceHandler: attendanceHandler,
		MarksHandler:      marksHandler,
		ResultHandler:     resultHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
