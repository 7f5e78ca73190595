package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/models"
)

// AttendanceRepository defines data operations for attendance records. Day
// lookups always use the inclusive [00:00:00.000, 23:59:59.999] window of
// the given timestamp's calendar day.
type AttendanceRepository interface {
	FindForDay(ctx context.Context, studentID uint, subjectCode string, day time.Time) (models.AttendanceRecord, error)
	ListForDay(ctx context.Context, studentIDs []uint, day time.Time) ([]models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) dayQuery(ctx context.Context, day time.Time) *gorm.DB {
	start, end := models.DayBounds(day)
	return r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).
		Where("date >= ?", start).
		Where("date <= ?", end)
}

func (r *attendanceRepository) FindForDay(ctx context.Context, studentID uint, subjectCode string, day time.Time) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := r.dayQuery(ctx, day).
		Where("student_id = ?", studentID).
		Where("subject_code = ?", subjectCode).
		First(&record).Error; err != nil {
		return models.AttendanceRecord{}, err
	}

	return record, nil
}

func (r *attendanceRepository) ListForDay(ctx context.Context, studentIDs []uint, day time.Time) ([]models.AttendanceRecord, error) {
	if len(studentIDs) == 0 {
		return []models.AttendanceRecord{}, nil
	}

	var records []models.AttendanceRecord
	if err := r.dayQuery(ctx, day).
		Preload("Student").
		Where("student_id IN ?", studentIDs).
		Order("subject_code ASC, student_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
