package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/models"
)

// ExamResultKey is the business key locating one mark entry.
type ExamResultKey struct {
	StudentID uint
	SubjectID uint
	Exam      models.ExamType
	Semester  int
	BatchCode string
}

// ExamResultRepository defines data operations for recorded exam marks.
type ExamResultRepository interface {
	ListByStudentSemester(ctx context.Context, studentID uint, semester int, exams []models.ExamType) ([]models.ExamResult, error)
	CountForSheet(ctx context.Context, exam models.ExamType, semester int, batchCode string, subjectID uint) (int64, error)
	BulkCreate(ctx context.Context, results []models.ExamResult) error
	GetByKey(ctx context.Context, key ExamResultKey) (models.ExamResult, error)
	Update(ctx context.Context, result *models.ExamResult) error
}

type examResultRepository struct {
	db *gorm.DB
}

// NewExamResultRepository instantiates the repository.
func NewExamResultRepository(db *gorm.DB) ExamResultRepository {
	return &examResultRepository{db: db}
}

func (r *examResultRepository) ListByStudentSemester(ctx context.Context, studentID uint, semester int, exams []models.ExamType) ([]models.ExamResult, error) {
	var results []models.ExamResult
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("semester = ?", semester).
		Where("exam IN ?", exams).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *examResultRepository) CountForSheet(ctx context.Context, exam models.ExamType, semester int, batchCode string, subjectID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExamResult{}).
		Where("exam = ?", exam).
		Where("semester = ?", semester).
		Where("batch_code = ?", batchCode).
		Where("subject_id = ?", subjectID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *examResultRepository) BulkCreate(ctx context.Context, results []models.ExamResult) error {
	if len(results) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&results).Error
}

func (r *examResultRepository) GetByKey(ctx context.Context, key ExamResultKey) (models.ExamResult, error) {
	var result models.ExamResult
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", key.StudentID).
		Where("subject_id = ?", key.SubjectID).
		Where("exam = ?", key.Exam).
		Where("semester = ?", key.Semester).
		Where("batch_code = ?", key.BatchCode).
		First(&result).Error; err != nil {
		return models.ExamResult{}, err
	}

	return result, nil
}

func (r *examResultRepository) Update(ctx context.Context, result *models.ExamResult) error {
	return r.db.WithContext(ctx).Save(result).Error
}
