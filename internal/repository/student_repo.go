package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/models"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
	ListByBranchSemester(ctx context.Context, branch models.Branch, semester int) ([]models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) ListByBranchSemester(ctx context.Context, branch models.Branch, semester int) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).
		Where("branch = ?", branch).
		Where("semester = ?", semester).
		Order("roll_code ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}
