package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/collegium/collegium-api/internal/models"
)

// SemesterResultRepository persists computed semester aggregates.
type SemesterResultRepository interface {
	GetByKey(ctx context.Context, studentID uint, semester int, session string) (models.SemesterResult, error)
	Upsert(ctx context.Context, result *models.SemesterResult) error
}

type semesterResultRepository struct {
	db *gorm.DB
}

// NewSemesterResultRepository instantiates the repository.
func NewSemesterResultRepository(db *gorm.DB) SemesterResultRepository {
	return &semesterResultRepository{db: db}
}

func (r *semesterResultRepository) GetByKey(ctx context.Context, studentID uint, semester int, session string) (models.SemesterResult, error) {
	var result models.SemesterResult
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("semester = ?", semester).
		Where("session = ?", session).
		First(&result).Error; err != nil {
		return models.SemesterResult{}, err
	}

	return result, nil
}

// Upsert replaces every computed field for the (student, semester, session)
// key in a single atomic statement backed by the composite unique index.
func (r *semesterResultRepository) Upsert(ctx context.Context, result *models.SemesterResult) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "semester"}, {Name: "session"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_marks", "total_credits", "earned_credits", "sgpa", "grade", "updated_at",
		}),
	}).Create(result).Error
}
