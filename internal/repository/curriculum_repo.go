package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/models"
)

// CurriculumRepository looks up the batch-semester subject assignment.
type CurriculumRepository interface {
	GetByBatchAndSemester(ctx context.Context, batchCode string, semester int) (models.Curriculum, error)
}

type curriculumRepository struct {
	db *gorm.DB
}

// NewCurriculumRepository constructs a curriculum repository.
func NewCurriculumRepository(db *gorm.DB) CurriculumRepository {
	return &curriculumRepository{db: db}
}

func (r *curriculumRepository) GetByBatchAndSemester(ctx context.Context, batchCode string, semester int) (models.Curriculum, error) {
	var curriculum models.Curriculum
	if err := r.db.WithContext(ctx).
		Preload("Subjects").
		Where("batch_code = ?", batchCode).
		Where("semester = ?", semester).
		First(&curriculum).Error; err != nil {
		return models.Curriculum{}, err
	}

	return curriculum, nil
}
