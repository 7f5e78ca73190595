package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegium/collegium-api/internal/models"
)

// SubjectRepository resolves subjects to their stable identifiers. Callers
// resolve free-text names here once at the boundary and use SubjectID from
// then on.
type SubjectRepository interface {
	GetByCode(ctx context.Context, code string) (models.Subject, error)
	GetByNameAndSemester(ctx context.Context, name string, semester int) (models.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository constructs a subject repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) GetByCode(ctx context.Context, code string) (models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&subject).Error; err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}

func (r *subjectRepository) GetByNameAndSemester(ctx context.Context, name string, semester int) (models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Where("semester = ?", semester).
		First(&subject).Error; err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}
