package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Branch is the three-letter department code a student belongs to. The
// batch code always starts with it, which is how rosters are resolved.
type Branch string

const (
	BranchCSE Branch = "CSE"
	BranchECE Branch = "ECE"
	BranchEEE Branch = "EEE"
	BranchMEC Branch = "MEC"
	BranchCIV Branch = "CIV"
)

// Valid reports whether the branch is one of the supported departments.
func (b Branch) Valid() bool {
	switch b {
	case BranchCSE, BranchECE, BranchEEE, BranchMEC, BranchCIV:
		return true
	default:
		return false
	}
}

// Student represents an enrolled learner. Students are soft-deleted only;
// academic records always resolve against the full history.
type Student struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	RollCode  string         `gorm:"size:32;uniqueIndex;not null" json:"roll_code"`
	Branch    Branch         `gorm:"size:8;not null;index:idx_students_branch_sem" json:"branch"`
	Section   string         `gorm:"size:4;not null" json:"section"`
	Semester  int            `gorm:"not null;index:idx_students_branch_sem" json:"semester"`
	BatchCode string         `gorm:"size:16;not null;index" json:"batch_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BatchCodeFor derives the cohort code from branch, section and intake year.
func BatchCodeFor(branch Branch, section string, year int) string {
	return fmt.Sprintf("%s%s%02d", strings.ToUpper(string(branch)), strings.ToUpper(section), year%100)
}

// BranchFromBatchCode extracts the department prefix from a batch code.
// The first three characters encode the branch.
func BranchFromBatchCode(batchCode string) (Branch, bool) {
	if len(batchCode) < 3 {
		return "", false
	}
	return Branch(strings.ToUpper(batchCode[:3])), true
}
