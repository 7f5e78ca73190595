// Package grading holds the fixed academic policy: how the four internal
// assessments combine into a subject total, the pass cutoff for earning
// credits, and the letter-grade bands. The numbers are institutional policy
// and are kept in one table so they stay auditable.
package grading

import (
	"math"

	"github.com/collegium/collegium-api/internal/models"
)

// PassThreshold is the subject total at or above which a subject's credits
// count as earned.
const PassThreshold = 40.0

// ExamMarks carries the per-assessment marks for one subject. Assessments
// with no recorded entry stay at zero.
type ExamMarks struct {
	Quiz1  float64
	Midsem float64
	Quiz2  float64
	Endsem float64
}

// Set assigns the mark for the given exam type.
func (m *ExamMarks) Set(exam models.ExamType, marks float64) {
	switch exam {
	case models.ExamQuiz1:
		m.Quiz1 = marks
	case models.ExamMidsem:
		m.Midsem = marks
	case models.ExamQuiz2:
		m.Quiz2 = marks
	case models.ExamEndsem:
		m.Endsem = marks
	}
}

// SubjectTotal combines the assessments into the subject aggregate. The
// end-semester exam counts at half weight relative to the other three.
func SubjectTotal(m ExamMarks) float64 {
	return m.Quiz1 + m.Midsem + m.Quiz2 + m.Endsem/2
}

// Band maps a lower percentage bound to its letter grade.
type Band struct {
	Min   float64
	Label string
}

// bands is evaluated top-down; the first band whose Min the percentage
// meets or exceeds wins.
var bands = []Band{
	{Min: 81, Label: "AA"},
	{Min: 71, Label: "AB"},
	{Min: 61, Label: "BB"},
	{Min: 53, Label: "BC"},
	{Min: 47, Label: "CC"},
	{Min: 40, Label: "PASS"},
}

// Bands returns a copy of the grade band table.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// LetterGrade maps the percentage-equivalent score (sgpa*10) to its letter
// grade. Scores below every band fail with "XX".
func LetterGrade(percent float64) string {
	for _, band := range bands {
		if percent >= band.Min {
			return band.Label
		}
	}
	return "XX"
}

// SGPA derives the 0-10 grade-point average from earned and total credits,
// rounded to two decimals.
func SGPA(earnedCredits, totalCredits int) float64 {
	if totalCredits <= 0 {
		return 0
	}
	return Round2(float64(earnedCredits) / float64(totalCredits) * 10)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
