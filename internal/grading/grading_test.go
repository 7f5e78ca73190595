package grading

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collegium/collegium-api/internal/models"
)

func TestSubjectTotalHalvesEndsem(t *testing.T) {
	total := SubjectTotal(ExamMarks{Quiz1: 8, Midsem: 20, Quiz2: 9, Endsem: 50})
	require.Equal(t, 62.0, total)
}

func TestSubjectTotalMissingExamsDefaultToZero(t *testing.T) {
	total := SubjectTotal(ExamMarks{Quiz1: 10})
	require.Equal(t, 10.0, total)
}

func TestExamMarksSet(t *testing.T) {
	var m ExamMarks
	m.Set(models.ExamQuiz1, 7)
	m.Set(models.ExamMidsem, 18)
	m.Set(models.ExamQuiz2, 6)
	m.Set(models.ExamEndsem, 40)
	require.Equal(t, ExamMarks{Quiz1: 7, Midsem: 18, Quiz2: 6, Endsem: 40}, m)
}

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		percent float64
		want    string
	}{
		{81, "AA"},
		{80.999, "AB"},
		{71, "AB"},
		{70.999, "BB"},
		{61, "BB"},
		{60.999, "BC"},
		{53, "BC"},
		{52.999, "CC"},
		{47, "CC"},
		{46.999, "PASS"},
		{40, "PASS"},
		{39.999, "XX"},
		{0, "XX"},
		{100, "AA"},
	}

	for _, tc := range cases {
		require.Equalf(t, tc.want, LetterGrade(tc.percent), "percent=%v", tc.percent)
	}
}

func TestSGPA(t *testing.T) {
	require.Equal(t, 10.0, SGPA(24, 24))
	require.Equal(t, 7.5, SGPA(18, 24))
	require.Equal(t, 6.67, SGPA(16, 24))
	require.Equal(t, 0.0, SGPA(10, 0))
}

func TestBandsReturnsCopy(t *testing.T) {
	b := Bands()
	b[0].Label = "ZZ"
	require.Equal(t, "AA", LetterGrade(95))
}
