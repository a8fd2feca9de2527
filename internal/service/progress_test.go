package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

func completedLessons(n int) []models.Lesson {
	lessons := make([]models.Lesson, 0, n+2)
	for i := 0; i < n; i++ {
		lessons = append(lessons, models.Lesson{Status: models.LessonStatusCompleted})
	}
	lessons = append(lessons,
		models.Lesson{Status: models.LessonStatusScheduled},
		models.Lesson{Status: models.LessonStatusCancelled},
	)
	return lessons
}

func TestComputeProgressEmpty(t *testing.T) {
	result := ComputeProgress(nil, nil)

	require.Equal(t, ProgressResult{
		Percent:            0,
		CompletedLessons:   0,
		TotalLessonsTarget: TotalLessonsTarget,
		TheoryStatus:       ExamNotTaken,
		PracticalStatus:    ExamNotTaken,
	}, result)
}

func TestComputeProgressLessonsOnly(t *testing.T) {
	for k := 0; k <= TotalLessonsTarget; k++ {
		result := ComputeProgress(completedLessons(k), nil)
		require.Equal(t, int(math.Round(60*float64(k)/10)), result.Percent, "k=%d", k)
		require.Equal(t, k, result.CompletedLessons)
	}
}

func TestComputeProgressCapsLessonContribution(t *testing.T) {
	for _, k := range []int{10, 11, 25} {
		result := ComputeProgress(completedLessons(k), nil)
		require.Equal(t, 60, result.Percent, "k=%d", k)
		require.Equal(t, k, result.CompletedLessons)
	}
}

func TestComputeProgressBothExamsPassed(t *testing.T) {
	exams := []models.Exam{
		{Type: models.ExamTypePractical, Result: models.ExamResultPassed, Date: day(2024, 3, 1)},
		{Type: models.ExamTypeTheory, Result: models.ExamResultPassed, Date: day(2024, 2, 1)},
	}

	for _, k := range []int{0, 3, 7, 10, 12} {
		ratio := math.Min(float64(k)/10, 1)
		result := ComputeProgress(completedLessons(k), exams)
		require.Equal(t, int(math.Round(60*ratio))+40, result.Percent, "k=%d", k)
		require.Equal(t, "passed", result.TheoryStatus)
		require.Equal(t, "passed", result.PracticalStatus)
	}
}

func TestComputeProgressUsesMostRecentDecidedExam(t *testing.T) {
	exams := []models.Exam{
		{Type: models.ExamTypeTheory, Result: models.ExamResultPending, Date: day(2024, 4, 1)},
		{Type: models.ExamTypeTheory, Result: models.ExamResultFailed, Date: day(2024, 2, 1)},
		{Type: models.ExamTypeTheory, Result: models.ExamResultPassed, Date: day(2024, 1, 1)},
	}

	result := ComputeProgress(nil, exams)
	require.Equal(t, "failed", result.TheoryStatus)
	require.Equal(t, ExamNotTaken, result.PracticalStatus)
	require.Equal(t, 0, result.Percent)
}

func TestComputeProgressSortsUnorderedExams(t *testing.T) {
	exams := []models.Exam{
		{Type: models.ExamTypeTheory, Result: models.ExamResultFailed, Date: day(2024, 1, 1)},
		{Type: models.ExamTypePractical, Result: models.ExamResultFailed, Date: day(2024, 1, 10)},
		{Type: models.ExamTypeTheory, Result: models.ExamResultPassed, Date: day(2024, 3, 1)},
		{Type: models.ExamTypePractical, Result: models.ExamResultPassed, Date: day(2024, 2, 10)},
	}

	result := ComputeProgress(completedLessons(5), exams)
	require.Equal(t, "passed", result.TheoryStatus)
	require.Equal(t, "passed", result.PracticalStatus)
	require.Equal(t, 70, result.Percent)

	require.Equal(t, models.ExamResultFailed, exams[0].Result, "input order must not change")
	require.Equal(t, day(2024, 1, 1), exams[0].Date)
}

func TestComputeProgressPendingOnlyIsNotTaken(t *testing.T) {
	exams := []models.Exam{
		{Type: models.ExamTypePractical, Result: models.ExamResultPending, Date: day(2024, 5, 1)},
	}

	result := ComputeProgress(completedLessons(2), exams)
	require.Equal(t, ExamNotTaken, result.PracticalStatus)
	require.Equal(t, 12, result.Percent)
}
