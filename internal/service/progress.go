package service

import (
	"math"
	"sort"

	"github.com/noah-isme/drivedesk-api/internal/models"
)

const (
	// TotalLessonsTarget is the number of completed lessons that counts as a full lesson score.
	TotalLessonsTarget = 10
	// ExamNotTaken is reported when no decided exam of a type exists.
	ExamNotTaken = "not taken"

	lessonsWeight   = 0.6
	theoryWeight    = 0.2
	practicalWeight = 0.2
)

// ProgressResult summarises how far a student is through training.
type ProgressResult struct {
	Percent            int
	CompletedLessons   int
	TotalLessonsTarget int
	TheoryStatus       string
	PracticalStatus    string
}

// ComputeProgress scores completed lessons and the latest decided exam of each type.
// Exams may be passed in any order; the most recent non-pending exam per type wins.
func ComputeProgress(lessons []models.Lesson, exams []models.Exam) ProgressResult {
	completed := 0
	for _, lesson := range lessons {
		if lesson.Status == models.LessonStatusCompleted {
			completed++
		}
	}

	lessonsRatio := math.Min(float64(completed)/TotalLessonsTarget, 1)

	ordered := make([]models.Exam, len(exams))
	copy(ordered, exams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date)
	})

	theory := latestDecided(ordered, models.ExamTypeTheory)
	practical := latestDecided(ordered, models.ExamTypePractical)

	score := lessonsRatio*lessonsWeight +
		examScore(theory)*theoryWeight +
		examScore(practical)*practicalWeight

	return ProgressResult{
		Percent:            int(math.Round(score * 100)),
		CompletedLessons:   completed,
		TotalLessonsTarget: TotalLessonsTarget,
		TheoryStatus:       examStatus(theory),
		PracticalStatus:    examStatus(practical),
	}
}

// latestDecided expects exams ordered most recent first.
func latestDecided(exams []models.Exam, examType models.ExamType) *models.Exam {
	for i := range exams {
		if exams[i].Type == examType && exams[i].Result != models.ExamResultPending {
			return &exams[i]
		}
	}
	return nil
}

func examScore(exam *models.Exam) float64 {
	if exam != nil && exam.Result == models.ExamResultPassed {
		return 1
	}
	return 0
}

func examStatus(exam *models.Exam) string {
	if exam == nil {
		return ExamNotTaken
	}
	return string(exam.Result)
}
