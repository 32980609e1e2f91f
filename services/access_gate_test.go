package services

import (
	"testing"
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
)

func gateQuiz(batchType, status string) *models.Quiz {
	return &models.Quiz{
		Status:                   status,
		BatchType:                batchType,
		AssignedBatches:          []string{"reg-1"},
		AssignedPlacementBatches: []string{"pt-1"},
	}
}

func TestAccessGate(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		quiz   *models.Quiz
		access *models.StudentAccess
		want   string
	}{
		{
			name:   "inactive quiz denied before targeting",
			quiz:   gateQuiz(models.BatchTypeBoth, models.QuizStatusInactive),
			access: &models.StudentAccess{BatchID: "reg-1"},
			want:   DenyQuizInactive,
		},
		{
			name:   "regular member of targeted noncrt quiz",
			quiz:   gateQuiz(models.BatchTypeNonCRT, models.QuizStatusActive),
			access: &models.StudentAccess{BatchID: "reg-1"},
			want:   "",
		},
		{
			name:   "placement member of targeted placement quiz",
			quiz:   gateQuiz(models.BatchTypePlacement, models.QuizStatusActive),
			access: &models.StudentAccess{PlacementTrainingBatchID: "pt-1"},
			want:   "",
		},
		{
			name:   "placement member cannot enter a noncrt-only quiz",
			quiz:   gateQuiz(models.BatchTypeNonCRT, models.QuizStatusActive),
			access: &models.StudentAccess{PlacementTrainingBatchID: "pt-1"},
			want:   DenyNotTargeted,
		},
		{
			name:   "regular member cannot enter a placement-only quiz",
			quiz:   gateQuiz(models.BatchTypePlacement, models.QuizStatusActive),
			access: &models.StudentAccess{BatchID: "reg-1"},
			want:   DenyNotTargeted,
		},
		{
			name:   "both type admits either membership",
			quiz:   gateQuiz(models.BatchTypeBoth, models.QuizStatusActive),
			access: &models.StudentAccess{PlacementTrainingBatchID: "pt-1"},
			want:   "",
		},
		{
			name:   "legacy regular alias behaves as noncrt",
			quiz:   gateQuiz(models.BatchTypeRegular, models.QuizStatusActive),
			access: &models.StudentAccess{BatchID: "reg-1"},
			want:   "",
		},
		{
			name:   "member of a different batch",
			quiz:   gateQuiz(models.BatchTypeBoth, models.QuizStatusActive),
			access: &models.StudentAccess{BatchID: "reg-other", PlacementTrainingBatchID: "pt-other"},
			want:   DenyNotTargeted,
		},
		{
			name: "unknown student",
			quiz: gateQuiz(models.BatchTypeBoth, models.QuizStatusActive),
			want: DenyNotTargeted,
		},
	}

	gate := AccessGate{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Evaluate(tt.quiz, tt.access, now); got != tt.want {
				t.Errorf("Evaluate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAccessGateWindowEnforcement(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	quiz := gateQuiz(models.BatchTypeNonCRT, models.QuizStatusActive)
	quiz.ScheduledStart = &start
	quiz.ScheduledEnd = &end
	access := &models.StudentAccess{BatchID: "reg-1"}

	tests := []struct {
		name    string
		enforce bool
		now     time.Time
		want    string
	}{
		{"before window without enforcement", false, start.Add(-time.Hour), ""},
		{"before window with enforcement", true, start.Add(-time.Hour), DenyWindowNotOpen},
		{"inside window with enforcement", true, start.Add(time.Hour), ""},
		{"after window with enforcement", true, end.Add(time.Minute), DenyWindowClosed},
		{"after window without enforcement", false, end.Add(time.Minute), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := AccessGate{EnforceWindow: tt.enforce}
			if got := gate.Evaluate(quiz, access, tt.now); got != tt.want {
				t.Errorf("Evaluate = %q, want %q", got, tt.want)
			}
		})
	}
}
