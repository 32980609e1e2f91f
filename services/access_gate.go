package services

import (
	"time"

	"github.com/KadariPavani/placement-training-backend/models"
)

// AccessGate decides whether a student may view or submit a quiz. It is a
// pure function over the quiz's status, targeting and window and the
// student's batch memberships.
type AccessGate struct {
	// EnforceWindow additionally requires now to fall inside
	// [ScheduledStart, ScheduledEnd]. Off by default.
	EnforceWindow bool
}

// Evaluate returns "" to allow, or a deny reason from errors.go.
func (g AccessGate) Evaluate(quiz *models.Quiz, access *models.StudentAccess, now time.Time) string {
	if quiz.Status != models.QuizStatusActive {
		return DenyQuizInactive
	}
	if !targeted(quiz, access) {
		return DenyNotTargeted
	}
	if g.EnforceWindow {
		if quiz.ScheduledStart != nil && now.Before(*quiz.ScheduledStart) {
			return DenyWindowNotOpen
		}
		if quiz.ScheduledEnd != nil && now.After(*quiz.ScheduledEnd) {
			return DenyWindowClosed
		}
	}
	return ""
}

func targeted(quiz *models.Quiz, access *models.StudentAccess) bool {
	if access == nil {
		return false
	}
	batchType := normalizeBatchType(quiz.BatchType)
	if batchType == models.BatchTypeNonCRT || batchType == models.BatchTypeBoth {
		if access.BatchID != "" && contains(quiz.AssignedBatches, access.BatchID) {
			return true
		}
	}
	if batchType == models.BatchTypePlacement || batchType == models.BatchTypeBoth {
		if access.PlacementTrainingBatchID != "" && contains(quiz.AssignedPlacementBatches, access.PlacementTrainingBatchID) {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
