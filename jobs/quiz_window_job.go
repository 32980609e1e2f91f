package jobs

import (
	"context"
	"log"
	"time"

	"github.com/KadariPavani/placement-training-backend/database"
)

// CloseExpiredQuizzes archives active quizzes whose scheduled window has
// passed, so students stop seeing them without trainer action.
func CloseExpiredQuizzes() {
	log.Println("Running job: CloseExpiredQuizzes...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	closed, err := database.NewQuizStore().CloseExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Error closing expired quizzes: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("Closed %d expired quizzes", closed)
	}
}
