package services

const (
	RoleStudent = "student"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// CallerContext carries the authenticated identity into every operation.
// Built once from the verified JWT claims; never mutated.
type CallerContext struct {
	ID      string
	Role    string
	Subject string
}
