package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BatchKind selects which of the two disjoint batch taxonomies a lookup
// runs against.
type BatchKind string

const (
	BatchKindRegular   BatchKind = "regular"
	BatchKindPlacement BatchKind = "placement"
)

// Batch is a regular (non-CRT) cohort grouped by college and year.
type Batch struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BatchNumber string             `bson:"batchNumber" json:"batch_number"`
	Name        string             `bson:"name" json:"name"`
	College     string             `bson:"college,omitempty" json:"college,omitempty"`
	Year        int                `bson:"year,omitempty" json:"year,omitempty"`
}

// PlacementTrainingBatch is a CRT cohort grouped by college, year and
// technology stack.
type PlacementTrainingBatch struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BatchNumber string             `bson:"batchNumber" json:"batch_number"`
	Name        string             `bson:"name" json:"name"`
	College     string             `bson:"college,omitempty" json:"college,omitempty"`
	Year        int                `bson:"year,omitempty" json:"year,omitempty"`
	TechStack   string             `bson:"techStack,omitempty" json:"tech_stack,omitempty"`
}

// BatchRef is the slim view the resolver works with, common to both kinds.
type BatchRef struct {
	ID          string `bson:"-" json:"id"`
	BatchNumber string `bson:"batchNumber" json:"batch_number"`
	Name        string `bson:"name" json:"name"`
}
