package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trainer teaches exactly one subject; quiz authoring is validated
// against it.
type Trainer struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"full_name"`
	Email    string             `bson:"email" json:"email"`
	Subject  string             `bson:"subject" json:"subject"`
}
