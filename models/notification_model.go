package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BatchID   string             `bson:"batchId" json:"batch_id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Category  string             `bson:"category" json:"category"`
	Type      string             `bson:"type" json:"type"`
	Actor     string             `bson:"actor" json:"actor"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
