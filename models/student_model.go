package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Student struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName                 string             `bson:"fullName" json:"full_name"`
	Email                    string             `bson:"email" json:"email"`
	RollNumber               string             `bson:"rollNumber,omitempty" json:"roll_number,omitempty"`
	BatchID                  string             `bson:"batchId,omitempty" json:"batch_id,omitempty"`
	PlacementTrainingBatchID string             `bson:"placementTrainingBatchId,omitempty" json:"placement_training_batch_id,omitempty"`
	CRTOptedIn               bool               `bson:"crtOptedIn" json:"crt_opted_in"`
}

// StudentAccess is the slice of a student record the access gate needs.
type StudentAccess struct {
	BatchID                  string `bson:"batchId,omitempty"`
	PlacementTrainingBatchID string `bson:"placementTrainingBatchId,omitempty"`
}
