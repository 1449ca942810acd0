package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredState represents a serialized game kept in the database
type StoredState struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key       string             `bson:"key" json:"key"`         // e.g. "bingoState:<session id>"
	Payload   string             `bson:"payload" json:"payload"` // JSON produced by DrawController.Serialize
	ExpiresAt time.Time          `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
