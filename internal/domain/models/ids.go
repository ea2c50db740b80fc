package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh record id. ObjectIDs carry a timestamp, a per-process
// random value and a counter, so ids are unique within a process and sort
// roughly by creation time.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
