package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Messages is one row of the seeded `messages` collection: it binds an SMS
// event name to the notification service's pattern id and the placeholder
// names that pattern expects.
type Messages struct {
	ID         primitive.ObjectID `bson:"_id"`
	CreatedAt  primitive.DateTime `bson:"createdAt"`
	UpdatedAt  primitive.DateTime `bson:"updatedAt"`
	PatternId  int32              `bson:"patternId"`
	Parameters []string           `bson:"parameters"`
	Event      string             `bson:"event"`
	IsDeleted  bool               `bson:"isDeleted"`
}
