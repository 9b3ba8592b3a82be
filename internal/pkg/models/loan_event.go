package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoanEvent struct {
	ID               primitive.ObjectID `bson:"_id"`
	GUID             string             `bson:"GUID"`
	LoanId           primitive.ObjectID `bson:"loanId"`
	LoanNumber       string             `bson:"loanNumber"`
	EventType        string             `bson:"eventType"`
	Payload          string             `bson:"payload"`
	PublishedToKafka bool               `bson:"publishedToKafka"`
	CreatedAt        time.Time          `bson:"createdAt"`
}
