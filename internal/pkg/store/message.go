package store

import (
	"context"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/db"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MessagesRepository reads SMS pattern registrations. Patterns are seeded out
// of band; the service only ever looks them up.
type MessagesRepository struct {
	repo *MongoRepository[models.Messages]
}

func NewMessagesRepository() *MessagesRepository {
	collection := db.MDB.Database.Collection(consts.MessagesCollection)
	return &MessagesRepository{repo: NewMongoRepository[models.Messages](collection)}
}

// GetMessageID resolves the SMS pattern registered for a lifecycle event.
func (r *MessagesRepository) GetMessageID(ctx context.Context, event string) (*models.MessageResponse, error) {
	if event == "" {
		return nil, consts.ErrorMissingRequiredInputs
	}

	filter := bson.M{"event": event, "isDeleted": bson.M{"$ne": true}}
	messages, err := r.repo.FindAll(filter)
	if err != nil {
		logger.Error(ctx, "Error while fetching messages for event %v: %v", event, err)
		return nil, err
	}
	if len(messages) == 0 {
		logger.Warn(ctx, "No documents for event %v found", event)
		return nil, mongo.ErrNoDocuments
	}

	// The isDeleted filter uses $ne so legacy documents without the field
	// still match; a literal true slipping through is rechecked here.
	pattern := messages[0]
	if pattern.IsDeleted {
		logger.Info(ctx, "Document is deleted")
		return nil, consts.ErrorNoDocumentFound
	}

	return &models.MessageResponse{
		MessageID:  pattern.PatternId,
		Parameters: pattern.Parameters,
	}, nil
}
