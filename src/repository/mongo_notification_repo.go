package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davidromero/Backend-LinkHub/src/models"
)

type MongoNotificationRepository struct {
	notifications *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{notifications: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	if notification.Id.IsZero() {
		notification.Id = primitive.NewObjectID()
	}
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	_, err := r.notifications.InsertOne(ctx, notification)
	return err
}

func (r *MongoNotificationRepository) ListFor(ctx context.Context, recipient primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.notifications.Find(ctx, bson.M{"recipient": recipient}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := r.notifications.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&notification)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *MongoNotificationRepository) Delete(ctx context.Context, id, recipient primitive.ObjectID) error {
	result, err := r.notifications.DeleteOne(ctx, bson.M{"_id": id, "recipient": recipient})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotificationNotFound
	}
	return nil
}
