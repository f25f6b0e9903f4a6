package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	Id          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Recipient   primitive.ObjectID `json:"recipient" bson:"recipient"`
	Type        NotificationType   `json:"type" bson:"type"`
	RelatedUser primitive.ObjectID `json:"relatedUser,omitempty" bson:"relatedUser,omitempty"`
	RelatedPost primitive.ObjectID `json:"relatedPost,omitempty" bson:"relatedPost,omitempty"`
	Read        bool               `json:"read" bson:"read"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type NotificationType string

const (
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
	NotificationTypeLike               NotificationType = "like"
	NotificationTypeComment            NotificationType = "comment"
)

// NotificationView resolves the related user to a summary for the client.
type NotificationView struct {
	ID          primitive.ObjectID `json:"_id"`
	Type        NotificationType   `json:"type"`
	RelatedUser *UserSummary       `json:"relatedUser,omitempty"`
	RelatedPost *primitive.ObjectID `json:"relatedPost,omitempty"`
	Read        bool               `json:"read"`
	CreatedAt   time.Time          `json:"createdAt"`
}
