package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/models"
)

// ProfileUpdate lists the profile fields a user may change. Nil means
// leave the field alone. Email and password deliberately have no entry
// here; they move only through the auth flow.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Headline       *string
	Location       *string
	Industry       *string
	About          *string
	ProfilePicture *string
	CoverPhoto     *string
	Skills         *[]string
	Experience     *[]models.Experience
	Education      *[]models.Education
}

type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error)
	// Summaries resolves ids to identity summaries; ids with no backing
	// document are silently skipped.
	Summaries(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
	Search(ctx context.Context, query string, limit int64) ([]models.UserSummary, error)
	Suggestions(ctx context.Context, forUser *models.User, limit int64) ([]models.UserSummary, error)
}

// ConnectionRepository owns the connection ledger. Accept and RemovePair
// also touch the users collection: the status flip plus both connection
// lists form one logical unit, so the Mongo implementation runs them in a
// single transaction.
type ConnectionRepository interface {
	Insert(ctx context.Context, conn *models.Connection) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error)
	// ListPendingFor returns pending entries addressed to recipient,
	// newest first.
	ListPendingFor(ctx context.Context, recipient primitive.ObjectID) ([]models.Connection, error)
	// Accept flips the entry to accepted and adds each party to the
	// other's connections set.
	Accept(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	Reject(ctx context.Context, id primitive.ObjectID) (*models.Connection, error)
	// RemovePair pulls each user from the other's connections set and
	// deletes the ledger entry for the pair whatever its status. It is a
	// no-op when nothing exists.
	RemovePair(ctx context.Context, a, b primitive.ObjectID) error
}

type PostRepository interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Feed(ctx context.Context, limit int64) ([]models.Post, error)
	ByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*models.Post, error)
	AddLike(ctx context.Context, id, user primitive.ObjectID) error
	RemoveLike(ctx context.Context, id, user primitive.ObjectID) error
	AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	ListFor(ctx context.Context, recipient primitive.ObjectID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipient primitive.ObjectID) (*models.Notification, error)
	Delete(ctx context.Context, id, recipient primitive.ObjectID) error
}
