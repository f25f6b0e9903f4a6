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

var summaryProjection = bson.M{
	"firstName":      1,
	"lastName":       1,
	"headline":       1,
	"profilePicture": 1,
	"location":       1,
}

type MongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection("users")}
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) error {
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}

	_, err := r.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.Conflict("Email already registered")
	}
	return err
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.FirstName != nil {
		set["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		set["lastName"] = *update.LastName
	}
	if update.Headline != nil {
		set["headline"] = *update.Headline
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Industry != nil {
		set["industry"] = *update.Industry
	}
	if update.About != nil {
		set["about"] = *update.About
	}
	if update.ProfilePicture != nil {
		set["profilePicture"] = *update.ProfilePicture
	}
	if update.CoverPhoto != nil {
		set["coverPhoto"] = *update.CoverPhoto
	}
	if update.Skills != nil {
		set["skills"] = *update.Skills
	}
	if update.Experience != nil {
		set["experience"] = *update.Experience
	}
	if update.Education != nil {
		set["education"] = *update.Education
	}

	var user models.User
	err := r.users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) Summaries(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	if len(ids) == 0 {
		return []models.UserSummary{}, nil
	}

	cursor, err := r.users.Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(summaryProjection),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.UserSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.UserSummary{}
	}
	return summaries, nil
}

func (r *MongoUserRepository) Search(ctx context.Context, query string, limit int64) ([]models.UserSummary, error) {
	regex := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{
		"$or": []bson.M{
			{"firstName": regex},
			{"lastName": regex},
			{"headline": regex},
		},
	}

	cursor, err := r.users.Find(
		ctx,
		filter,
		options.Find().SetProjection(summaryProjection).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.UserSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.UserSummary{}
	}
	return summaries, nil
}

func (r *MongoUserRepository) Suggestions(ctx context.Context, forUser *models.User, limit int64) ([]models.UserSummary, error) {
	exclude := append([]primitive.ObjectID{forUser.Id}, forUser.Connections...)
	filter := bson.M{"_id": bson.M{"$nin": exclude}}

	cursor, err := r.users.Find(
		ctx,
		filter,
		options.Find().SetProjection(summaryProjection).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.UserSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.UserSummary{}
	}
	return summaries, nil
}
