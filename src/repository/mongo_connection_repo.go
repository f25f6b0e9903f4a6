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

// MongoConnectionRepository holds the client as well as the collections:
// Accept and RemovePair span the connections and users collections and
// run inside one session transaction.
type MongoConnectionRepository struct {
	client      *mongo.Client
	connections *mongo.Collection
	users       *mongo.Collection
}

func NewMongoConnectionRepository(client *mongo.Client, db *mongo.Database) *MongoConnectionRepository {
	return &MongoConnectionRepository{
		client:      client,
		connections: db.Collection("connections"),
		users:       db.Collection("users"),
	}
}

func (r *MongoConnectionRepository) Insert(ctx context.Context, conn *models.Connection) error {
	if conn.Id.IsZero() {
		conn.Id = primitive.NewObjectID()
	}
	now := time.Now()
	conn.Pair = models.PairKey(conn.Requester, conn.Recipient)
	conn.CreatedAt = now
	conn.UpdatedAt = now

	_, err := r.connections.InsertOne(ctx, conn)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent request for the same pair won the race; the
		// unique pair index keeps the ledger at one entry.
		return models.Conflict("Connection request already exists")
	}
	return err
}

func (r *MongoConnectionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.connections.FindOne(ctx, bson.M{"_id": id}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *MongoConnectionRepository) FindByPair(ctx context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.connections.FindOne(ctx, bson.M{"pair": models.PairKey(a, b)}).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *MongoConnectionRepository) ListPendingFor(ctx context.Context, recipient primitive.ObjectID) ([]models.Connection, error) {
	filter := bson.M{
		"recipient": recipient,
		"status":    models.ConnectionStatusPending,
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.connections.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conns []models.Connection
	if err := cursor.All(ctx, &conns); err != nil {
		return nil, err
	}
	if conns == nil {
		conns = []models.Connection{}
	}
	return conns, nil
}

func (r *MongoConnectionRepository) Accept(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var conn models.Connection
		err := r.connections.FindOneAndUpdate(
			sc,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"status":    models.ConnectionStatusAccepted,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&conn)
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrRequestNotFound
		}
		if err != nil {
			return nil, err
		}

		// $addToSet keeps repeated accepts from duplicating entries.
		if _, err := r.users.UpdateOne(
			sc,
			bson.M{"_id": conn.Requester},
			bson.M{"$addToSet": bson.M{"connections": conn.Recipient}},
		); err != nil {
			return nil, err
		}
		if _, err := r.users.UpdateOne(
			sc,
			bson.M{"_id": conn.Recipient},
			bson.M{"$addToSet": bson.M{"connections": conn.Requester}},
		); err != nil {
			return nil, err
		}

		return &conn, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Connection), nil
}

func (r *MongoConnectionRepository) Reject(ctx context.Context, id primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := r.connections.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":    models.ConnectionStatusRejected,
			"updatedAt": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&conn)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *MongoConnectionRepository) RemovePair(ctx context.Context, a, b primitive.ObjectID) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.users.UpdateOne(
			sc,
			bson.M{"_id": a},
			bson.M{"$pull": bson.M{"connections": b}},
		); err != nil {
			return nil, err
		}
		if _, err := r.users.UpdateOne(
			sc,
			bson.M{"_id": b},
			bson.M{"$pull": bson.M{"connections": a}},
		); err != nil {
			return nil, err
		}
		if _, err := r.connections.DeleteOne(sc, bson.M{"pair": models.PairKey(a, b)}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}
