package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection is the ledger entry for one unordered pair of users. At most
// one entry exists per pair at a time, enforced by a unique index on Pair.
type Connection struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Requester primitive.ObjectID `json:"requester" bson:"requester"`
	Recipient primitive.ObjectID `json:"recipient" bson:"recipient"`
	Pair      string             `json:"-" bson:"pair"`
	Status    ConnectionStatus   `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// PairKey normalizes an unordered user pair into a single index key, so
// {A,B} and {B,A} collide on the same unique index entry.
func PairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if bh < ah {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// ConnectionWithRequester is the incoming-request view: the ledger entry
// joined with the requester's identity summary.
type ConnectionWithRequester struct {
	ID        primitive.ObjectID `json:"_id"`
	Requester UserSummary        `json:"requester"`
	Recipient primitive.ObjectID `json:"recipient"`
	Status    ConnectionStatus   `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ConnectionStatusInfo is the response of the status probe between the
// acting user and another user.
type ConnectionStatusInfo struct {
	Status    string              `json:"status"`
	RequestID *primitive.ObjectID `json:"requestId,omitempty"`
}

const (
	StatusConnected    = "connected"
	StatusPending      = "pending"
	StatusReceived     = "received"
	StatusNotConnected = "not_connected"
)
