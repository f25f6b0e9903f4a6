package services

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/models"
	"github.com/davidromero/Backend-LinkHub/src/repository"
)

// ConnectionService implements the connection-request lifecycle: creating
// requests, the accept/reject transitions and keeping both users'
// connections sets in step with the ledger.
type ConnectionService struct {
	connections   repository.ConnectionRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

func NewConnectionService(
	connections repository.ConnectionRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) *ConnectionService {
	return &ConnectionService{
		connections:   connections,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

// Request creates a pending ledger entry from requester to recipient. Any
// existing entry for the pair blocks a new one, in either direction and
// whatever its status: a rejected request stays on record and cannot be
// re-sent until the pair entry is removed.
func (s *ConnectionService) Request(ctx context.Context, requester, recipient primitive.ObjectID) (*models.Connection, error) {
	if recipient.IsZero() {
		return nil, models.InvalidArgument("Recipient ID is required")
	}
	if requester == recipient {
		return nil, models.InvalidArgument("Cannot send request to yourself")
	}

	if _, err := s.users.FindByID(ctx, recipient); err != nil {
		return nil, err
	}

	_, err := s.connections.FindByPair(ctx, requester, recipient)
	if err == nil {
		return nil, models.Conflict("Connection request already exists")
	}
	if !errors.Is(err, models.ErrRequestNotFound) {
		return nil, err
	}

	conn := &models.Connection{
		Requester: requester,
		Recipient: recipient,
		Status:    models.ConnectionStatusPending,
	}
	// The check above races with concurrent requests for the same pair;
	// Insert reports Conflict when the unique pair index catches that.
	if err := s.connections.Insert(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// ListIncoming returns the pending requests addressed to user, newest
// first, each joined with the requester's identity summary.
func (s *ConnectionService) ListIncoming(ctx context.Context, user primitive.ObjectID) ([]models.ConnectionWithRequester, error) {
	conns, err := s.connections.ListPendingFor(ctx, user)
	if err != nil {
		return nil, err
	}

	requesterIDs := make([]primitive.ObjectID, 0, len(conns))
	for _, conn := range conns {
		requesterIDs = append(requesterIDs, conn.Requester)
	}
	summaries, err := s.users.Summaries(ctx, requesterIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	views := []models.ConnectionWithRequester{}
	for _, conn := range conns {
		views = append(views, models.ConnectionWithRequester{
			ID:        conn.Id,
			Requester: byID[conn.Requester],
			Recipient: conn.Recipient,
			Status:    conn.Status,
			CreatedAt: conn.CreatedAt,
			UpdatedAt: conn.UpdatedAt,
		})
	}
	return views, nil
}

// Accept transitions a pending request to accepted and makes the
// connection visible from both sides. Only the recipient may accept, and
// terminal entries never transition again.
func (s *ConnectionService) Accept(ctx context.Context, requestID, actor primitive.ObjectID) (*models.Connection, error) {
	conn, err := s.connections.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if conn.Recipient != actor {
		return nil, models.Forbidden("Not authorized to accept this request")
	}
	if conn.Status != models.ConnectionStatusPending {
		return nil, models.Conflict("This request has already been processed")
	}

	updated, err := s.connections.Accept(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// Best effort: a lost notification never fails the accept.
	notification := &models.Notification{
		Recipient:   updated.Requester,
		Type:        models.NotificationTypeConnectionAccepted,
		RelatedUser: updated.Recipient,
	}
	if err := s.notifications.Insert(ctx, notification); err != nil {
		s.logger.Warn("failed to create accept notification", "error", err, "request", requestID.Hex())
	}

	return updated, nil
}

// Reject transitions a pending request to rejected. Neither party's
// connections set is touched.
func (s *ConnectionService) Reject(ctx context.Context, requestID, actor primitive.ObjectID) (*models.Connection, error) {
	conn, err := s.connections.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if conn.Recipient != actor {
		return nil, models.Forbidden("Not authorized to reject this request")
	}
	if conn.Status != models.ConnectionStatusPending {
		return nil, models.Conflict("This request has already been processed")
	}

	return s.connections.Reject(ctx, requestID)
}

// Connections resolves the user's connections set to identity summaries,
// in the order the connections were made.
func (s *ConnectionService) Connections(ctx context.Context, user primitive.ObjectID) ([]models.UserSummary, error) {
	current, err := s.users.FindByID(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(current.Connections) == 0 {
		return []models.UserSummary{}, nil
	}

	summaries, err := s.users.Summaries(ctx, current.Connections)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	ordered := []models.UserSummary{}
	for _, id := range current.Connections {
		if summary, ok := byID[id]; ok {
			ordered = append(ordered, summary)
		}
	}
	return ordered, nil
}

// Remove deletes the connection between user and other: both connections
// sets lose the other party and the pair's ledger entry disappears in any
// status. Removing a connection that does not exist is a success.
func (s *ConnectionService) Remove(ctx context.Context, user, other primitive.ObjectID) error {
	if user == other {
		return models.InvalidArgument("Cannot remove yourself as a connection")
	}
	return s.connections.RemovePair(ctx, user, other)
}

// StatusBetween reports the relationship between the acting user and
// another user: connected, pending (sent by the actor), received (with
// the request id so the client can act on it) or not_connected.
func (s *ConnectionService) StatusBetween(ctx context.Context, actor *models.User, other primitive.ObjectID) (*models.ConnectionStatusInfo, error) {
	if actor.Id == other {
		return nil, models.InvalidArgument("Cannot check connection status with yourself")
	}

	if actor.HasConnection(other) {
		return &models.ConnectionStatusInfo{Status: models.StatusConnected}, nil
	}

	conn, err := s.connections.FindByPair(ctx, actor.Id, other)
	if errors.Is(err, models.ErrRequestNotFound) {
		return &models.ConnectionStatusInfo{Status: models.StatusNotConnected}, nil
	}
	if err != nil {
		return nil, err
	}
	if conn.Status != models.ConnectionStatusPending {
		return &models.ConnectionStatusInfo{Status: models.StatusNotConnected}, nil
	}
	if conn.Requester == actor.Id {
		return &models.ConnectionStatusInfo{Status: models.StatusPending}, nil
	}
	id := conn.Id
	return &models.ConnectionStatusInfo{Status: models.StatusReceived, RequestID: &id}, nil
}
