package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/models"
	"github.com/davidromero/Backend-LinkHub/src/repository"
)

type connectionFixture struct {
	store   *repository.MemoryStore
	users   *repository.MemoryUserRepository
	notifs  *repository.MemoryNotificationRepository
	service *ConnectionService
}

func newConnectionFixture(t *testing.T) *connectionFixture {
	t.Helper()
	store := repository.NewMemoryStore()
	users := store.UserRepository()
	notifs := store.NotificationRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewConnectionService(store.ConnectionRepository(), users, notifs, logger)
	return &connectionFixture{store: store, users: users, notifs: notifs, service: service}
}

func (f *connectionFixture) addUser(t *testing.T, firstName, lastName string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "." + lastName + "@example.com",
		Headline:  firstName + "'s headline",
	}
	require.NoError(t, f.users.Insert(context.Background(), user))
	return user
}

func (f *connectionFixture) connectionsOf(t *testing.T, id primitive.ObjectID) []primitive.ObjectID {
	t.Helper()
	user, err := f.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	return user.Connections
}

func assertCode(t *testing.T, err error, code models.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var derr *models.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

func TestRequestCreatesPendingEntry(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")

	conn, err := f.service.Request(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)

	assert.Equal(t, alice.Id, conn.Requester)
	assert.Equal(t, bob.Id, conn.Recipient)
	assert.Equal(t, models.ConnectionStatusPending, conn.Status)
	assert.False(t, conn.Id.IsZero())

	// No side effect on either connections set until acceptance.
	assert.Empty(t, f.connectionsOf(t, alice.Id))
	assert.Empty(t, f.connectionsOf(t, bob.Id))
}

func TestRequestToSelfFails(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")

	_, err := f.service.Request(context.Background(), alice.Id, alice.Id)
	assertCode(t, err, models.CodeInvalidArgument)
}

func TestRequestMissingRecipientFails(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")

	_, err := f.service.Request(context.Background(), alice.Id, primitive.NilObjectID)
	assertCode(t, err, models.CodeInvalidArgument)
}

func TestRequestUnknownRecipientFails(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")

	_, err := f.service.Request(context.Background(), alice.Id, primitive.NewObjectID())
	assertCode(t, err, models.CodeNotFound)
}

func TestRequestDuplicateBlockedBothDirections(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")

	_, err := f.service.Request(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)

	_, err = f.service.Request(context.Background(), alice.Id, bob.Id)
	assertCode(t, err, models.CodeConflict)

	_, err = f.service.Request(context.Background(), bob.Id, alice.Id)
	assertCode(t, err, models.CodeConflict)
}

func TestRequestBlockedByTerminalEntry(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	_, err = f.service.Reject(ctx, conn.Id, bob.Id)
	require.NoError(t, err)

	// A rejected entry stays on record and still blocks, both ways.
	_, err = f.service.Request(ctx, alice.Id, bob.Id)
	assertCode(t, err, models.CodeConflict)
	_, err = f.service.Request(ctx, bob.Id, alice.Id)
	assertCode(t, err, models.CodeConflict)
}

func TestAcceptUpdatesBothConnectionLists(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	accepted, err := f.service.Accept(ctx, conn.Id, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, accepted.Status)

	assert.Equal(t, []primitive.ObjectID{bob.Id}, f.connectionsOf(t, alice.Id))
	assert.Equal(t, []primitive.ObjectID{alice.Id}, f.connectionsOf(t, bob.Id))

	// The requester gets a notification about the acceptance.
	notifications, err := f.notifs.ListFor(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeConnectionAccepted, notifications[0].Type)
	assert.Equal(t, bob.Id, notifications[0].RelatedUser)
}

func TestAcceptByNonRecipientForbidden(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	carol := f.addUser(t, "Carol", "Clark")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	// Neither the requester nor a third party may accept.
	_, err = f.service.Accept(ctx, conn.Id, alice.Id)
	assertCode(t, err, models.CodeForbidden)
	_, err = f.service.Accept(ctx, conn.Id, carol.Id)
	assertCode(t, err, models.CodeForbidden)

	assert.Empty(t, f.connectionsOf(t, alice.Id))
	assert.Empty(t, f.connectionsOf(t, bob.Id))
}

func TestAcceptUnknownRequestNotFound(t *testing.T) {
	f := newConnectionFixture(t)
	bob := f.addUser(t, "Bob", "Brown")

	_, err := f.service.Accept(context.Background(), primitive.NewObjectID(), bob.Id)
	assertCode(t, err, models.CodeNotFound)
}

func TestAcceptProcessedRequestConflicts(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	_, err = f.service.Accept(ctx, conn.Id, bob.Id)
	require.NoError(t, err)

	_, err = f.service.Accept(ctx, conn.Id, bob.Id)
	assertCode(t, err, models.CodeConflict)

	// The lists stay sets even after the repeated attempt.
	assert.Equal(t, []primitive.ObjectID{bob.Id}, f.connectionsOf(t, alice.Id))
	assert.Equal(t, []primitive.ObjectID{alice.Id}, f.connectionsOf(t, bob.Id))
}

func TestRejectLeavesConnectionListsAlone(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	rejected, err := f.service.Reject(ctx, conn.Id, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusRejected, rejected.Status)

	assert.Empty(t, f.connectionsOf(t, alice.Id))
	assert.Empty(t, f.connectionsOf(t, bob.Id))

	// Rejection is terminal.
	_, err = f.service.Accept(ctx, conn.Id, bob.Id)
	assertCode(t, err, models.CodeConflict)
	_, err = f.service.Reject(ctx, conn.Id, bob.Id)
	assertCode(t, err, models.CodeConflict)
}

func TestRejectGuards(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	_, err = f.service.Reject(ctx, conn.Id, alice.Id)
	assertCode(t, err, models.CodeForbidden)

	_, err = f.service.Reject(ctx, primitive.NewObjectID(), bob.Id)
	assertCode(t, err, models.CodeNotFound)
}

func TestListIncomingEmbedsRequesterSummary(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	incoming, err := f.service.ListIncoming(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	assert.Equal(t, conn.Id, incoming[0].ID)
	assert.Equal(t, models.ConnectionStatusPending, incoming[0].Status)
	assert.Equal(t, alice.Id, incoming[0].Requester.ID)
	assert.Equal(t, "Alice", incoming[0].Requester.FirstName)
	assert.Equal(t, alice.Headline, incoming[0].Requester.Headline)

	// The requester's own incoming list stays empty.
	outgoing, err := f.service.ListIncoming(ctx, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, outgoing)
}

func TestRemoveIsIdempotent(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	_, err = f.service.Accept(ctx, conn.Id, bob.Id)
	require.NoError(t, err)

	require.NoError(t, f.service.Remove(ctx, alice.Id, bob.Id))
	assert.Empty(t, f.connectionsOf(t, alice.Id))
	assert.Empty(t, f.connectionsOf(t, bob.Id))

	// Second removal: same end state, no error.
	require.NoError(t, f.service.Remove(ctx, alice.Id, bob.Id))
	assert.Empty(t, f.connectionsOf(t, alice.Id))

	// Removing a connection that never existed also succeeds.
	carol := f.addUser(t, "Carol", "Clark")
	require.NoError(t, f.service.Remove(ctx, alice.Id, carol.Id))
}

func TestRemoveSelfFails(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")

	err := f.service.Remove(context.Background(), alice.Id, alice.Id)
	assertCode(t, err, models.CodeInvalidArgument)
}

func TestFullLifecycleFreesPairForNewRequest(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	ctx := context.Background()

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, conn.Status)

	incoming, err := f.service.ListIncoming(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, alice.Id, incoming[0].Requester.ID)

	accepted, err := f.service.Accept(ctx, conn.Id, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, accepted.Status)

	aliceConns, err := f.service.Connections(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, aliceConns, 1)
	assert.Equal(t, bob.Id, aliceConns[0].ID)

	bobConns, err := f.service.Connections(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, bobConns, 1)
	assert.Equal(t, alice.Id, bobConns[0].ID)

	require.NoError(t, f.service.Remove(ctx, alice.Id, bob.Id))

	aliceConns, err = f.service.Connections(ctx, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, aliceConns)
	bobConns, err = f.service.Connections(ctx, bob.Id)
	require.NoError(t, err)
	assert.Empty(t, bobConns)

	// The ledger entry is gone, so the pair is requestable again.
	again, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, again.Status)
}

func TestTwoRequestersRejectOneAcceptOther(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	carol := f.addUser(t, "Carol", "Clark")
	ctx := context.Background()

	fromAlice, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	fromCarol, err := f.service.Request(ctx, carol.Id, bob.Id)
	require.NoError(t, err)

	incoming, err := f.service.ListIncoming(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	requesters := []primitive.ObjectID{incoming[0].Requester.ID, incoming[1].Requester.ID}
	assert.Contains(t, requesters, alice.Id)
	assert.Contains(t, requesters, carol.Id)

	_, err = f.service.Reject(ctx, fromAlice.Id, bob.Id)
	require.NoError(t, err)
	assert.Empty(t, f.connectionsOf(t, alice.Id))
	assert.Empty(t, f.connectionsOf(t, bob.Id))

	_, err = f.service.Accept(ctx, fromCarol.Id, bob.Id)
	require.NoError(t, err)

	bobConns, err := f.service.Connections(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, bobConns, 1)
	assert.Equal(t, carol.Id, bobConns[0].ID)
}

func TestStatusBetween(t *testing.T) {
	f := newConnectionFixture(t)
	alice := f.addUser(t, "Alice", "Anderson")
	bob := f.addUser(t, "Bob", "Brown")
	carol := f.addUser(t, "Carol", "Clark")
	ctx := context.Background()

	info, err := f.service.StatusBetween(ctx, alice, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotConnected, info.Status)

	conn, err := f.service.Request(ctx, alice.Id, bob.Id)
	require.NoError(t, err)

	info, err = f.service.StatusBetween(ctx, alice, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, info.Status)

	info, err = f.service.StatusBetween(ctx, bob, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReceived, info.Status)
	require.NotNil(t, info.RequestID)
	assert.Equal(t, conn.Id, *info.RequestID)

	_, err = f.service.Accept(ctx, conn.Id, bob.Id)
	require.NoError(t, err)

	// Status checks read the caller's document, so refetch alice.
	refreshed, err := f.users.FindByID(ctx, alice.Id)
	require.NoError(t, err)
	info, err = f.service.StatusBetween(ctx, refreshed, bob.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConnected, info.Status)

	_, err = f.service.StatusBetween(ctx, carol, carol.Id)
	assertCode(t, err, models.CodeInvalidArgument)
}
