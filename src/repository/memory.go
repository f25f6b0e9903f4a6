package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/models"
)

// MemoryStore backs the in-memory repositories used in tests. A single
// mutex covers all collections, which mirrors the all-or-nothing effect
// of the Mongo transactions in Accept and RemovePair.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[primitive.ObjectID]*models.User
	connections   map[primitive.ObjectID]*models.Connection
	posts         map[primitive.ObjectID]*models.Post
	notifications map[primitive.ObjectID]*models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[primitive.ObjectID]*models.User),
		connections:   make(map[primitive.ObjectID]*models.Connection),
		posts:         make(map[primitive.ObjectID]*models.Post),
		notifications: make(map[primitive.ObjectID]*models.Notification),
	}
}

func (s *MemoryStore) UserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{store: s}
}

func (s *MemoryStore) ConnectionRepository() *MemoryConnectionRepository {
	return &MemoryConnectionRepository{store: s}
}

func (s *MemoryStore) PostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{store: s}
}

func (s *MemoryStore) NotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{store: s}
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Connections = append([]primitive.ObjectID{}, u.Connections...)
	cp.Skills = append([]string{}, u.Skills...)
	cp.Experience = append([]models.Experience{}, u.Experience...)
	cp.Education = append([]models.Education{}, u.Education...)
	return &cp
}

func copyConnection(c *models.Connection) *models.Connection {
	cp := *c
	return &cp
}

func copyPost(p *models.Post) *models.Post {
	cp := *p
	cp.Likes = append([]primitive.ObjectID{}, p.Likes...)
	cp.Comments = append([]models.Comment{}, p.Comments...)
	return &cp
}

type MemoryUserRepository struct {
	store *MemoryStore
}

func (r *MemoryUserRepository) Insert(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return models.Conflict("Email already registered")
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Connections == nil {
		user.Connections = []primitive.ObjectID{}
	}
	r.store.users[user.Id] = copyUser(user)
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, id primitive.ObjectID, update ProfileUpdate) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Headline != nil {
		user.Headline = *update.Headline
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.Industry != nil {
		user.Industry = *update.Industry
	}
	if update.About != nil {
		user.About = *update.About
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.CoverPhoto != nil {
		user.CoverPhoto = *update.CoverPhoto
	}
	if update.Skills != nil {
		user.Skills = append([]string{}, *update.Skills...)
	}
	if update.Experience != nil {
		user.Experience = append([]models.Experience{}, *update.Experience...)
	}
	if update.Education != nil {
		user.Education = append([]models.Education{}, *update.Education...)
	}
	user.UpdatedAt = time.Now()
	return copyUser(user), nil
}

func (r *MemoryUserRepository) Summaries(_ context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	summaries := []models.UserSummary{}
	for _, id := range ids {
		if user, ok := r.store.users[id]; ok {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

func (r *MemoryUserRepository) Search(_ context.Context, query string, limit int64) ([]models.UserSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q := strings.ToLower(query)
	summaries := []models.UserSummary{}
	for _, user := range r.store.users {
		if int64(len(summaries)) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(user.FirstName), q) ||
			strings.Contains(strings.ToLower(user.LastName), q) ||
			strings.Contains(strings.ToLower(user.Headline), q) {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

func (r *MemoryUserRepository) Suggestions(_ context.Context, forUser *models.User, limit int64) ([]models.UserSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	excluded := map[primitive.ObjectID]bool{forUser.Id: true}
	for _, conn := range forUser.Connections {
		excluded[conn] = true
	}

	summaries := []models.UserSummary{}
	for id, user := range r.store.users {
		if int64(len(summaries)) >= limit {
			break
		}
		if !excluded[id] {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

type MemoryConnectionRepository struct {
	store *MemoryStore
}

func (r *MemoryConnectionRepository) Insert(_ context.Context, conn *models.Connection) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	pair := models.PairKey(conn.Requester, conn.Recipient)
	for _, existing := range r.store.connections {
		if existing.Pair == pair {
			return models.Conflict("Connection request already exists")
		}
	}
	if conn.Id.IsZero() {
		conn.Id = primitive.NewObjectID()
	}
	now := time.Now()
	conn.Pair = pair
	conn.CreatedAt = now
	conn.UpdatedAt = now
	r.store.connections[conn.Id] = copyConnection(conn)
	return nil
}

func (r *MemoryConnectionRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	conn, ok := r.store.connections[id]
	if !ok {
		return nil, models.ErrRequestNotFound
	}
	return copyConnection(conn), nil
}

func (r *MemoryConnectionRepository) FindByPair(_ context.Context, a, b primitive.ObjectID) (*models.Connection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	pair := models.PairKey(a, b)
	for _, conn := range r.store.connections {
		if conn.Pair == pair {
			return copyConnection(conn), nil
		}
	}
	return nil, models.ErrRequestNotFound
}

func (r *MemoryConnectionRepository) ListPendingFor(_ context.Context, recipient primitive.ObjectID) ([]models.Connection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	conns := []models.Connection{}
	for _, conn := range r.store.connections {
		if conn.Recipient == recipient && conn.Status == models.ConnectionStatusPending {
			conns = append(conns, *copyConnection(conn))
		}
	}
	sort.Slice(conns, func(i, j int) bool {
		if !conns[i].CreatedAt.Equal(conns[j].CreatedAt) {
			return conns[i].CreatedAt.After(conns[j].CreatedAt)
		}
		return conns[i].Id.Hex() > conns[j].Id.Hex()
	})
	return conns, nil
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func pullFromSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func (r *MemoryConnectionRepository) Accept(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	conn, ok := r.store.connections[id]
	if !ok {
		return nil, models.ErrRequestNotFound
	}
	conn.Status = models.ConnectionStatusAccepted
	conn.UpdatedAt = time.Now()

	if requester, ok := r.store.users[conn.Requester]; ok {
		requester.Connections = addToSet(requester.Connections, conn.Recipient)
	}
	if recipient, ok := r.store.users[conn.Recipient]; ok {
		recipient.Connections = addToSet(recipient.Connections, conn.Requester)
	}
	return copyConnection(conn), nil
}

func (r *MemoryConnectionRepository) Reject(_ context.Context, id primitive.ObjectID) (*models.Connection, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	conn, ok := r.store.connections[id]
	if !ok {
		return nil, models.ErrRequestNotFound
	}
	conn.Status = models.ConnectionStatusRejected
	conn.UpdatedAt = time.Now()
	return copyConnection(conn), nil
}

func (r *MemoryConnectionRepository) RemovePair(_ context.Context, a, b primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if userA, ok := r.store.users[a]; ok {
		userA.Connections = pullFromSet(userA.Connections, b)
	}
	if userB, ok := r.store.users[b]; ok {
		userB.Connections = pullFromSet(userB.Connections, a)
	}
	pair := models.PairKey(a, b)
	for id, conn := range r.store.connections {
		if conn.Pair == pair {
			delete(r.store.connections, id)
		}
	}
	return nil
}

type MemoryPostRepository struct {
	store *MemoryStore
}

func (r *MemoryPostRepository) Insert(_ context.Context, post *models.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.store.posts[post.Id] = copyPost(post)
	return nil
}

func (r *MemoryPostRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	post, ok := r.store.posts[id]
	if !ok {
		return nil, models.ErrPostNotFound
	}
	return copyPost(post), nil
}

func (r *MemoryPostRepository) sortedPosts(filter func(*models.Post) bool) []models.Post {
	posts := []models.Post{}
	for _, post := range r.store.posts {
		if filter(post) {
			posts = append(posts, *copyPost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].Id.Hex() > posts[j].Id.Hex()
	})
	return posts
}

func (r *MemoryPostRepository) Feed(_ context.Context, limit int64) ([]models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	posts := r.sortedPosts(func(*models.Post) bool { return true })
	if int64(len(posts)) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *MemoryPostRepository) ByAuthor(_ context.Context, author primitive.ObjectID) ([]models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.sortedPosts(func(p *models.Post) bool { return p.Author == author }), nil
}

func (r *MemoryPostRepository) UpdateContent(_ context.Context, id primitive.ObjectID, content string) (*models.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	post, ok := r.store.posts[id]
	if !ok {
		return nil, models.ErrPostNotFound
	}
	post.Content = content
	post.UpdatedAt = time.Now()
	return copyPost(post), nil
}

func (r *MemoryPostRepository) AddLike(_ context.Context, id, user primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	post, ok := r.store.posts[id]
	if !ok {
		return models.ErrPostNotFound
	}
	post.Likes = addToSet(post.Likes, user)
	return nil
}

func (r *MemoryPostRepository) RemoveLike(_ context.Context, id, user primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	post, ok := r.store.posts[id]
	if !ok {
		return models.ErrPostNotFound
	}
	post.Likes = pullFromSet(post.Likes, user)
	return nil
}

func (r *MemoryPostRepository) AddComment(_ context.Context, id primitive.ObjectID, comment models.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	post, ok := r.store.posts[id]
	if !ok {
		return models.ErrPostNotFound
	}
	post.Comments = append(post.Comments, comment)
	post.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryPostRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.posts, id)
	return nil
}

type MemoryNotificationRepository struct {
	store *MemoryStore
}

func (r *MemoryNotificationRepository) Insert(_ context.Context, notification *models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if notification.Id.IsZero() {
		notification.Id = primitive.NewObjectID()
	}
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now
	cp := *notification
	r.store.notifications[notification.Id] = &cp
	return nil
}

func (r *MemoryNotificationRepository) ListFor(_ context.Context, recipient primitive.ObjectID) ([]models.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	notifications := []models.Notification{}
	for _, notification := range r.store.notifications {
		if notification.Recipient == recipient {
			notifications = append(notifications, *notification)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].Id.Hex() > notifications[j].Id.Hex()
	})
	return notifications, nil
}

func (r *MemoryNotificationRepository) MarkRead(_ context.Context, id, recipient primitive.ObjectID) (*models.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification, ok := r.store.notifications[id]
	if !ok || notification.Recipient != recipient {
		return nil, models.ErrNotificationNotFound
	}
	notification.Read = true
	notification.UpdatedAt = time.Now()
	cp := *notification
	return &cp, nil
}

func (r *MemoryNotificationRepository) Delete(_ context.Context, id, recipient primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification, ok := r.store.notifications[id]
	if !ok || notification.Recipient != recipient {
		return models.ErrNotificationNotFound
	}
	delete(r.store.notifications, id)
	return nil
}
