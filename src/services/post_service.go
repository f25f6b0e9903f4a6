package services

import (
	"context"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davidromero/Backend-LinkHub/src/models"
	"github.com/davidromero/Backend-LinkHub/src/repository"
)

const feedLimit = 50

// PostService covers post CRUD plus the embedded like-set and
// comment-list mutations. The only cross-entity rule is author ownership
// on edit and delete.
type PostService struct {
	posts         repository.PostRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

func NewPostService(
	posts repository.PostRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		posts:         posts,
		users:         users,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *PostService) Create(ctx context.Context, author primitive.ObjectID, content, image string) (*models.PostView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.InvalidArgument("Content is required")
	}

	post := &models.Post{
		Author:  author,
		Content: content,
		Image:   image,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}
	return s.populate(ctx, post)
}

func (s *PostService) Feed(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.posts.Feed(ctx, feedLimit)
	if err != nil {
		return nil, err
	}
	return s.populateAll(ctx, posts)
}

func (s *PostService) ByUser(ctx context.Context, author primitive.ObjectID) ([]models.PostView, error) {
	posts, err := s.posts.ByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return s.populateAll(ctx, posts)
}

func (s *PostService) Edit(ctx context.Context, postID, actor primitive.ObjectID, content string) (*models.PostView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.InvalidArgument("Content is required")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Author != actor {
		return nil, models.Forbidden("Not authorized to edit this post")
	}

	updated, err := s.posts.UpdateContent(ctx, postID, content)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, updated)
}

// ToggleLike likes the post when the actor has not liked it, and unlikes
// it otherwise. Set semantics: a double like never produces a duplicate.
func (s *PostService) ToggleLike(ctx context.Context, postID, actor primitive.ObjectID) (*models.PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.HasLike(actor) {
		err = s.posts.RemoveLike(ctx, postID, actor)
	} else {
		err = s.posts.AddLike(ctx, postID, actor)
		if err == nil && post.Author != actor {
			s.notify(ctx, post.Author, models.NotificationTypeLike, actor, postID)
		}
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, updated)
}

func (s *PostService) Comment(ctx context.Context, postID, actor primitive.ObjectID, text string) (*models.PostView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.InvalidArgument("Comment text is required")
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Id:   primitive.NewObjectID(),
		User: actor,
		Text: text,
	}
	comment.CreatedAt = comment.Id.Timestamp()
	if err := s.posts.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}
	if post.Author != actor {
		s.notify(ctx, post.Author, models.NotificationTypeComment, actor, postID)
	}

	updated, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, updated)
}

func (s *PostService) Delete(ctx context.Context, postID, actor primitive.ObjectID) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author != actor {
		return models.Forbidden("Not authorized to delete this post")
	}
	return s.posts.Delete(ctx, postID)
}

func (s *PostService) notify(ctx context.Context, recipient primitive.ObjectID, kind models.NotificationType, related, post primitive.ObjectID) {
	notification := &models.Notification{
		Recipient:   recipient,
		Type:        kind,
		RelatedUser: related,
		RelatedPost: post,
	}
	if err := s.notifications.Insert(ctx, notification); err != nil {
		s.logger.Warn("failed to create post notification", "error", err, "type", string(kind))
	}
}

func (s *PostService) populateAll(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	ids := []primitive.ObjectID{}
	seen := map[primitive.ObjectID]bool{}
	collect := func(id primitive.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, post := range posts {
		collect(post.Author)
		for _, comment := range post.Comments {
			collect(comment.User)
		}
	}

	summaries, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	views := []models.PostView{}
	for _, post := range posts {
		views = append(views, buildView(&post, byID))
	}
	return views, nil
}

func (s *PostService) populate(ctx context.Context, post *models.Post) (*models.PostView, error) {
	views, err := s.populateAll(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func buildView(post *models.Post, byID map[primitive.ObjectID]models.UserSummary) models.PostView {
	comments := []models.CommentView{}
	for _, comment := range post.Comments {
		comments = append(comments, models.CommentView{
			ID:        comment.Id,
			User:      byID[comment.User],
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}
	return models.PostView{
		ID:        post.Id,
		Author:    byID[post.Author],
		Content:   post.Content,
		Image:     post.Image,
		Likes:     post.Likes,
		Comments:  comments,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
