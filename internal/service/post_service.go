package service

import (
	"context"
	"errors"
	"time"

	"devlink/internal/document"
	"devlink/internal/models"
	"devlink/internal/repository"

	"github.com/google/uuid"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID uint
	Text   string
	Name   string
	Avatar string
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Text   string
}

type AddCommentInput struct {
	UserID uint
	PostID uint
	Text   string
	Name   string
	Avatar string
}

type UpdateCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID string
	Text      string
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create stores a new post owned by the caller. Name and avatar are
// denormalized onto the post so the feed renders without extra lookups.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		UserID: in.UserID,
		Text:   in.Text,
		Name:   in.Name,
		Avatar: in.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.populatePost(ctx, post)
}

// List returns posts newest first with owner projections attached. An empty
// feed yields an empty list, not an error.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].UserID)
	}
	refs, err := s.userRepo.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if ref, ok := refs[posts[i].UserID]; ok {
			r := ref
			posts[i].User = &r
		}
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populatePost(ctx, post)
}

// Update replaces the post text. Only the owner may update; anyone else gets
// the same answer as a missing post.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("No post exists by the given id for the logged in user")
	}

	post.Text = in.Text
	post.UpdatedAt = time.Now().UTC()
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return s.populatePost(ctx, post)
}

// Delete removes the post. Only the owner may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("No post exists by the given id for the logged in user")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike likes the post when the caller has no like on it, and removes
// the caller's like otherwise. Toggling twice restores the original state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	likes, _ := document.Toggle(post.Likes,
		func(l models.LikeRecord) bool { return l.UserID == userID },
		func() models.LikeRecord { return models.LikeRecord{UserID: userID} },
	)

	post.Likes = likes
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return s.populatePost(ctx, post)
}

// AddComment prepends a comment to the post. Any authenticated user may
// comment, not just the post owner.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := models.CommentEntry{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Text:      in.Text,
		Name:      in.Name,
		Avatar:    in.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}

	post.Comments = document.Prepend(post.Comments, comment)
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return s.populatePost(ctx, post)
}

// UpdateComment replaces the comment text in place. Only the comment's author
// may update it.
func (s *PostService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	updated, err := document.Update(post.Comments, in.CommentID, in.UserID, func(c models.CommentEntry) models.CommentEntry {
		c.Text = in.Text
		c.UpdatedAt = time.Now().UTC()
		return c
	})
	if err != nil {
		return nil, commentEntryError(err)
	}

	post.Comments = updated
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return s.populatePost(ctx, post)
}

// DeleteComment removes the comment. Only the comment's author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID uint, commentID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	remaining, err := document.Remove(post.Comments, commentID, userID)
	if err != nil {
		return nil, commentEntryError(err)
	}

	post.Comments = remaining
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return s.populatePost(ctx, post)
}

func (s *PostService) populatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	refs, err := s.userRepo.GetRefs(ctx, []uint{post.UserID})
	if err != nil {
		return nil, err
	}
	if ref, ok := refs[post.UserID]; ok {
		r := ref
		post.User = &r
	}
	return post, nil
}

func commentEntryError(err error) error {
	switch {
	case errors.Is(err, document.ErrEntryNotFound):
		return models.NewNotFoundError("No comment exists by the given id")
	case errors.Is(err, document.ErrNotOwner):
		return models.NewForbiddenError("Permission Denied")
	default:
		return models.NewInternalError(err)
	}
}
