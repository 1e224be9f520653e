package services

import (
	"context"
	"errors"

	"postlike/internal/models"
	"postlike/internal/repository"
)

type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostService struct {
	repo *repository.Repository
}

func NewPostService(repo *repository.Repository) *PostService {
	return &PostService{repo: repo}
}

// Create stores a new post owned by the caller with both counters at zero.
func (s *PostService) Create(ctx context.Context, identity Identity, in CreatePostInput) (*models.Post, error) {
	if err := errors.Join(ValidateTitle(in.Title), ValidateContent(in.Content)); err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:  identity.UserID,
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.repo.CreatePost(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.repo.ListPosts(ctx)
}

func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.repo.FindPost(ctx, postID)
}
