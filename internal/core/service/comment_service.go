package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
	"github.com/cafecritique/review-api/internal/core/validation"
)

type CommentService struct {
	repo     ports.CommentRepository
	refs     *validation.References
	validate *validation.Validator
	log      zerolog.Logger
	now      func() time.Time
}

func NewCommentService(repo ports.CommentRepository, refs *validation.References, validate *validation.Validator, log zerolog.Logger) *CommentService {
	return &CommentService{
		repo:     repo,
		refs:     refs,
		validate: validate,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *CommentService) List(ctx context.Context, blogID string) ([]*domain.Comment, error) {
	if _, err := s.refs.Blog(ctx, blogID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if len(comments) == 0 {
		return nil, domain.NotFound("There are no comments yet")
	}
	return comments, nil
}

func (s *CommentService) Get(ctx context.Context, blogID, id string) (*domain.Comment, error) {
	if err := validation.IDs(blogID, id); err != nil {
		return nil, err
	}
	if _, err := s.refs.Blog(ctx, blogID); err != nil {
		return nil, err
	}

	comment, err := s.repo.FindByID(ctx, blogID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("ID \"%s\" is not associated to any comment", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get comment %s: %w", id, err)
	}
	return comment, nil
}

func (s *CommentService) Create(ctx context.Context, blogID string, in ports.CommentInput) (*domain.Comment, error) {
	if err := validation.ID(blogID); err != nil {
		return nil, err
	}
	in.Content = strings.TrimSpace(in.Content)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.refs.Account(ctx, "username", in.Username); err != nil {
		return nil, err
	}
	if _, err := s.refs.Blog(ctx, blogID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Comment{
		Content:   in.Content,
		Blog:      blogID,
		Username:  in.Username,
		Timestamp: s.now(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("blog_id", blogID).Msg("failed to create comment")
		return nil, domain.Internal("Could not create comment", err)
	}
	return created, nil
}

func (s *CommentService) Delete(ctx context.Context, blogID, id string) error {
	if _, err := s.Get(ctx, blogID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, blogID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("ID \"%s\" is not associated to any comment", id)
		}
		s.log.Error().Err(err).Str("comment_id", id).Msg("failed to delete comment")
		return domain.Internal("Could not delete comment", err)
	}
	return nil
}
