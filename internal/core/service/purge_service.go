package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/ports"
)

type purgeService struct {
	comments  ports.CommentRepository
	reactions ports.ReactionRepository
	log       zerolog.Logger
}

// NewPurgeService returns the PurgeService run by the blog purge workers.
func NewPurgeService(comments ports.CommentRepository, reactions ports.ReactionRepository, log zerolog.Logger) ports.PurgeService {
	return &purgeService{comments: comments, reactions: reactions, log: log}
}

// PurgeBlog deletes every comment and reaction left behind by a deleted blog.
// Both deletes are attempted even if the first one fails.
func (s *purgeService) PurgeBlog(ctx context.Context, blogID string) error {
	nComments, cErr := s.comments.DeleteByBlog(ctx, blogID)
	nReactions, rErr := s.reactions.DeleteByBlog(ctx, blogID)

	switch {
	case cErr != nil:
		return fmt.Errorf("purge blog %s: comments: %w", blogID, cErr)
	case rErr != nil:
		return fmt.Errorf("purge blog %s: reactions: %w", blogID, rErr)
	}

	s.log.Info().
		Str("blog_id", blogID).
		Int64("comments", nComments).
		Int64("reactions", nReactions).
		Msg("blog purged")
	return nil
}
