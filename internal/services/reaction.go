package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"postlike/internal/models"
	"postlike/internal/repository"
)

// Flag is a request field that clients send either as the string "True"
// or as a JSON boolean. Any casing of "true", and "1", also count as set.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = false
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

type ReactionInput struct {
	Liked   Flag `json:"liked"`
	Unliked Flag `json:"unliked"`
}

// Desired resolves the two request flags into one reaction. Like is checked
// first, so a request carrying both flags is a like. The empty result means
// the request asks for nothing.
func (in ReactionInput) Desired() models.Reaction {
	switch {
	case bool(in.Liked):
		return models.ReactionLike
	case bool(in.Unliked):
		return models.ReactionUnlike
	default:
		return ""
	}
}

// ReactionService applies like/unlike requests. It keeps at most one ledger
// row per (post, user) and moves the post counters in the same transaction.
type ReactionService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewReactionService(repo *repository.Repository) *ReactionService {
	return &ReactionService{repo: repo, now: time.Now}
}

func (s *ReactionService) WithClock(now func() time.Time) *ReactionService {
	s.now = now
	return s
}

func reactionLogger() *slog.Logger {
	return slog.Default().With("module", "reaction")
}

// Apply records identity's desired reaction to postID and returns the post
// with refreshed counters. An empty desired reaction leaves everything as is.
func (s *ReactionService) Apply(ctx context.Context, identity Identity, postID uint, desired models.Reaction) (*models.Post, error) {
	var result *models.Post

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		post, err := tx.LockPost(ctx, postID)
		if err != nil {
			return err
		}
		if !desired.Valid() {
			result = post
			return nil
		}

		current, err := tx.FindAssociation(ctx, postID, identity.UserID)
		if err != nil {
			return err
		}

		at := s.now().UTC().Truncate(time.Second)

		switch {
		case current == nil:
			if err := tx.InsertAssociation(ctx, &models.Association{
				PostID:   postID,
				UserID:   identity.UserID,
				WhichOne: desired,
				Date:     at,
			}); err != nil {
				return err
			}
			if err := tx.AdjustCounters(ctx, postID, desired, ""); err != nil {
				return err
			}

		case current.WhichOne == desired:
			result = post
			return nil

		default:
			previous := current.WhichOne
			if counterValue(post, previous) <= 0 {
				ledger, err := tx.CountPostReactions(ctx, postID, previous)
				if err != nil {
					return err
				}
				reactionLogger().WarnContext(ctx, "counter drift, clamping at zero",
					"post_id", postID,
					"counter", previous.CounterColumn(),
					"ledger_count", ledger,
				)
			}
			if err := tx.UpdateAssociation(ctx, postID, identity.UserID, desired, at); err != nil {
				return err
			}
			if err := tx.AdjustCounters(ctx, postID, desired, previous); err != nil {
				return err
			}
		}

		result, err = tx.FindPost(ctx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	reactionLogger().DebugContext(ctx, "reaction applied",
		"post_id", postID,
		"user_id", identity.UserID,
		"reaction", string(desired),
		"liked", result.Liked,
		"unliked", result.Unliked,
	)
	return result, nil
}

func counterValue(post *models.Post, r models.Reaction) int {
	if r == models.ReactionUnlike {
		return post.Unliked
	}
	return post.Liked
}
