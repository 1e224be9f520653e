package services

import (
	"context"
	"log/slog"
	"time"

	"postlike/internal/repository"
)

const activityLayout = "2006-01-02 15-04-05"

type UserActivity struct {
	LastLogin   string `json:"last_login"`
	LastRequest string `json:"last_request"`
}

// ActivityService keeps users' last_request current and reports it.
type ActivityService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewActivityService(repo *repository.Repository) *ActivityService {
	return &ActivityService{repo: repo, now: time.Now}
}

func (s *ActivityService) WithClock(now func() time.Time) *ActivityService {
	s.now = now
	return s
}

// Touch stamps the user's last_request with the current time.
func (s *ActivityService) Touch(ctx context.Context, userID uint) error {
	found, err := s.repo.TouchLastRequest(ctx, userID, s.now().Unix())
	if err != nil {
		return err
	}
	if !found {
		slog.Default().With("module", "activity").WarnContext(ctx, "last_request not updated", "user_id", userID)
	}
	return nil
}

// UserActivity reports the token's login time and the stored last_request.
func (s *ActivityService) UserActivity(ctx context.Context, identity Identity) (UserActivity, error) {
	user, err := s.repo.FindUserByID(ctx, identity.UserID)
	if err != nil {
		return UserActivity{}, err
	}
	return UserActivity{
		LastLogin:   identity.NotBefore.UTC().Format(activityLayout),
		LastRequest: time.Unix(user.LastRequest, 0).UTC().Format(activityLayout),
	}, nil
}
