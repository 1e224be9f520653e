package services

import (
	"context"
	"fmt"
	"time"

	"postlike/internal/models"
	"postlike/internal/repository"
)

const dateLayout = "2006-01-02"

type AnalyticsService struct {
	repo *repository.Repository
}

func NewAnalyticsService(repo *repository.Repository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// CountLikes counts posts currently liked whose last reaction change falls
// on a calendar day (UTC) within [dateFrom, dateTo]. The ledger keeps only
// the latest reaction per user and post, so this is not a historical event
// count.
func (s *AnalyticsService) CountLikes(ctx context.Context, dateFrom, dateTo string) (int64, error) {
	if dateFrom == "" || dateTo == "" {
		return 0, fmt.Errorf("%w: some parameters not exists", models.ErrValidation)
	}

	from, err := time.ParseInLocation(dateLayout, dateFrom, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: date_from: %v", models.ErrValidation, err)
	}
	to, err := time.ParseInLocation(dateLayout, dateTo, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: date_to: %v", models.ErrValidation, err)
	}
	if from.After(to) {
		return 0, fmt.Errorf("%w: date_from > date_to", models.ErrValidation)
	}

	return s.repo.CountReactions(ctx, models.ReactionLike, from, to.AddDate(0, 0, 1))
}
