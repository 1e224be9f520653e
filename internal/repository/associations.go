package repository

import (
	"context"
	"errors"
	"time"

	"postlike/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindAssociation returns the ledger row for (postID, userID), or nil when
// the user has never reacted to the post.
func (r *Repository) FindAssociation(ctx context.Context, postID, userID uint) (*models.Association, error) {
	var assoc models.Association
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Take(&assoc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assoc, nil
}

func (r *Repository) InsertAssociation(ctx context.Context, assoc *models.Association) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(assoc).Error
	return translate(err, "reaction already recorded")
}

// UpdateAssociation overwrites the reaction and its date in place.
func (r *Repository) UpdateAssociation(ctx context.Context, postID, userID uint, reaction models.Reaction, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Association{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		UpdateColumns(map[string]any{
			"which_one": reaction,
			"date":      at,
		}).Error
}

// CountReactions counts ledger rows in the given state whose date falls in
// [from, until).
func (r *Repository) CountReactions(ctx context.Context, reaction models.Reaction, from, until time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Association{}).
		Where("which_one = ? AND date >= ? AND date < ?", reaction, from, until).
		Count(&count).Error
	return count, err
}

// CountPostReactions counts current ledger rows for one post in one state.
func (r *Repository) CountPostReactions(ctx context.Context, postID uint, reaction models.Reaction) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Association{}).
		Where("post_id = ? AND which_one = ?", postID, reaction).
		Count(&count).Error
	return count, err
}
