package repository

import (
	"context"

	"postlike/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *Repository) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := r.db.WithContext(ctx).Order("id ASC").Find(&posts).Error
	return posts, err
}

func (r *Repository) FindPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error; err != nil {
		return nil, translate(err, "no posts with this id")
	}
	return &post, nil
}

// LockPost reads a post with SELECT ... FOR UPDATE so concurrent counter
// changes on the same post serialize. Only meaningful inside Transaction.
func (r *Repository) LockPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&post).Error
	if err != nil {
		return nil, translate(err, "no posts with this id")
	}
	return &post, nil
}

// AdjustCounters increments the counter for inc and, when dec is set,
// decrements dec's counter without letting it drop below zero.
func (r *Repository) AdjustCounters(ctx context.Context, postID uint, inc, dec models.Reaction) error {
	updates := map[string]any{}
	if inc.Valid() {
		col := inc.CounterColumn()
		updates[col] = gorm.Expr(col + " + 1")
	}
	if dec.Valid() {
		col := dec.CounterColumn()
		updates[col] = gorm.Expr("CASE WHEN " + col + " > 0 THEN " + col + " - 1 ELSE 0 END")
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumns(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "no posts with this id")
	}
	return nil
}
