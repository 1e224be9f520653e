package models

import (
	"time"
)

type Reaction string

const (
	ReactionLike   Reaction = "like"
	ReactionUnlike Reaction = "unlike"
)

// Valid reports whether r is one of the two stored reaction kinds.
func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionUnlike
}

// CounterColumn is the posts column tracking this reaction.
func (r Reaction) CounterColumn() string {
	if r == ReactionUnlike {
		return "unliked"
	}
	return "liked"
}

// Association is the reaction ledger: one row per (post, user) holding the
// user's current reaction. Date is the time of the last state change.
type Association struct {
	PostID   uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	Post     Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	User     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	WhichOne Reaction  `gorm:"column:which_one;size:10;not null;index:idx_association_reaction_date,priority:1" json:"which_one"`
	Date     time.Time `gorm:"not null;index:idx_association_reaction_date,priority:2" json:"date"`
}

func (Association) TableName() string { return "association" }
