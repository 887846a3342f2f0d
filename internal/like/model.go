package like

import (
	"time"

	"github.com/google/uuid"
)

// Like : un rêveur a aimé un post, une seule fois par couple (user_id, post_id)
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id" gorm:"type:uuid;uniqueIndex:likes_user_post"`
	PostID    string    `json:"post_id" gorm:"type:uuid;uniqueIndex:likes_user_post"`
}

func (Like) TableName() string {
	return "likes"
}

func newLike(userID, postID string) Like {
	return Like{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UserID:    userID,
		PostID:    postID,
	}
}

// Tally est le compteur d'un post vu par un visiteur (IsLiked reste faux pour un invité)
type Tally struct {
	PostID  string `json:"post_id"`
	Count   int64  `json:"like_count"`
	IsLiked bool   `json:"is_liked"`
}
