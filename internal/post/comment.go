package post

import (
	"time"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
)

type Comment struct {
	ID         string           `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time        `json:"created_at"`
	PostID     string           `json:"post_id" gorm:"index"`
	UserID     string           `json:"user_id"`
	Author     *profile.Profile `json:"-" gorm:"foreignKey:UserID"`
	AuthorName string           `json:"author_name" gorm:"-"`
	Content    string           `json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) fillAuthor() {
	if c.Author != nil && c.Author.Username != "" {
		c.AuthorName = c.Author.Username
		return
	}
	c.AuthorName = UnknownAuthor
}

// MaxCommentLength borne la taille d'un commentaire
const MaxCommentLength = 2000
