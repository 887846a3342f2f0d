package post

import (
	"time"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
)

const (
	TypeStory = "story"
	TypeImage = "image"

	StatusActive   = "active"
	StatusComplete = "complete"

	UnknownAuthor  = "Unknown Dreamer"
	DefaultSeries  = "Untitled Series"
	UntitledVision = "Untitled Vision"
	GeneratedTitle = "A Glimpse from the Void"
	CommunityLimit = 50
)

type Post struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time        `json:"created_at"`
	UserID      string           `json:"user_id"`
	Author      *profile.Profile `json:"-" gorm:"foreignKey:UserID"`
	AuthorName  string           `json:"author_name" gorm:"-"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	ImageURL    string           `json:"image_url"`
	Type        string           `json:"type"`
	Likes       int              `json:"likes"`
	StorySeries string           `json:"story_series"`
	Status      string           `json:"status"`
}

func (Post) TableName() string {
	return "posts"
}

// fillAuthor recopie le nom de l'auteur préchargé
func (p *Post) fillAuthor() {
	if p.Author != nil && p.Author.Username != "" {
		p.AuthorName = p.Author.Username
		return
	}
	p.AuthorName = UnknownAuthor
}

func ValidType(t string) bool {
	return t == TypeStory || t == TypeImage
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusComplete
}
