package post

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
)

var ErrNotFound = errors.New("post introuvable")

func withAuthors(posts []Post) []Post {
	for i := range posts {
		posts[i].fillAuthor()
	}
	return posts
}

// Create enregistre un post (sans toucher au profil de l'auteur)
func Create(p *Post) error {
	if p.Status == "" {
		p.Status = StatusActive
	}
	return database.DB.Omit("Author").Create(p).Error
}

func FindByID(id string) (*Post, error) {
	var p Post
	if err := database.DB.Preload("Author").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.fillAuthor()
	return &p, nil
}

// ListCommunity retourne l'archive commune, du plus récent au plus ancien
func ListCommunity(limit int, postType string) ([]Post, error) {
	if limit <= 0 || limit > CommunityLimit {
		limit = CommunityLimit
	}
	query := database.DB.Preload("Author").Order("created_at DESC").Limit(limit)
	if postType != "" {
		query = query.Where("type = ?", postType)
	}

	var posts []Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return withAuthors(posts), nil
}

func ListByUser(userID string) ([]Post, error) {
	var posts []Post
	if err := database.DB.Preload("Author").Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return withAuthors(posts), nil
}

// ListSeriesChapters retourne les chapitres (posts rattachés à une série) d'un statut donné
func ListSeriesChapters(status string) ([]Post, error) {
	var posts []Post
	if err := database.DB.Preload("Author").
		Where("status = ? AND story_series <> ''", status).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return withAuthors(posts), nil
}

// SetSeriesStatus change le statut de tous les chapitres d'une série
func SetSeriesStatus(series, status string) (int64, error) {
	res := database.DB.Model(&Post{}).Where("story_series = ?", series).Update("status", status)
	return res.RowsAffected, res.Error
}

func Delete(p *Post) error {
	return database.DB.Delete(&Post{}, "id = ?", p.ID).Error
}

// ListComments retourne les commentaires d'un post, du plus ancien au plus récent
func ListComments(postID string) ([]Comment, error) {
	var comments []Comment
	if err := database.DB.Preload("Author").Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].fillAuthor()
	}
	return comments, nil
}

func CreateComment(c *Comment) error {
	return database.DB.Omit("Author").Create(c).Error
}

func FindComment(id string) (*Comment, error) {
	var c Comment
	if err := database.DB.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func DeleteComment(id string) error {
	return database.DB.Delete(&Comment{}, "id = ?", id).Error
}

func Exists(id string) (bool, error) {
	var count int64
	err := database.DB.Model(&Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
