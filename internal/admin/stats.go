package admin

import (
	"errors"
	"time"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
)

const (
	dateLayout      = "2006-01-02"
	defaultRange    = 30
	maxRange        = 366
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

// ErrRangeTooLong : plus de maxRange jours entre start_date et end_date
var ErrRangeTooLong = errors.New("date range exceeds 366 days")

type Stats struct {
	Total    int64 `json:"total"`
	Stories  int64 `json:"stories"`
	Images   int64 `json:"images"`
	Users    int64 `json:"users"`
	Comments int64 `json:"comments"`
	Likes    int64 `json:"likes"`
}

// DayPoint est un point du graphique d'évolution
type DayPoint struct {
	Date     string `json:"date"`
	Stories  int64  `json:"stories"`
	Images   int64  `json:"images"`
	Comments int64  `json:"comments"`
}

type Slice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

type Author struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Posts    int64  `json:"post_count" gorm:"column:post_count"`
	Likes    int64  `json:"likes_count" gorm:"column:likes_count"`
}

func LoadStats() (*Stats, error) {
	var s Stats
	var typed []struct {
		Type  string
		Count int64
	}
	if err := database.DB.Table("posts").Select("type, COUNT(*) AS count").Group("type").Scan(&typed).Error; err != nil {
		return nil, err
	}
	for _, t := range typed {
		switch t.Type {
		case "story":
			s.Stories = t.Count
		case "image":
			s.Images = t.Count
		}
		s.Total += t.Count
	}

	if err := database.DB.Table("profiles").Count(&s.Users).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Table("comments").Count(&s.Comments).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Table("likes").Count(&s.Likes).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// DateRange lit start_date/end_date (AAAA-MM-JJ); par défaut les 30 derniers jours
func DateRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	end := truncateDay(now)
	if endStr != "" {
		parsed, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -defaultRange)
	if startStr != "" {
		parsed, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if start.After(end) {
		start, end = end, start
	}
	if end.After(start.AddDate(0, 0, maxRange)) {
		return time.Time{}, time.Time{}, ErrRangeTooLong
	}
	return start, end, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type dayCount struct {
	Day   string
	Kind  string
	Count int64
}

// Evolution compte les histoires, images et commentaires créés chaque jour entre start et end inclus
func Evolution(start, end time.Time) ([]DayPoint, error) {
	until := end.AddDate(0, 0, 1)

	var posts []dayCount
	if err := database.DB.Table("posts").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS day, type AS kind, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, until).
		Group("day, kind").
		Scan(&posts).Error; err != nil {
		return nil, err
	}

	var comments []dayCount
	if err := database.DB.Table("comments").
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') AS day, 'comment' AS kind, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, until).
		Group("day").
		Scan(&comments).Error; err != nil {
		return nil, err
	}

	return fillDays(start, end, append(posts, comments...)), nil
}

// fillDays produit un point par jour, y compris les jours sans activité
func fillDays(start, end time.Time, counts []dayCount) []DayPoint {
	byDay := make(map[string]*DayPoint)
	points := []DayPoint{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		points = append(points, DayPoint{Date: d.Format(dateLayout)})
	}
	for i := range points {
		byDay[points[i].Date] = &points[i]
	}

	for _, c := range counts {
		p, ok := byDay[c.Day]
		if !ok {
			continue
		}
		switch c.Kind {
		case "story":
			p.Stories += c.Count
		case "image":
			p.Images += c.Count
		case "comment":
			p.Comments += c.Count
		}
	}
	return points
}

// Distribution répartit l'activité de la période pour le graphique en secteurs
func Distribution(start, end time.Time) ([]Slice, error) {
	until := end.AddDate(0, 0, 1)
	var stories, images, comments, likes int64

	if err := database.DB.Table("posts").Where("created_at >= ? AND created_at < ? AND type = ?", start, until, "story").Count(&stories).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Table("posts").Where("created_at >= ? AND created_at < ? AND type = ?", start, until, "image").Count(&images).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Table("comments").Where("created_at >= ? AND created_at < ?", start, until).Count(&comments).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Table("likes").Where("created_at >= ? AND created_at < ?", start, until).Count(&likes).Error; err != nil {
		return nil, err
	}

	return []Slice{
		{Name: "Stories", Value: stories, Color: "#6366F1"},
		{Name: "Visions", Value: images, Color: "#EC4899"},
		{Name: "Whispers", Value: comments, Color: "#14B8A6"},
		{Name: "Likes", Value: likes, Color: "#F59E0B"},
	}, nil
}

// TopAuthors classe les auteurs par nombre de posts puis par likes reçus
func TopAuthors(limit int) ([]Author, error) {
	if limit < 1 || limit > MaxTopLimit {
		limit = DefaultTopLimit
	}

	authors := []Author{}
	err := database.DB.Table("posts").
		Select("posts.user_id, COALESCE(profiles.username, '') AS username, COUNT(posts.id) AS post_count, COALESCE(SUM(posts.likes), 0) AS likes_count").
		Joins("LEFT JOIN profiles ON posts.user_id = profiles.id").
		Group("posts.user_id, profiles.username").
		Order("post_count DESC, likes_count DESC").
		Limit(limit).
		Scan(&authors).Error
	return authors, err
}
