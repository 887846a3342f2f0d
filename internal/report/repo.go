package report

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/post"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
)

var (
	ErrNotFound       = errors.New("signalement introuvable")
	ErrTargetNotFound = errors.New("élément signalé introuvable")
	ErrDuplicate      = errors.New("élément déjà signalé")
)

// Filter restreint la liste admin des signalements
type Filter struct {
	Status     string
	TargetType string
	Reason     string
	Page       int
	Limit      int
}

func (f *Filter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

func targetExists(targetType TargetType, targetID string) (bool, error) {
	var model interface{}
	switch targetType {
	case TargetPost:
		model = &post.Post{}
	case TargetComment:
		model = &post.Comment{}
	case TargetProfile:
		model = &profile.Profile{}
	default:
		return false, nil
	}

	var count int64
	err := database.DB.Model(model).Where("id = ?", targetID).Count(&count).Error
	return count > 0, err
}

// Create enregistre un signalement en attente; un utilisateur ne signale qu'une fois la même cible
func Create(reporterID string, input CreateReportInput) (*Report, error) {
	exists, err := targetExists(input.TargetType, input.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	var dup int64
	if err := database.DB.Model(&Report{}).
		Where("reporter_id = ? AND target_type = ? AND target_id = ?", reporterID, input.TargetType, input.TargetID).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, ErrDuplicate
	}

	now := time.Now()
	r := Report{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
		ReporterID:  reporterID,
		TargetType:  input.TargetType,
		TargetID:    input.TargetID,
		Reason:      input.Reason,
		Description: input.Description,
		Status:      StatusPending,
	}
	if err := database.DB.Omit("Reporter", "Admin").Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// List retourne une page de signalements (plus récents d'abord) et le total filtré
func List(f Filter) ([]Report, int64, error) {
	f.normalize()

	query := database.DB.Model(&Report{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.TargetType != "" {
		query = query.Where("target_type = ?", f.TargetType)
	}
	if f.Reason != "" {
		query = query.Where("reason = ?", f.Reason)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []Report
	err := query.Preload("Reporter").Preload("Admin").
		Order("created_at DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&reports).Error
	return reports, total, err
}

// WithTarget charge l'élément signalé; une cible supprimée entre-temps est laissée vide
func WithTarget(r Report) ReportWithTarget {
	out := ReportWithTarget{Report: r}
	switch r.TargetType {
	case TargetPost:
		if p, err := post.FindByID(r.TargetID); err == nil {
			out.TargetPost = p
		}
	case TargetComment:
		if cm, err := post.FindComment(r.TargetID); err == nil {
			out.TargetComment = cm
		}
	case TargetProfile:
		if p, err := profile.FindByID(r.TargetID); err == nil {
			out.TargetProfile = p
		}
	}
	return out
}

func FindByID(id string) (*Report, error) {
	var r Report
	if err := database.DB.Preload("Reporter").Preload("Admin").First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Review applique la décision d'un admin
func Review(id, adminID string, input UpdateReportInput) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     input.Status,
		"admin_note": input.AdminNote,
		"admin_id":   adminID,
		"updated_at": now,
	}
	if input.Status.Closed() {
		updates["resolved_at"] = now
	} else {
		updates["resolved_at"] = nil
	}

	res := database.DB.Model(&Report{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func Delete(id string) error {
	res := database.DB.Delete(&Report{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type Count struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Stats compte les signalements par statut, type et raison, plus ceux des dernières 24h
type Stats struct {
	ByStatus []Count `json:"by_status"`
	ByType   []Count `json:"by_type"`
	ByReason []Count `json:"by_reason"`
	Recent   int64   `json:"recent_count"`
}

func countBy(column string) ([]Count, error) {
	counts := []Count{}
	err := database.DB.Model(&Report{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

func GetStats(now time.Time) (*Stats, error) {
	var s Stats
	var err error
	if s.ByStatus, err = countBy("status"); err != nil {
		return nil, err
	}
	if s.ByType, err = countBy("target_type"); err != nil {
		return nil, err
	}
	if s.ByReason, err = countBy("reason"); err != nil {
		return nil, err
	}
	if err := database.DB.Model(&Report{}).Where("created_at > ?", now.Add(-24*time.Hour)).Count(&s.Recent).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
