package report

import (
	"time"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/post"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
)

// TargetType est le type d'élément signalé
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
	TargetProfile TargetType = "profile"
)

type Reason string

const (
	ReasonInappropriate Reason = "inappropriate_content"
	ReasonSpam          Reason = "spam"
	ReasonHateSpeech    Reason = "hate_speech"
	ReasonImpersonation Reason = "impersonation"
	ReasonCopyright     Reason = "copyright"
	ReasonOther         Reason = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusResolved Status = "resolved"
	StatusRejected Status = "rejected"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Report struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReporterID string           `json:"reporter_id" gorm:"index"`
	Reporter   *profile.Profile `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`

	TargetType TargetType `json:"target_type" gorm:"index"`
	TargetID   string     `json:"target_id" gorm:"index"`

	Reason      Reason `json:"reason"`
	Description string `json:"description"`

	Status     Status           `json:"status" gorm:"index"`
	AdminID    *string          `json:"admin_id,omitempty"`
	Admin      *profile.Profile `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	AdminNote  string           `json:"admin_note"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

type CreateReportInput struct {
	TargetType  TargetType `json:"target_type" binding:"required"`
	TargetID    string     `json:"target_id" binding:"required"`
	Reason      Reason     `json:"reason" binding:"required"`
	Description string     `json:"description"`
}

type UpdateReportInput struct {
	Status    Status `json:"status" binding:"required"`
	AdminNote string `json:"admin_note"`
}

// ReportWithTarget joint l'élément signalé au signalement
type ReportWithTarget struct {
	Report
	TargetPost    *post.Post       `json:"target_post,omitempty"`
	TargetComment *post.Comment    `json:"target_comment,omitempty"`
	TargetProfile *profile.Profile `json:"target_profile,omitempty"`
}

func (r Reason) IsValid() bool {
	switch r {
	case ReasonInappropriate, ReasonSpam, ReasonHateSpeech,
		ReasonImpersonation, ReasonCopyright, ReasonOther:
		return true
	}
	return false
}

func (t TargetType) IsValid() bool {
	switch t {
	case TargetPost, TargetComment, TargetProfile:
		return true
	}
	return false
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Closed indique un signalement traité (résolu ou rejeté)
func (s Status) Closed() bool {
	return s == StatusResolved || s == StatusRejected
}
