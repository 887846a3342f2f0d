package profile

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// MinUsernameLength est la longueur minimale d'un nom affiché
	MinUsernameLength = 3
	DefaultName       = "Dreamer"
)

// Profile correspond à la table "profiles" (1-1 avec auth.users)
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID venant de auth.users
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
}

func (Profile) TableName() string {
	return "profiles"
}

// DisplayName choisit le nom affiché: username du profil, puis nom saisi à l'inscription
func DisplayName(p *Profile, metadataName string) string {
	if p != nil && p.Username != "" {
		return p.Username
	}
	if metadataName != "" {
		return metadataName
	}
	return DefaultName
}
