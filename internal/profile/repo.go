package profile

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
)

var (
	ErrNotFound         = errors.New("profil introuvable")
	ErrUsernameTooShort = errors.New("Display name must be at least 3 characters.")
	ErrUsernameTaken    = errors.New("nom déjà utilisé")
)

// uniqueViolation reconnaît la violation de profiles_username_lower_idx (code 23505)
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func mapWriteError(err error) error {
	if err != nil && uniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}

// ExistsByUsername vérifie si le nom est déjà pris (sans tenir compte de la casse)
func ExistsByUsername(username string) (bool, error) {
	var count int64
	err := database.DB.Model(&Profile{}).
		Where("LOWER(username) = LOWER(?)", strings.TrimSpace(username)).
		Count(&count).Error
	return count > 0, err
}

func FindByID(id string) (*Profile, error) {
	var p Profile
	if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func Create(p *Profile) error {
	if p.Role == "" {
		p.Role = RoleUser
	}
	return mapWriteError(database.DB.Create(p).Error)
}

// Update enregistre le profil modifié (nom, avatar)
func Update(p *Profile) error {
	return mapWriteError(database.DB.Save(p).Error)
}

// ValidateUsername applique les règles de nommage de l'inscription
func ValidateUsername(username string) error {
	if len([]rune(strings.TrimSpace(username))) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	return nil
}
