package profile

import (
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
)

var (
	whitelistMu sync.RWMutex
	whitelist   map[string]bool
)

// SetAdminEmails définit les emails qui ont toujours le rôle admin
func SetAdminEmails(emails []string) {
	m := make(map[string]bool, len(emails))
	for _, e := range emails {
		m[strings.ToLower(strings.TrimSpace(e))] = true
	}
	whitelistMu.Lock()
	whitelist = m
	whitelistMu.Unlock()
}

func isWhitelisted(email string) bool {
	whitelistMu.RLock()
	defer whitelistMu.RUnlock()
	return whitelist[strings.ToLower(strings.TrimSpace(email))]
}

// IsAdmin vérifie si un utilisateur est admin à partir de son ID
func IsAdmin(userID string) (bool, error) {
	var role string
	if err := database.DB.Model(&Profile{}).Select("role").Where("id = ?", userID).Scan(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // utilisateur introuvable, donc pas admin
		}
		return false, err
	}
	return role == RoleAdmin, nil
}

// HasAdminAccess combine la liste blanche d'emails et le rôle du profil
func HasAdminAccess(userID, email string) (bool, error) {
	if isWhitelisted(email) {
		return true, nil
	}
	return IsAdmin(userID)
}

// ResolveRole retourne le rôle effectif d'un profil
func ResolveRole(p *Profile, email string) string {
	if isWhitelisted(email) || (p != nil && p.Role == RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}
