package like

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
)

// Toggle ajoute ou retire le like de userID sur postID et répercute le compteur posts.likes.
// Retourne true si le post est désormais aimé.
func Toggle(userID, postID string) (bool, error) {
	liked := false
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Delete(&Like{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			return tx.Table("posts").Where("id = ? AND likes > 0", postID).
				UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			newLike := newLike(userID, postID)
			if err := tx.Create(&newLike).Error; err != nil {
				return err
			}
			liked = true
			return tx.Table("posts").Where("id = ?", postID).
				UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error

		default:
			return err
		}
	})
	return liked, err
}

// Status retourne le nombre de likes et si userID (éventuellement vide) a aimé le post
func Status(postID, userID string) (Tally, error) {
	resp := Tally{PostID: postID}
	if err := database.DB.Model(&Like{}).Where("post_id = ?", postID).Count(&resp.Count).Error; err != nil {
		return resp, err
	}
	if userID == "" {
		return resp, nil
	}

	var mine int64
	if err := database.DB.Model(&Like{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&mine).Error; err != nil {
		return resp, err
	}
	resp.IsLiked = mine > 0
	return resp, nil
}
