package post

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/storage"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/utils"
)

const maxImageBytes = 10 << 20

var (
	errNoImage     = errors.New("no image provided")
	errNotAnImage  = errors.New("only images may be offered")
	errImageTooBig = errors.New("image too large")
)

type imageFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// readImage lit le fichier image d'un formulaire multipart
func readImage(c *gin.Context, field string) (*imageFile, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, errNoImage
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("lecture image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, errImageTooBig
	}

	mimeType, ok := utils.ImageMimeType(header.Filename, header.Header.Get("Content-Type"), data)
	if !ok {
		return nil, errNotAnImage
	}
	return &imageFile{Name: header.Filename, MimeType: mimeType, Data: data}, nil
}

// imageFromDataURL convertit une image générée (data URL) en fichier à téléverser
func imageFromDataURL(raw string) (*imageFile, error) {
	declared, data, err := utils.DecodeDataURL(raw)
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, errImageTooBig
	}
	// le type annoncé par la data URL n'est pas fiable, seul le contenu compte
	mimeType, ok := utils.ImageMimeType("", declared, data)
	if !ok {
		return nil, errNotAnImage
	}
	return &imageFile{Name: "generated" + utils.ExtensionForMime(mimeType), MimeType: mimeType, Data: data}, nil
}

// imageError répond à une erreur de lecture d'image
func imageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errImageTooBig):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "This offering is too heavy for the archive."})
	case errors.Is(err, errNoImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image offering is required."})
	case errors.Is(err, utils.ErrInvalidDataURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "The vision could not be read."})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only images may be offered."})
	}
}

// storageKey construit "<dossier>/<unix ms>_<nom>"
func storageKey(folder, name string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", folder, now.UnixMilli(), utils.SafeFilename(name))
}

func uploadImage(ctx context.Context, img *imageFile, folder string) (string, error) {
	return storage.Upload(ctx, bytes.NewReader(img.Data), storageKey(folder, img.Name, time.Now()), img.MimeType)
}

// removeUploaded supprime un objet déjà téléversé quand l'insertion en base échoue
func removeUploaded(ctx context.Context, url string) {
	key, ok := storage.KeyFromPublicURL(url)
	if !ok {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		logs.LogJSON("WARN", "Orphan image left in storage", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
	}
}
