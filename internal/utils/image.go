package utils

import (
	"bytes"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
)

// rasterTypes sont les seuls formats acceptés dans le bucket public (pas de SVG)
var rasterTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// ImageMimeType identifie une image à partir de ses octets.
// Le type déclaré et l'extension ne servent qu'au HEIC, que le sniffer ne reconnaît pas,
// et seulement si le contenu porte bien une boîte "ftyp".
func ImageMimeType(filename, declared string, data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}

	sniffed := http.DetectContentType(data)
	if _, ok := rasterTypes[sniffed]; ok {
		return sniffed, true
	}
	if sniffed != "application/octet-stream" || !isISOBaseMedia(data) {
		return "", false
	}

	declared = strings.ToLower(strings.TrimSpace(declared))
	ext := strings.ToLower(filepath.Ext(filename))
	if declared == "image/heic" || declared == "image/heif" || ext == ".heic" || ext == ".heif" {
		return "image/heic", true
	}
	return "", false
}

func isISOBaseMedia(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp"))
}

// ExtensionForMime retourne l'extension associée à un type MIME image
func ExtensionForMime(mimeType string) string {
	if ext, ok := rasterTypes[mimeType]; ok {
		return ext
	}
	return ".jpg"
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeFilename nettoie un nom de fichier pour l'utiliser dans une clé de stockage
func SafeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if base == "" || base == "." {
		return "image"
	}
	return base
}
