package utils

import "strings"

// FirstLine retourne la première ligne non vide d'un texte, débarrassée du markdown de titre
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(line, "#*_ \t\r")
		if line != "" {
			return line
		}
	}
	return ""
}
