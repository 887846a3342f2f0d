package post

// Tale est le récit en cours affiché sur l'accueil
type Tale struct {
	Series   string `json:"series"`
	Chapters []Post `json:"chapters"`
	Cover    string `json:"cover"`
}

// CurrentTale choisit la série du chapitre actif le plus récent et rassemble ses chapitres.
// posts doit être trié du plus récent au plus ancien. Les posts hors série (publications
// de la communauté) ne deviennent jamais des chapitres.
func CurrentTale(posts []Post) *Tale {
	var tale *Tale
	for _, p := range posts {
		if p.StorySeries == "" {
			continue
		}
		if tale == nil {
			tale = &Tale{Series: p.StorySeries, Chapters: []Post{}}
		}
		if p.StorySeries == tale.Series {
			tale.Chapters = append(tale.Chapters, p)
		}
	}
	if tale == nil {
		return nil
	}

	// La couverture est l'image du chapitre le plus ancien qui en possède une
	for i := len(tale.Chapters) - 1; i >= 0; i-- {
		if tale.Chapters[i].ImageURL != "" {
			tale.Cover = tale.Chapters[i].ImageURL
			break
		}
	}
	return tale
}

// Bookshelf garde un post par série terminée (la première occurrence, donc la plus récente)
func Bookshelf(posts []Post) []Post {
	seen := make(map[string]bool)
	books := []Post{}
	for _, p := range posts {
		if p.StorySeries == "" || seen[p.StorySeries] {
			continue
		}
		seen[p.StorySeries] = true
		books = append(books, p)
	}
	return books
}
