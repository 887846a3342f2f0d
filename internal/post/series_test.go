package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTaleEmpty(t *testing.T) {
	assert.Nil(t, CurrentTale(nil))
}

func TestCurrentTale(t *testing.T) {
	// du plus récent au plus ancien
	posts := []Post{
		{ID: "5", StorySeries: "The Glass Sea", ImageURL: ""},
		{ID: "4", StorySeries: "Other"},
		{ID: "3", StorySeries: "The Glass Sea", ImageURL: "https://img/3.png"},
		{ID: "2", StorySeries: "The Glass Sea", ImageURL: "https://img/2.png"},
		{ID: "1", StorySeries: "The Glass Sea"},
	}

	tale := CurrentTale(posts)
	require.NotNil(t, tale)
	assert.Equal(t, "The Glass Sea", tale.Series)
	require.Len(t, tale.Chapters, 4)
	assert.Equal(t, "5", tale.Chapters[0].ID)
	assert.Equal(t, "https://img/2.png", tale.Cover)
}

func TestCurrentTaleIgnoresCommunityPosts(t *testing.T) {
	posts := []Post{
		{ID: "user-post", Type: TypeImage, ImageURL: "https://img/user.png"},
		{ID: "ch2", StorySeries: "The Salt Queen"},
		{ID: "ch1", StorySeries: "The Salt Queen", ImageURL: "https://img/ch1.png"},
	}

	tale := CurrentTale(posts)
	require.NotNil(t, tale)
	assert.Equal(t, "The Salt Queen", tale.Series)
	require.Len(t, tale.Chapters, 2)
	assert.Equal(t, "ch2", tale.Chapters[0].ID)
	assert.Equal(t, "https://img/ch1.png", tale.Cover)
}

func TestCurrentTaleOnlyCommunityPosts(t *testing.T) {
	assert.Nil(t, CurrentTale([]Post{{ID: "a"}, {ID: "b"}}))
}

func TestBookshelf(t *testing.T) {
	posts := []Post{
		{ID: "4", StorySeries: "Moonwell"},
		{ID: "3", StorySeries: "Ashes"},
		{ID: "2", StorySeries: "Moonwell"},
		{ID: "1"},
	}

	books := Bookshelf(posts)
	require.Len(t, books, 2)
	assert.Equal(t, "4", books[0].ID)
	assert.Equal(t, "3", books[1].ID)
}

func TestBookshelfEmpty(t *testing.T) {
	books := Bookshelf(nil)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}
