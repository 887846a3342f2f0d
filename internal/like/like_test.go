package like

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = originalDB
		mockDB.Close()
	})
	return mock
}

func TestToggleAddsLike(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs("u-1", "p-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO "likes"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "likes"=likes \+ \$1 WHERE id = \$2`).
		WithArgs(1, "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := Toggle("u-1", "p-1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleRemovesLike(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}).AddRow("l-1", "u-1", "p-1"))
	mock.ExpectExec(`DELETE FROM "likes" WHERE id = \$1`).
		WithArgs("l-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "likes"=likes - \$1 WHERE id = \$2 AND likes > 0`).
		WithArgs(1, "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := Toggle("u-1", "p-1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleRollsBackOnCounterFailure(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO "likes"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := Toggle("u-1", "p-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLikeStatusAnonymous(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE post_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/posts/:id/likes", GetLikeStatus)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/p-1/likes", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"post_id":"p-1","like_count":7,"is_liked":false}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleLikeUnknownPost(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/posts/:id/like", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		ToggleLike(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/posts/p-404/like", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusForMember(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE post_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs("u-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	tally, err := Status("p-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, Tally{PostID: "p-1", Count: 3, IsLiked: true}, tally)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLike(t *testing.T) {
	l := newLike("u-1", "p-1")
	assert.Len(t, l.ID, 36)
	assert.Equal(t, "u-1", l.UserID)
	assert.Equal(t, "p-1", l.PostID)
	assert.False(t, l.CreatedAt.IsZero())
}
