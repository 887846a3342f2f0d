package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/supabase"
)

func setup(t *testing.T, authHandler http.HandlerFunc) (*gin.Engine, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	originalDB, originalAuth := database.DB, supabase.Auth
	database.DB = db

	srv := httptest.NewServer(authHandler)
	supabase.Init(srv.URL, "anon", "service")

	t.Cleanup(func() {
		database.DB, supabase.Auth = originalDB, originalAuth
		srv.Close()
		mockDB.Close()
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/signup", Signup)
	r.POST("/api/auth/login", Login)
	return r, mock
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func failIfCalled(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected Supabase call to %s", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func TestSignupNameTooShort(t *testing.T) {
	r, _ := setup(t, failIfCalled(t))

	w := post(r, "/api/auth/signup", `{"email":"a@b.c","password":"secret","name":"ab"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Display name must be at least 3 characters.")
}

func TestSignupNameTaken(t *testing.T) {
	r, mock := setup(t, failIfCalled(t))
	mock.ExpectQuery(`SELECT count`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := post(r, "/api/auth/signup", `{"email":"a@b.c","password":"secret","name":"Lucid"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `already woven into the dreamscape`)
}

func TestSignupCreatesProfile(t *testing.T) {
	r, mock := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":"11111111-1111-1111-1111-111111111111"}}`))
	})
	mock.ExpectQuery(`SELECT count`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "profiles"`).WillReturnResult(sqlmock.NewResult(1, 1))

	w := post(r, "/api/auth/signup", `{"email":"Wanderer@Example.com","password":"secret","name":"Wanderer"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"Wanderer"`)
	assert.Contains(t, w.Body.String(), `"email":"wanderer@example.com"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// signupServer répond au signup et enregistre les suppressions de comptes
func signupServer(deleted *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			*deleted = append(*deleted, r.URL.Path)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":"22222222-2222-2222-2222-222222222222"}}`))
	}
}

func TestSignupNameRaceRemovesAuthUser(t *testing.T) {
	var deleted []string
	r, mock := setup(t, signupServer(&deleted))
	mock.ExpectQuery(`SELECT count`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "profiles"`).WillReturnError(&pgconn.PgError{Code: "23505"})

	w := post(r, "/api/auth/signup", `{"email":"late@example.com","password":"secret","name":"Wanderer"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `already woven into the dreamscape`)
	assert.Equal(t, []string{"/auth/v1/admin/users/22222222-2222-2222-2222-222222222222"}, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupProfileFailureRemovesAuthUser(t *testing.T) {
	var deleted []string
	r, mock := setup(t, signupServer(&deleted))
	mock.ExpectQuery(`SELECT count`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "profiles"`).WillReturnError(errors.New("connection reset"))

	w := post(r, "/api/auth/signup", `{"email":"late@example.com","password":"secret","name":"Wanderer"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Contact an admin.")
	assert.Len(t, deleted, 1)
}

func TestLoginPassesAuthError(t *testing.T) {
	r, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	w := post(r, "/api/auth/login", `{"email":"a@b.c","password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid login credentials")
}

func TestLoginMissingFields(t *testing.T) {
	r, _ := setup(t, failIfCalled(t))
	w := post(r, "/api/auth/login", `{"email":"a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
