package post

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/storage"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngDataURL() string {
	return dataURL("image/png", pngBytes)
}

func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

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

type fakeS3 struct {
	keys    []string
	deletes []string
	failPut bool
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("bucket unreachable")
	}
	_, _ = io.ReadAll(in.Body)
	f.keys = append(f.keys, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func useFakeStorage(t *testing.T) *fakeS3 {
	f := &fakeS3{}
	storage.Use(f, "https://proj.supabase.co", "images")
	t.Cleanup(func() { storage.Use(nil, "", "") })
	return f
}

// asUser simule les middlewares d'authentification
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func newRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser(userID))
	return r
}

func do(r *gin.Engine, method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	return do(r, method, path, "application/json", bytes.NewBufferString(body))
}

// multipartBody construit un formulaire avec des champs texte et, si filename est non vide, un fichier "image"
func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (string, *bytes.Buffer) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), &buf
}

// multipartImage envoie un fichier "image" avec un Content-Type choisi par le client
func multipartImage(t *testing.T, fields map[string]string, filename, contentType string, content []byte) (string, *bytes.Buffer) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	fw, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), &buf
}

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "user_id", "title", "content", "image_url", "type", "likes", "story_series", "status"})
}
