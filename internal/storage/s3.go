package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI est le sous-ensemble du client S3 utilisé ici (remplaçable dans les tests)
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Config struct {
	SupabaseURL string
	Endpoint    string
	Region      string
	Bucket      string
	AccessKey   string
	SecretKey   string
}

var (
	s3Client  ObjectAPI
	bucket    string
	publicURL string // <SUPABASE_URL>/storage/v1/object/public/<bucket>
)

// InitS3 prépare le client S3 pointé sur l'endpoint compatible de Supabase Storage
func InitS3(ctx context.Context, c Config) error {
	if c.Endpoint == "" || c.Bucket == "" {
		return fmt.Errorf("configuration stockage incomplète")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey,
			c.SecretKey,
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("chargement config S3: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	})

	Use(client, c.SupabaseURL, c.Bucket)
	return nil
}

// Use branche un client S3 déjà construit
func Use(client ObjectAPI, supabaseURL, bucketName string) {
	s3Client = client
	bucket = bucketName
	publicURL = fmt.Sprintf("%s/storage/v1/object/public/%s", strings.TrimRight(supabaseURL, "/"), bucketName)
}

// Upload envoie (ou remplace) l'objet et retourne son URL publique
func Upload(ctx context.Context, body io.Reader, key, contentType string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("stockage non initialisé")
	}
	key = strings.TrimLeft(key, "/")

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload échoué: %w", err)
	}

	return PublicURL(key), nil
}

func Delete(ctx context.Context, key string) error {
	if s3Client == nil {
		return fmt.Errorf("stockage non initialisé")
	}
	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("erreur suppression objet : %w", err)
	}
	return nil
}

// PublicURL construit l'URL publique d'un objet du bucket
func PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return publicURL + "/" + strings.Join(segments, "/")
}

// KeyFromPublicURL retrouve la clé d'un objet à partir de son URL publique
func KeyFromPublicURL(u string) (string, bool) {
	prefix := publicURL + "/"
	if publicURL == "" || !strings.HasPrefix(u, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u, prefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
