package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrAuth = errors.New("supabase auth error")

// AuthError porte le statut et le message renvoyés par Supabase Auth
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("supabase auth %d: %s", e.Status, e.Message)
}

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

type User struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// Name retourne le nom saisi à l'inscription (user_metadata.name)
func (u *User) Name() string {
	if u == nil {
		return ""
	}
	name, _ := u.UserMetadata["name"].(string)
	return name
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         *User  `json:"user"`
}

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (b *errorBody) text() string {
	for _, s := range []string{b.ErrorDescription, b.Msg, b.Message, b.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

type Client struct {
	http       *resty.Client
	serviceKey string
}

func NewClient(baseURL, anonKey, serviceKey string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("apikey", anonKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: rc, serviceKey: serviceKey}
}

// SignUp crée le compte dans Supabase Auth avec les métadonnées fournies
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*User, error) {
	// Avec confirmation par mail Supabase renvoie l'utilisateur seul,
	// sans confirmation il renvoie une session contenant l'utilisateur
	var result struct {
		User
		Nested *User `json:"user"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"email":    email,
			"password": password,
			"data":     metadata,
		}).
		SetResult(&result).
		SetError(&errorBody{}).
		Post("/auth/v1/signup")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	if result.Nested != nil && result.Nested.ID != "" {
		return result.Nested, nil
	}
	if result.User.ID == "" {
		return nil, &AuthError{Status: resp.StatusCode(), Message: "no user id returned"}
	}
	return &result.User, nil
}

// SignIn échange email + mot de passe contre une session
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.token(ctx, "password", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Refresh renouvelle l'access token à partir du refresh token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return c.token(ctx, "refresh_token", map[string]string{
		"refresh_token": refreshToken,
	})
}

func (c *Client) token(ctx context.Context, grant string, body map[string]string) (*Session, error) {
	var session Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", grant).
		SetBody(body).
		SetResult(&session).
		SetError(&errorBody{}).
		Post("/auth/v1/token")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, &AuthError{Status: resp.StatusCode(), Message: "no access token returned"}
	}
	return &session, nil
}

// SignOut révoque la session associée à l'access token
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetError(&errorBody{}).
		Post("/auth/v1/logout")
	return check(resp, err)
}

// DeleteUser supprime un utilisateur Supabase Auth (clé service role requise)
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if c.serviceKey == "" {
		return errors.New("SUPABASE_SERVICE_ROLE_KEY manquant")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.serviceKey).
		SetAuthToken(c.serviceKey).
		SetError(&errorBody{}).
		Delete("/auth/v1/admin/users/" + id)
	return check(resp, err)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("appel Supabase: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	msg := http.StatusText(resp.StatusCode())
	if body, ok := resp.Error().(*errorBody); ok && body.text() != "" {
		msg = body.text()
	}
	return &AuthError{Status: resp.StatusCode(), Message: msg}
}

// Auth est le client partagé par les handlers, initialisé au démarrage
var Auth *Client

func Init(baseURL, anonKey, serviceKey string) {
	Auth = NewClient(baseURL, anonKey, serviceKey)
}
