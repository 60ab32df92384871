// internal/auth/auth.go
//
// Orchestrator client authentication.
// Responsibilities:
//   - Registering clients with a bcrypt-hashed secret.
//   - Exchanging client id + secret for an HS256 JWT.
//   - Middleware that requires a valid bearer token and places the client in
//     the request context.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNameTaken          = errors.New("client name taken")
	ErrInvalidCredentials = errors.New("invalid client id or secret")
	ErrInvalidToken       = errors.New("invalid token")
)

// Client is an orchestrator allowed to create games.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	secretHash string
}

// Service issues and verifies client tokens.
type Service struct {
	db      *sql.DB
	secret  []byte
	expires time.Duration
}

// NewService builds a Service; tokens expire after expiresDays days.
func NewService(db *sql.DB, secret string, expiresDays int) *Service {
	if expiresDays <= 0 {
		expiresDays = 14
	}
	return &Service{db: db, secret: []byte(secret), expires: time.Duration(expiresDays) * 24 * time.Hour}
}

// CreateClient registers a client and returns it with its generated ID.
func (s *Service) CreateClient(ctx context.Context, name, secret string) (*Client, error) {
	name = strings.TrimSpace(name)
	if err := validateClient(name, secret); err != nil {
		return nil, err
	}
	var exists int
	_ = s.db.QueryRowContext(ctx, `SELECT 1 FROM clients WHERE lower(name)=lower(?)`, name).Scan(&exists)
	if exists == 1 {
		return nil, ErrNameTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	c := &Client{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC(), secretHash: string(h)}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO clients (id, name, secret_hash, created_at) VALUES (?,?,?,?)`,
		c.ID, c.Name, c.secretHash, c.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return c, nil
}

// FindClient loads a client by ID.
func (s *Service) FindClient(ctx context.Context, id string) (*Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, secret_hash, created_at FROM clients WHERE id=?`, id)
	var c Client
	var created string
	if err := row.Scan(&c.ID, &c.Name, &c.secretHash, &created); err != nil {
		return nil, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &c, nil
}

// IssueToken checks the client secret and signs a token.
func (s *Service) IssueToken(ctx context.Context, id, secret string) (string, time.Time, error) {
	c, err := s.FindClient(ctx, id)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(c.secretHash), []byte(secret)) != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.Sign(c)
}

// Sign creates an HS256 JWT for c.
func (s *Service) Sign(c *Client) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.expires)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  c.ID,
		"name": c.Name,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// Verify parses a token and returns the client it was issued to.
func (s *Service) Verify(ctx context.Context, token string) (*Client, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	id, _ := claims["sub"].(string)
	if id == "" {
		return nil, ErrInvalidToken
	}
	// Ensure client still exists
	c, err := s.FindClient(ctx, id)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// validateClient enforces basic name/secret rules.
func validateClient(name, secret string) error {
	if len(name) < 3 || len(name) > 40 {
		return errors.New("name must be 3–40 chars")
	}
	for _, r := range name {
		if !(r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("name: letters, numbers, dash, underscore only")
		}
	}
	if len(secret) < 12 || len(secret) > 72 {
		return errors.New("secret must be 12–72 chars")
	}
	return nil
}

// ---------------------------- middleware ------------------------------------

type ctxClientKey struct{}

// RequireAuth enforces a valid bearer token and injects the Client into the context.
func (s *Service) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			c, err := s.Verify(r.Context(), tok)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), c)))
		})
	}
}

// WithClient stores c in ctx.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, ctxClientKey{}, c)
}

// CurrentClient returns the authenticated client, or nil.
func CurrentClient(ctx context.Context) *Client {
	c, _ := ctx.Value(ctxClientKey{}).(*Client)
	return c
}

// bearer extracts a token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
