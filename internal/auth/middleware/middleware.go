package auth

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

var ErrRevoked = errors.New("session revoked")

type AuthService struct {
	hmac []byte
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // sid -> when the last token for it expires
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{
		hmac:    []byte(secret),
		ttl:     8 * time.Hour,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// TTL is the lifetime of issued tokens.
func (a *AuthService) TTL() time.Duration { return a.ttl }

// Revoke rejects every token carrying sid until the longest such token
// would have expired anyway.
func (a *AuthService) Revoke(sid string) {
	if sid == "" {
		return
	}
	now := a.now()
	a.mu.Lock()
	defer a.mu.Unlock()
	for k, until := range a.revoked {
		if now.After(until) {
			delete(a.revoked, k)
		}
	}
	a.revoked[sid] = now.Add(a.ttl)
}

func (a *AuthService) Revoked(sid string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	until, ok := a.revoked[sid]
	return ok && !a.now().After(until)
}

// Claims binds a subject and role to one server-side session.
type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"` // "instructor" or "student"
	Sid  string `json:"sid"`
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(sub, role, sid string) (string, error) {
	now := a.now()
	claims := &Claims{
		Sub:  sub,
		Role: role,
		Sid:  sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "docexam",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if c.Sid == "" {
		return nil, errors.New("token has no session")
	}
	if a.Revoked(c.Sid) {
		return nil, ErrRevoked
	}
	return c, nil
}

// JWTMiddleware puts subject, role and session id from a valid bearer token
// into the request context.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			c, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), c.Sub)
			ctx = WithSessionID(ctx, c.Sid)
			ctx = WithRole(ctx, c.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
