package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenDuration is how long an admin token stays valid
	TokenDuration = 24 * time.Hour

	// Login rate limiting per IP
	maxLoginAttempts = 5
	loginWindow      = time.Minute

	jwtSecretKey     = "jwt_secret"
	adminPassHashKey = "admin_password_hash"
)

// SettingsStore is the persistence needed by the auth service.
// Satisfied by *store.DB.
type SettingsStore interface {
	GetSetting(key string) string
	SetSetting(key, value string) error
}

// loginAttempts tracks failed logins within the rate window
type loginAttempts struct {
	count       int
	windowStart time.Time
}

// AuthService issues and validates admin JWTs for match-control endpoints
type AuthService struct {
	secret       []byte
	passwordHash []byte

	mu       sync.Mutex
	attempts map[string]*loginAttempts
}

// NewAuthService creates the auth service. The signing secret is loaded
// from the settings store, or generated and persisted on first run so
// tokens survive restarts. adminPassword, if non-empty, replaces the
// stored password hash.
func NewAuthService(settings SettingsStore, adminPassword string) (*AuthService, error) {
	secret, err := loadOrCreateSecret(settings)
	if err != nil {
		return nil, fmt.Errorf("auth secret: %w", err)
	}

	a := &AuthService{
		secret:   secret,
		attempts: make(map[string]*loginAttempts),
	}

	if adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		a.passwordHash = hash
		if err := settings.SetSetting(adminPassHashKey, string(hash)); err != nil {
			return nil, fmt.Errorf("store admin password: %w", err)
		}
	} else if stored := settings.GetSetting(adminPassHashKey); stored != "" {
		a.passwordHash = []byte(stored)
	} else {
		return nil, errors.New("no admin password configured")
	}

	return a, nil
}

// loadOrCreateSecret loads the JWT signing secret from settings,
// generating a fresh 32-byte secret on first run
func loadOrCreateSecret(settings SettingsStore) ([]byte, error) {
	if stored := settings.GetSetting(jwtSecretKey); stored != "" {
		return hex.DecodeString(stored)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	if err := settings.SetSetting(jwtSecretKey, hex.EncodeToString(secret)); err != nil {
		return nil, err
	}
	log.Println("🔐 Generated new JWT signing secret")
	return secret, nil
}

// allowLogin rate limits login attempts per IP
func (a *AuthService) allowLogin(ip string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	att, ok := a.attempts[ip]
	if !ok || now.Sub(att.windowStart) > loginWindow {
		a.attempts[ip] = &loginAttempts{count: 1, windowStart: now}
		return true
	}
	att.count++
	return att.count <= maxLoginAttempts
}

// issueToken signs a new admin token
func (a *AuthService) issueToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(TokenDuration).Unix(),
	})
	return token.SignedString(a.secret)
}

// ValidateToken parses and verifies an admin token
func (a *AuthService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// HandleLogin issues a token in exchange for the admin password.
// POST /api/auth/login {"password": "..."}
func (a *AuthService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)
	if !a.allowLogin(ip) {
		log.Printf("⚠️ Login rate limit hit from %s", ip)
		RecordConnectionRejected("rate_limit")
		writeError(w, "Too many login attempts", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)); err != nil {
		writeError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := a.issueToken()
	if err != nil {
		writeError(w, "Token generation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"token":     token,
		"expiresIn": int(TokenDuration.Seconds()),
	})
}

// Middleware requires a valid Bearer token on the wrapped routes
func (a *AuthService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			writeError(w, "Authorization required", http.StatusUnauthorized)
			return
		}
		if err := a.ValidateToken(tokenString); err != nil {
			writeError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
