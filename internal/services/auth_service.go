package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"
	authorizer "github.com/localnerve/authorizer-go"
	"github.com/rs/zerolog"
)

// ErrInvalidSession is returned for credentials that do not name a signed-in reader
var ErrInvalidSession = errors.New("session is not valid")

// Session is a validated sign-in
type Session struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the session carries role
func (s *Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authenticator validates the credential a request carries
type Authenticator interface {
	Validate(credential string) (*Session, error)
}

// RequestBound is implemented by authenticators that finish setup on the first request
type RequestBound interface {
	Init(requestProtocol, requestHost string) error
}

// NewAuthenticator returns the authenticator selected by AUTH_MODE
func NewAuthenticator(cfg *config.Config, log zerolog.Logger) (Authenticator, error) {
	switch cfg.AuthMode {
	case config.AuthModeAuthorizer:
		return NewAuthorizerAuthenticator(cfg, log), nil
	case config.AuthModeJWT:
		return NewJWTAuthenticator(cfg.JWTSecret), nil
	}
	return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
}

// AuthorizerAuthenticator validates authorizer session cookies
type AuthorizerAuthenticator struct {
	cfg     *config.Config
	log     zerolog.Logger
	once    sync.Once
	client  *authorizer.AuthorizerClient
	initErr error
}

// NewAuthorizerAuthenticator returns an authenticator whose client is created on the first request
func NewAuthorizerAuthenticator(cfg *config.Config, log zerolog.Logger) *AuthorizerAuthenticator {
	return &AuthorizerAuthenticator{cfg: cfg, log: log}
}

// Init creates the authorizer client once, redirecting back to the requesting origin
func (a *AuthorizerAuthenticator) Init(requestProtocol, requestHost string) error {
	a.once.Do(func() {
		if err := utils.PingAuthorizer(a.cfg.AuthzURL); err != nil {
			a.initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		a.log.Info().
			Str("authorizer_url", a.cfg.AuthzURL).
			Str("client_id", a.cfg.AuthzClientID).
			Str("redirect_url", redirectURL).
			Msg("Initializing Authorizer")

		client, err := authorizer.NewAuthorizerClient(a.cfg.AuthzClientID, a.cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			a.initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
		a.client = client
	})
	return a.initErr
}

// Initialized reports whether the client exists
func (a *AuthorizerAuthenticator) Initialized() bool {
	return a.client != nil
}

// Validate checks a session cookie with the authorizer service
func (a *AuthorizerAuthenticator) Validate(cookie string) (*Session, error) {
	if a.client == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	res, err := a.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return nil, ErrInvalidSession
	}

	return sessionFromUser(res.User)
}

// sessionFromUser reads the id and roles of an authorizer user record
func sessionFromUser(user interface{}) (*Session, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("read session user: %w", err)
	}
	var u struct {
		ID    string   `json:"id"`
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("read session user: %w", err)
	}
	if u.ID == "" {
		return nil, ErrInvalidSession
	}
	return &Session{UserID: u.ID, Roles: u.Roles}, nil
}

// Claims are the reader claims of a bearer token
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthenticator validates HS256 bearer tokens
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator returns an authenticator for tokens signed with secret
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Validate parses and verifies a bearer token
func (j *JWTAuthenticator) Validate(tokenString string) (*Session, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidSession
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, ErrInvalidSession
	}

	var roles []string
	if claims.Role != "" {
		roles = []string{claims.Role}
	}
	return &Session{UserID: userID, Roles: roles}, nil
}

// Issue signs a token for userID, valid for ttl
func (j *JWTAuthenticator) Issue(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}
