package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Session is the authenticated identity of a request.
type Session struct {
	ID            string      `json:"-"`
	User          models.User `json:"user"`
	Authenticated bool        `json:"authenticated"`
	ExpiresAt     time.Time   `json:"expiresAt"`
}

// ActorID returns the id of the signed-in user.
func (s *Session) ActorID() string { return s.User.ID }

// ActorRole returns the role the user signed in with.
func (s *Session) ActorRole() string { return string(s.User.Type) }

// Clear drops the identity held by the session.
func (s *Session) Clear() {
	s.User = models.User{}
	s.Authenticated = false
}

// AuthService handles login, logout and token validation.
type AuthService struct {
	userRepo  repositories.UserRepository
	sessions  repositories.SessionRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessions repositories.SessionRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Login looks the user up by exact email and role. Passwords are required
// but not checked: the marketplace runs on mock credentials.
func (s *AuthService) Login(email, password string, role models.UserType) (*Session, string, error) {
	if email == "" || password == "" || !role.Valid() {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmailAndType(email, role)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	now := s.now()
	session := &Session{
		ID:            uuid.New().String(),
		User:          *user,
		Authenticated: true,
		ExpiresAt:     now.Add(s.tokenTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":     session.ID,
		"user_id": user.ID,
		"role":    string(user.Type),
		"exp":     session.ExpiresAt.Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.sessions.Save(session.ID, user.ID, s.tokenTTL); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}
	return session, tokenString, nil
}

// Logout revokes the session's token and clears it. It never fails for an
// already revoked session.
func (s *AuthService) Logout(session *Session) error {
	if session == nil {
		return nil
	}
	err := s.sessions.Delete(session.ID)
	session.Clear()
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Authenticate rebuilds the session behind a token. Tokens whose session was
// revoked or expired are rejected even if the signature is still valid.
func (s *AuthService) Authenticate(tokenString string) (*Session, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	sessionID, _ := claims["jti"].(string)
	userID, _ := claims["user_id"].(string)
	if sessionID == "" || userID == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}

	storedUserID, err := s.sessions.GetUserID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: session revoked", ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if storedUserID != userID {
		return nil, fmt.Errorf("%w: session does not belong to user", ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	session := &Session{ID: sessionID, User: *user, Authenticated: true}
	if exp, ok := claims["exp"].(float64); ok {
		session.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return session, nil
}
