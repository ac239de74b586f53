package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

// SessionConfig configures role session tokens.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// SessionService issues and validates role session tokens. Tokens only select
// a role; there are no credentials behind them.
type SessionService struct {
	cfg       SessionConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs the service.
func NewSessionService(cfg SessionConfig, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{cfg: cfg, validator: validate, logger: logger, now: time.Now}
}

// Issue signs a new session for the requested role with a fresh subject.
func (s *SessionService) Issue(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "role must be STUDENT or TEACHER")
	}
	role := models.UserRole(req.Role)
	name := req.DisplayName
	if name == "" {
		name = defaultDisplayName(role)
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.cfg.TTL)
	claims := models.SessionClaims{
		Role:        role,
		DisplayName: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session")
	}
	s.logger.Debug("session issued", zap.String("subject", claims.Subject), zap.String("role", string(role)))

	return &dto.SessionResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		Subject:     claims.Subject,
		Role:        role,
		DisplayName: name,
	}, nil
}

// Validate parses a session token.
func (s *SessionService) Validate(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	return claims, nil
}

// Guest returns the claims used when a request carries no session.
func (s *SessionService) Guest() *models.SessionClaims {
	return &models.SessionClaims{
		Role:        models.RoleStudent,
		DisplayName: defaultDisplayName(models.RoleStudent),
		Guest:       true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "guest",
			Issuer:  s.cfg.Issuer,
		},
	}
}

// Describe converts claims into the session info payload.
func (s *SessionService) Describe(claims *models.SessionClaims) dto.SessionInfo {
	if claims == nil {
		claims = s.Guest()
	}
	return dto.SessionInfo{
		Subject:     claims.ViewerID(),
		Role:        claims.Role,
		DisplayName: claims.DisplayName,
		Guest:       claims.Guest,
	}
}

func defaultDisplayName(role models.UserRole) string {
	if role == models.RoleTeacher {
		return "Dr. Lecturer"
	}
	return "Student"
}
