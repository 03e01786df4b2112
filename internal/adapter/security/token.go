package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access token payload.
type Claims struct {
	Email                string              `json:"email"`
	Role                 domain.Role         `json:"role"`
	OrganizationID       string              `json:"organizationId"`
	ParentOrganizationID string              `json:"parentOrganizationId,omitempty"`
	Permissions          []domain.Permission `json:"permissions"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenService = (*JWTService)(nil)

func NewJWTService(secret, issuer string, ttl time.Duration) (*JWTService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("ttl must be greater than zero")
	}
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Issue signs an HS256 token for caller.
func (s *JWTService) Issue(caller domain.Caller) (string, error) {
	if caller.UserID == "" {
		return "", errors.New("caller has no user id")
	}

	now := s.now()
	claims := Claims{
		Email:                caller.Email,
		Role:                 caller.Role,
		OrganizationID:       caller.OrganizationID,
		ParentOrganizationID: caller.ParentOrganizationID,
		Permissions:          caller.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   caller.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry. Every failure is reported as
// domain.ErrUnauthorized.
func (s *JWTService) Verify(token string) (domain.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Caller{}, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Caller{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return domain.Caller{}, fmt.Errorf("%w: malformed claims", domain.ErrUnauthorized)
	}

	return domain.Caller{
		UserID:               claims.Subject,
		Email:                claims.Email,
		Role:                 claims.Role,
		OrganizationID:       claims.OrganizationID,
		ParentOrganizationID: claims.ParentOrganizationID,
		Permissions:          claims.Permissions,
	}, nil
}
