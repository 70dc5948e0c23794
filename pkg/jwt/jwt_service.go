package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"souschef/domain"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string, version int) (string, time.Time, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (*UserClaims, error)
	}

	UserClaims struct {
		UserID  string `json:"user_id"`
		Role    string `json:"role"`
		Version int    `json:"ver"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

const defaultTTL = 120 * time.Minute

func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    "SOUSCHEF",
		ttl:       ttl,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string, version int) (string, time.Time, error) {
	if j.secretKey == "" {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}

	issuedAt := j.now()
	claims := UserClaims{
		UserID:  userID,
		Role:    role,
		Version: version,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, issuedAt, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &UserClaims{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (*UserClaims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*UserClaims)
	if !ok || claims.UserID == "" || claims.Issuer != j.issuer {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
