package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSecretKeySize = 32

type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// JWTMaker HS256
type JWTMaker struct {
	secretKey []byte
	issuer    string
	audience  string
	parser    *jwt.Parser
}

var _ Maker = (*JWTMaker)(nil)

func NewJWTMaker(secretKey, issuer, audience string) (*JWTMaker, error) {
	if len(secretKey) < minSecretKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize)
	}
	return &JWTMaker{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

func (m *JWTMaker) CreateToken(userID int64, username string, duration time.Duration) (string, *Payload, error) {
	payload := NewPayload(userID, username, duration)
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        payload.ID.String(),
			Subject:   fmt.Sprintf("%d", userID),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(payload.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(payload.ExpiredAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", nil, err
	}
	return token, payload, nil
}

func (m *JWTMaker) VertifyToken(tokenStr string) (*Payload, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return &Payload{
		ID:        id,
		UserID:    claims.UserID,
		UPN:       claims.Username,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiredAt: claims.ExpiresAt.Time,
	}, nil
}
