package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/massagehub/booking-api/internal/config"
	"github.com/massagehub/booking-api/internal/models"
)

// CookieName is the http-only cookie carrying the session token.
const CookieName = "token"

type Claims struct {
	UserID  uint
	Role    string
	TokenID string
	Expires time.Time
}

type TokenIssuer struct {
	cfg *config.Config
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue signs a session token for the user. The expiry is denominated in
// days because the cookie lifetime is configured that way.
func (t *TokenIssuer) Issue(user *models.User) (string, Claims, error) {
	now := time.Now()
	exp := now.Add(time.Duration(t.cfg.CookieExpireDays) * 24 * time.Hour)

	claims := jwt.MapClaims{
		"sub":  float64(user.ID),
		"role": user.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.cfg.JWTSecret))
	if err != nil {
		return "", Claims{}, err
	}

	return signed, Claims{
		UserID:  user.ID,
		Role:    user.Role,
		TokenID: claims["jti"].(string),
		Expires: exp,
	}, nil
}

// Parse validates the signature and expiry and extracts the claims.
func (t *TokenIssuer) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(t.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}

	sub, ok := mc["sub"].(float64)
	if !ok {
		return Claims{}, errors.New("invalid token payload")
	}
	role, _ := mc["role"].(string)
	jti, _ := mc["jti"].(string)

	var exp time.Time
	if e, ok := mc["exp"].(float64); ok {
		exp = time.Unix(int64(e), 0)
	}

	return Claims{
		UserID:  uint(sub),
		Role:    role,
		TokenID: jti,
		Expires: exp,
	}, nil
}
