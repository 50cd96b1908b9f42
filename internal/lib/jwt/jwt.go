package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identify an authenticated customer.
type Claims struct {
	Customer  string `json:"customer"`
	AccountID int64  `json:"account_id"`
	jwt.RegisteredClaims
}

func NewToken(customer string, accountID int64, secret string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Customer:  customer,
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string, secret string) (*Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Customer == "" {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
