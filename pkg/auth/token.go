package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/form3tech-oss/jwt-go"
)

var ErrBadToken = errors.New("invalid access token")

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = 72 * time.Hour

// Issue signs an HS256 access token carrying userId in the user_id claim.
func Issue(secret, userId string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userId
	claims["exp"] = time.Now().Add(TokenTTL).Unix()
	return token.SignedString([]byte(secret))
}

// Parse verifies an access token and returns its user id.
func Parse(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	return UserId(token)
}

// UserId reads the user_id claim of an already verified token.
func UserId(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrBadToken
	}
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: no user_id claim", ErrBadToken)
	}
	return id, nil
}
