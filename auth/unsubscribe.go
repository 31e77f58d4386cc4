package auth

import (
	"digest-lab/errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const unsubscribePurpose = "digest_unsubscribe"

// Unsubscribe links must outlive session tokens: a digest email may sit in an
// inbox for months before the recipient clicks the link.
const unsubscribeTokenDuration = 180 * 24 * time.Hour

// UnsubscribeClaims is a single-purpose token embedded in digest emails.
// A session token can never pass as one and vice versa.
type UnsubscribeClaims struct {
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateUnsubscribeToken creates the signed one-click unsubscribe token.
func GenerateUnsubscribeToken(userID string) (string, error) {
	claims := &UnsubscribeClaims{
		UserID:  userID,
		Purpose: unsubscribePurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(unsubscribeTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "digest-lab",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateUnsubscribeToken checks signature, expiry and purpose, and returns
// the user the link was issued for.
func ValidateUnsubscribeToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UnsubscribeClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*UnsubscribeClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrSignatureInvalid
	}
	if claims.Purpose != unsubscribePurpose {
		return "", errors.ErrWrongTokenPurpose
	}
	return claims.UserID, nil
}
