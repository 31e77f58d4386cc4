package auth

import (
	"digest-lab/errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtKey is the secret used to sign tokens.
// In a production environment, this should be loaded from an environment variable or a secret manager.
var jwtKey = []byte("my_strong_and_long_secret_key_2026")

// CustomClaims defines the structure of the data stored inside the JWT.
// Purpose stays empty on session tokens; single-purpose tokens set it.
type CustomClaims struct {
	UserID  string   `json:"user_id"`
	Roles   []string `json:"roles"`
	Purpose string   `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session JWT for a specific user.
func GenerateToken(userID string, roles []string,
	authTokenDuration time.Duration) (string, error) {
	expirationTime := time.Now().Add(authTokenDuration)

	claims := &CustomClaims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "digest-lab",
		},
	}

	// Create the token using the HS256 algorithm (HMAC with SHA256).
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtKey)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	// Both token families share the signing key, so a purpose-bearing token
	// (e.g. an unsubscribe link) would otherwise pass as a session.
	if claims.Purpose != "" {
		return nil, errors.ErrWrongTokenPurpose
	}
	return claims, nil
}
