package auth

import (
	"os"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hashtag-app/backend/internal/models"
)

// Identity is the caller identity decoded from a bearer token
type Identity struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
}

// UserClaims are the custom claims carried by an app token
type UserClaims struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "supersecretjwtkey" // Must match the secret used for signing
	}
	return []byte(secret)
}

// GenerateUserToken signs a token carrying the user's id and user name
func GenerateUserToken(user *models.User) (string, error) {
	claims := &UserClaims{
		ID:       user.ID,
		UserName: user.UserName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifyUserToken validates a bearer token and returns the caller identity,
// or nil when the token is absent, malformed or carries a bad signature.
// It never returns an error to the caller; an unverifiable token simply
// yields an anonymous identity.
func VerifyUserToken(tokenString string) *Identity {
	if tokenString == "" || tokenString == "null" {
		return nil
	}

	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	return &Identity{ID: claims.ID, UserName: claims.UserName}
}
