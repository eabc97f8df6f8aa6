package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

// ContextUserID is the Gin context key the auth middlewares store the
// authenticated userid under.
const ContextUserID = "userID"

// RequireAuth rejects requests without a valid bearer token. On success the
// token's userid is checked against the user store (a token for a deleted
// account is worthless) and stored in the context.
func RequireAuth(secret string, users stores.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, secret, users)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid token is present but lets
// anonymous requests through; the profile view shows different tiers for
// visitors and owners.
func OptionalAuth(secret string, users stores.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := authenticate(c, secret, users); err == nil {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// UserID returns the authenticated userid, empty for anonymous requests.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func authenticate(c *gin.Context, secret string, users stores.UserStore) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("No token provided")
	}

	// Both "Bearer <token>" and a bare token are accepted.
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenString == "" {
		return "", errors.New("No token provided")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("Failed to authenticate token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("Failed to authenticate token")
	}
	userID, _ := claims["userid"].(string)
	if userID == "" {
		return "", errors.New("Failed to authenticate token")
	}

	if _, err := users.FindByID(c.Request.Context(), userID); err != nil {
		return "", errors.New("Failed to authenticate token")
	}
	return userID, nil
}
