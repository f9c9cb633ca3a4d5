package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nulllpunkt/Cinematch/internal/config"
)

// The session is a signed token carried in an HttpOnly cookie. Handlers read
// the authenticated user from the "user_id" context key.
const (
	SessionCookieName = "cinematch_session"
	sessionDuration   = 7 * 24 * time.Hour
)

// SetSessionCookie signs a session token for the user and attaches it to the
// response.
func SetSessionCookie(c *gin.Context, userID uint) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(sessionDuration).Unix(),
		"iat":     now.Unix(),
	})

	signed, err := token.SignedString([]byte(config.GlobalConfig.SecretKey))
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, signed, int(sessionDuration.Seconds()), "/", "",
		config.GlobalConfig.Env == "production", true)
	return nil
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "",
		config.GlobalConfig.Env == "production", true)
}

// SessionRequired rejects requests without a valid session cookie.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userIDFromCookie(c)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// SessionOptional sets user_id when a valid session cookie is present and
// stays silent otherwise. Used by endpoints that personalize for logged-in
// users but also serve anonymous ones.
func SessionOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := userIDFromCookie(c); err == nil {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func userIDFromCookie(c *gin.Context) (uint, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		return 0, errors.New("no session cookie")
	}

	token, err := jwt.Parse(cookie, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(config.GlobalConfig.SecretKey), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid session claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("session missing user_id")
	}

	return uint(userID), nil
}
