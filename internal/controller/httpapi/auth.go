package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	RoleAdmin = "ADMIN"

	ctxUserRole = "userRole"
	ctxUserID   = "userID"
)

// Claims are issued by the university login service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errMissingToken = errors.New("missing bearer token")

func parseToken(header string, secret []byte) (*Claims, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errMissingToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return nil, errMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// RequireRole lets the request through only for a valid token carrying one of roles.
// Everything else, including a missing token, is answered with 403.
func RequireRole(secret string, logger *zap.Logger, roles ...string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		claims, err := parseToken(c.GetHeader("Authorization"), key)
		if err != nil {
			logger.Debug("Rejected token", zap.Error(err))
			forbidden(c)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Set(ctxUserRole, claims.Role)
				c.Set(ctxUserID, claims.Subject)
				c.Next()
				return
			}
		}

		logger.Info("Role not allowed",
			zap.String("role", claims.Role),
			zap.String("subject", claims.Subject),
			zap.String("path", c.FullPath()))
		forbidden(c)
	}
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, errorBody(msgForbidden))
}
