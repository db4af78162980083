package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// CasbinMW wraps the casbin enforcer for role authorization
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the role authorization middleware. The subject is the
// role claim set by the JWT middleware; the object/action are the request
// path and method. Roles outside the closed enumeration are rejected
// before the enforcer is consulted.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found in token"})
			c.Abort()
			return
		}

		role := domain.Role(roleVal.(string))
		if !role.Valid() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unknown role"})
			c.Abort()
			return
		}

		allowed, err := mw.enforcer.Enforce("role_"+role.String(), c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	})
}
