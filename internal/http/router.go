package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/LindembergOli/producao-imac-sub000/internal/http/handlers"
	"github.com/LindembergOli/producao-imac-sub000/internal/http/middleware"
)

// BuildRouter assembles the HTTP surface: public auth endpoints, the
// JWT-protected session endpoints, and the casbin-guarded admin group.
func BuildRouter(ah *handlers.AuthHandlers, ph *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/logout", ah.Logout)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)

	v := r.Group("/").Use(jwtmw.WithJWT())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout-all", ah.LogoutAll)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
