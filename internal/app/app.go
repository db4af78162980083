package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LindembergOli/producao-imac-sub000/domain"
	"github.com/LindembergOli/producao-imac-sub000/internal/config"
	httpx "github.com/LindembergOli/producao-imac-sub000/internal/http"
	"github.com/LindembergOli/producao-imac-sub000/internal/http/handlers"
	"github.com/LindembergOli/producao-imac-sub000/internal/http/middleware"
	"github.com/LindembergOli/producao-imac-sub000/internal/infrastructure/auth"
	"github.com/LindembergOli/producao-imac-sub000/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(c.AuthSvc)
	polH := handlers.NewPolicyHandlers(services.NewPolicyService(cas.E))
	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, polH, jwtMW, casbinMW)

	seedPolicies(cas)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default grants for the four roles on first
// start, when the policy table is empty.
func seedPolicies(cas *auth.CasbinService) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	cas.E.AddPolicy("role_"+domain.RoleAdmin.String(), "/admin/*", "(GET|POST|PUT|DELETE)")
	cas.E.AddPolicy("role_"+domain.RoleAdmin.String(), "/production/*", "(GET|POST|PUT|DELETE)")
	cas.E.AddPolicy("role_"+domain.RoleSupervisor.String(), "/production/*", "(GET|POST|PUT)")
	cas.E.AddPolicy("role_"+domain.RoleProductionLead.String(), "/production/*", "(GET|POST)")
	cas.E.AddPolicy("role_"+domain.RoleViewer.String(), "/production/*", "GET")
	_ = cas.E.SavePolicy()
	log.Println("casbin: seeded default policies")
}
