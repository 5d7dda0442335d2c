package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

// Guards are the access-control middleware the route table applies.
// A nil LoginLimit leaves login unthrottled. Idempotent, when set, guards
// the slide writes that create rows.
type Guards struct {
	Admin      gin.HandlerFunc
	LoginLimit gin.HandlerFunc
	Idempotent gin.HandlerFunc
}

// SlideRoutes is the carousel slide table. Reads are public, writes are admin only.
func SlideRoutes(h *handler.SlideHandler, g Guards) *DomainGroup {
	return NewDomainGroup("slides", "/slides").
		GET("", h.List).
		GET("/:id", h.Get).
		POST("", g.Admin, g.Idempotent, h.Create).
		PUT("", g.Admin, g.Idempotent, h.BatchUpdate).
		PUT("/:id", g.Admin, h.Update).
		DELETE("/:id", g.Admin, h.Delete)
}

// SlideBatchRoute names the batch save route the way BodyLimitConfig keys it.
// Its body carries images inline, so it gets a larger limit than the rest.
func SlideBatchRoute(basePath string) string {
	return http.MethodPut + " " + basePath + "/slides"
}

// PromoRoutes exposes the active banners publicly and everything else to admins
func PromoRoutes(h *handler.PromoHandler, g Guards) *DomainGroup {
	return NewDomainGroup("promos", "/promos").
		GET("/active", h.ListActive).
		GET("", g.Admin, h.ListAll).
		GET("/:id", g.Admin, h.Get).
		POST("", g.Admin, h.Create).
		PUT("/:id", g.Admin, h.Update).
		DELETE("/:id", g.Admin, h.Delete).
		PATCH("/:id/toggle", g.Admin, h.Toggle)
}

// AuthRoutes mounts login and the token-bound session endpoints
func AuthRoutes(h *handler.AuthHandler, g Guards) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		POST("/login", g.LoginLimit, h.Login).
		POST("/logout", g.Admin, h.Logout).
		GET("/me", g.Admin, h.Me)
}

// SystemRoutes mounts the informational endpoints under the API prefix
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/info", h.GetSystemInfo)
}
