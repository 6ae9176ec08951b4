package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/exam-seating/internal/handler"    // import the handlers that implement the endpoints
	"github.com/iliyamo/exam-seating/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/exam-seating/internal/utils"      // import role names
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the group list.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
	e.GET("/v1/groups", handler.Groups)
}

// RegisterRecords registers the hall and candidate endpoints.  Reads are
// public; writes require a valid JWT with the ADMIN role.
func RegisterRecords(e *echo.Echo, h *handler.RecordHandler, jwtSecret string) {
	g := e.Group("/v1")
	admin := []echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret), middleware.RequireRole(utils.RoleAdmin)}

	// ---- Halls ----
	g.GET("/halls", h.ListHalls)
	g.GET("/halls/:id", h.GetHall)
	g.POST("/halls", h.CreateHall, admin...)
	g.PUT("/halls/:id", h.UpdateHall, admin...)
	g.DELETE("/halls/:id", h.DeleteHall, admin...)

	// ---- Candidates ----
	g.GET("/candidates", h.ListCandidates)
	g.GET("/candidates/:id", h.GetCandidate)
	g.POST("/candidates", h.CreateCandidate, admin...)
	g.DELETE("/candidates/:id", h.DeleteCandidate, admin...)
}

// RegisterSessions registers the seating session endpoints.  Every
// mutating route requires the ADMIN role; generation routes additionally
// pass through limiter, which may be nil.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/sessions")
	admin := []echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret), middleware.RequireRole(utils.RoleAdmin)}
	generate := admin
	if limiter != nil {
		// Limit after auth so the bucket is keyed by subject.
		generate = append(append([]echo.MiddlewareFunc{}, admin...), limiter)
	}

	g.GET("/:id", h.Get)
	g.GET("/:id/conflicts", h.Conflicts)

	g.POST("", h.Generate, generate...)
	g.POST("/:id/regenerate", h.Regenerate, generate...)
	g.POST("/:id/move", h.Move, admin...)
	g.POST("/:id/unassign", h.Unassign, admin...)
	g.POST("/:id/publish", h.Publish, admin...)
}
