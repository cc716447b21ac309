package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Middleware struct {
	Auth          echo.MiddlewareFunc
	XRay          echo.MiddlewareFunc
	RequestLogger echo.MiddlewareFunc
}

func NewRouter(roles *RolesHandler, resources *ResourcesHandler, nav *NavigationHandler, verification *VerificationHandler, m Middleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if m.XRay != nil {
		e.Use(m.XRay)
	}
	if m.RequestLogger != nil {
		e.Use(m.RequestLogger)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(stdhttp.StatusOK, map[string]string{"status": "ok"})
	})

	// Verification stays outside auth: it is how a session token is
	// obtained in the first place.
	e.POST("/verification/request", verification.RequestCode)
	e.POST("/verification/verify", verification.VerifyCode)

	api := e.Group("")
	if m.Auth != nil {
		api.Use(m.Auth)
	}

	api.GET("/navigation", nav.Get)

	api.GET("/roles", roles.Get)
	api.POST("/roles", roles.Create)
	api.PUT("/roles", roles.Update)
	api.DELETE("/roles", roles.Delete)
	api.POST("/roles/:id/full-access", roles.GrantFullAccess)
	api.POST("/roles/:id/transfer", roles.TransferOwnership)
	api.POST("/roles/:id/access", roles.AssignAccess)
	api.DELETE("/roles/:id/access", roles.RevokeAccess)
	api.PUT("/roles/:id/access", roles.SetAccessPermission)

	api.GET("/resources/:resource", resources.Get)
	api.POST("/resources/:resource", resources.Create)
	api.PUT("/resources/:resource", resources.Update)
	api.DELETE("/resources/:resource", resources.Delete)
	api.POST("/resources/:resource/set-field", resources.SetField)

	return e
}
