package http

import (
	"errors"
	stdhttp "net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dashboard-rbac/internal/adapters/http/middleware"
	"dashboard-rbac/internal/application"
	"dashboard-rbac/internal/domain"
	"dashboard-rbac/internal/ports"
)

func handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMissingID),
		errors.Is(err, domain.ErrCodeMismatch):
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrPathNotAssigned):
		return c.JSON(stdhttp.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.JSON(stdhttp.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrCodeExpired):
		return c.JSON(stdhttp.StatusGone, map[string]string{"error": err.Error()})
	default:
		return c.JSON(stdhttp.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func listFilter(c echo.Context) domain.ListFilter {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return domain.ListFilter{Page: page, Limit: limit, Search: c.QueryParam("q")}
}

// actingEmail resolves the acting account's email: the authenticated
// session when present, otherwise whatever the client claims. With
// auth disabled there is no session to trust anyway.
func actingEmail(c echo.Context, fallback string) string {
	if email, ok := c.Get(middleware.EmailContextKey).(string); ok && email != "" {
		return email
	}
	return fallback
}

func isBulk(c echo.Context) bool {
	return c.QueryParam("bulk") == "true"
}

type RolesHandler struct {
	service *application.RoleService
}

func NewRolesHandler(service *application.RoleService) *RolesHandler {
	return &RolesHandler{service: service}
}

func (h *RolesHandler) Get(c echo.Context) error {
	if id := c.QueryParam("id"); id != "" {
		role, err := h.service.GetByID(c.Request().Context(), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(stdhttp.StatusOK, role)
	}
	roles, err := h.service.List(c.Request().Context(), listFilter(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, roles)
}

func (h *RolesHandler) Create(c echo.Context) error {
	var req struct {
		application.NewRole
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.Create(c.Request().Context(), req.NewRole, actingEmail(c, req.Email))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, role)
}

func (h *RolesHandler) Update(c echo.Context) error {
	if isBulk(c) {
		return h.bulkUpdate(c)
	}
	var req struct {
		ID string `json:"_id"`
		application.UpdateRole
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.Update(c.Request().Context(), req.ID, req.UpdateRole)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) bulkUpdate(c echo.Context) error {
	var docs []domain.Document
	if err := c.Bind(&docs); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := h.service.BulkUpdate(c.Request().Context(), docs); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusOK)
}

func (h *RolesHandler) Delete(c echo.Context) error {
	if isBulk(c) {
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := h.service.Delete(c.Request().Context(), req.IDs...); err != nil {
			return handleError(c, err)
		}
		return c.NoContent(stdhttp.StatusOK)
	}
	var req struct {
		ID string `json:"_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusOK)
}

func (h *RolesHandler) GrantFullAccess(c echo.Context) error {
	role, err := h.service.GrantFullAccess(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) TransferOwnership(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.TransferOwnership(c.Request().Context(), c.Param("id"), req.Email)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) AssignAccess(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
		Path string `json:"path"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.AssignAccessPath(c.Request().Context(), c.Param("id"), req.Name, req.Path)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) RevokeAccess(c echo.Context) error {
	var req struct {
		Path string `json:"path"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.RevokeAccessPath(c.Request().Context(), c.Param("id"), req.Path)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) SetAccessPermission(c echo.Context) error {
	var req struct {
		Path       string `json:"path"`
		Capability string `json:"capability"`
		Value      bool   `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.SetAccessPermission(c.Request().Context(), c.Param("id"), req.Path, req.Capability, req.Value)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

type ResourcesHandler struct {
	service *application.ResourceService
}

func NewResourcesHandler(service *application.ResourceService) *ResourcesHandler {
	return &ResourcesHandler{service: service}
}

func (h *ResourcesHandler) Get(c echo.Context) error {
	resource := c.Param("resource")
	if id := c.QueryParam("id"); id != "" {
		doc, err := h.service.GetByID(c.Request().Context(), resource, id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(stdhttp.StatusOK, doc)
	}
	docs, err := h.service.List(c.Request().Context(), resource, listFilter(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, docs)
}

func (h *ResourcesHandler) Create(c echo.Context) error {
	var doc domain.Document
	if err := c.Bind(&doc); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	created, err := h.service.Create(c.Request().Context(), c.Param("resource"), doc)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, created)
}

func (h *ResourcesHandler) Update(c echo.Context) error {
	resource := c.Param("resource")
	if isBulk(c) {
		var docs []domain.Document
		if err := c.Bind(&docs); err != nil {
			return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := h.service.BulkUpdate(c.Request().Context(), resource, docs); err != nil {
			return handleError(c, err)
		}
		return c.NoContent(stdhttp.StatusOK)
	}
	var doc domain.Document
	if err := c.Bind(&doc); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := h.service.Update(c.Request().Context(), resource, doc); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusOK)
}

func (h *ResourcesHandler) Delete(c echo.Context) error {
	resource := c.Param("resource")
	if isBulk(c) {
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := h.service.Delete(c.Request().Context(), resource, req.IDs...); err != nil {
			return handleError(c, err)
		}
		return c.NoContent(stdhttp.StatusOK)
	}
	var req struct {
		ID string `json:"_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := h.service.Delete(c.Request().Context(), resource, req.ID); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusOK)
}

func (h *ResourcesHandler) SetField(c echo.Context) error {
	var req struct {
		IDs   []string `json:"ids"`
		Field string   `json:"field"`
		Value any      `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	err := h.service.BulkSetField(c.Request().Context(), c.Param("resource"), req.IDs, req.Field, req.Value)
	if err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusOK)
}

type NavigationHandler struct {
	provider ports.NavSchemaProvider
}

func NewNavigationHandler(provider ports.NavSchemaProvider) *NavigationHandler {
	return &NavigationHandler{provider: provider}
}

func (h *NavigationHandler) Get(c echo.Context) error {
	tree, err := h.provider.Schema(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, tree)
}

type VerificationHandler struct {
	service *application.VerificationService
}

func NewVerificationHandler(service *application.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

func (h *VerificationHandler) RequestCode(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := h.service.RequestCode(c.Request().Context(), req.Email); err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusAccepted, map[string]string{"status": "code sent"})
}

func (h *VerificationHandler) VerifyCode(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	token, err := h.service.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, map[string]string{"token": token})
}
