package notification

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/webadmin-api/pkg/pagination"
)

// Handler serves the notification feed from the local file store. It hangs
// off the same /:resource/:action surface as the proxied families so the
// console can treat it like any other resource.
type Handler struct {
	store  *Store
	logger zerolog.Logger
}

func NewHandler(store *Store, logger zerolog.Logger) *Handler {
	return &Handler{store: store, logger: logger.With().Str("resource", "notification").Logger()}
}

// RegisterRoutes mounts the notification actions on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.Any("/notification/:action", h.Handle)
}

func (h *Handler) Handle(c echo.Context) error {
	switch c.Param("action") {
	case "list":
		return h.list(c)
	case "create":
		return h.create(c)
	case "update":
		return h.update(c)
	case "delete":
		return h.delete(c)
	case "mark-all-read":
		return h.markAllRead(c)
	default:
		return fail(c, http.StatusBadRequest, "unknown notification action")
	}
}

func (h *Handler) list(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return fail(c, http.StatusBadRequest, "userId is required")
	}
	filter := ListFilter{
		UserID: userID,
		Type:   Type(c.QueryParam("type")),
	}
	switch c.QueryParam("read") {
	case "true":
		v := true
		filter.Read = &v
	case "false":
		v := false
		filter.Read = &v
	}
	res, err := h.store.List(filter, pagination.FromContext(c))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    res,
	})
}

func (h *Handler) create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := in.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	n, err := h.store.Create(in)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    n,
	})
}

func (h *Handler) update(c echo.Context) error {
	var in struct {
		ID   string `json:"id"`
		Read bool   `json:"read"`
	}
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if in.ID == "" {
		return fail(c, http.StatusBadRequest, "id is required")
	}
	n, err := h.store.Update(in.ID, in.Read)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, http.StatusBadRequest, ErrNotFound.Error())
		}
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    n,
	})
}

func (h *Handler) delete(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		var in struct {
			ID string `json:"id"`
		}
		if err := c.Bind(&in); err == nil {
			id = in.ID
		}
	}
	if id == "" {
		return fail(c, http.StatusBadRequest, "id is required")
	}
	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, http.StatusBadRequest, ErrNotFound.Error())
		}
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "notification deleted",
	})
}

func (h *Handler) markAllRead(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		var in struct {
			UserID string `json:"userId"`
		}
		if err := c.Bind(&in); err == nil {
			userID = in.UserID
		}
	}
	if userID == "" {
		return fail(c, http.StatusBadRequest, "userId is required")
	}
	changed, err := h.store.MarkAllRead(userID)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"updated": changed},
	})
}

func (h *Handler) storeError(c echo.Context, err error) error {
	h.logger.Error().Err(err).Str("action", c.Param("action")).Msg("notification store failure")
	return fail(c, http.StatusInternalServerError, "notification storage unavailable")
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}
