package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/dto"
	"github.com/iliyamo/venue-booking/internal/service"
)

// FoodHandler serves the food catalog.
type FoodHandler struct {
	svc *service.FoodService
}

func NewFoodHandler(svc *service.FoodService) *FoodHandler {
	if svc == nil {
		panic("nil service passed to NewFoodHandler")
	}
	return &FoodHandler{svc: svc}
}

func (h *FoodHandler) list(c echo.Context, all bool) error {
	var q dto.FoodListQuery
	if bound, err := bind(c, &q); !bound {
		return err
	}
	list := h.svc.ListAvailable
	if all {
		list = h.svc.ListAll
	}
	items, err := list(c.Request().Context(), q)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, items)
}

// ListAvailable handles GET /v1/foods?category=.
func (h *FoodHandler) ListAvailable(c echo.Context) error { return h.list(c, false) }

// ListAll handles GET /v1/admin/foods?category=.
func (h *FoodHandler) ListAll(c echo.Context) error { return h.list(c, true) }

func (h *FoodHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, item)
}

func (h *FoodHandler) Create(c echo.Context) error {
	var req dto.CreateFoodItemRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	item, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusCreated, item)
}

func (h *FoodHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	var req dto.UpdateFoodItemRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	item, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, item)
}

func (h *FoodHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	msg, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return done(c, msg)
}

func (h *FoodHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	item, err := h.svc.ToggleAvailability(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, item)
}

// ThemeHandler serves the theme catalog.
type ThemeHandler struct {
	svc *service.ThemeService
}

func NewThemeHandler(svc *service.ThemeService) *ThemeHandler {
	if svc == nil {
		panic("nil service passed to NewThemeHandler")
	}
	return &ThemeHandler{svc: svc}
}

// ListAvailable handles GET /v1/themes.
func (h *ThemeHandler) ListAvailable(c echo.Context) error {
	themes, err := h.svc.ListAvailable(c.Request().Context())
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, themes)
}

// ListAll handles GET /v1/admin/themes.
func (h *ThemeHandler) ListAll(c echo.Context) error {
	themes, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, themes)
}

func (h *ThemeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	theme, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, theme)
}

func (h *ThemeHandler) Create(c echo.Context) error {
	var req dto.CreateThemeRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	theme, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusCreated, theme)
}

func (h *ThemeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	var req dto.UpdateThemeRequest
	if bound, err := bind(c, &req); !bound {
		return err
	}
	theme, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, theme)
}

func (h *ThemeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	msg, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return done(c, msg)
}

func (h *ThemeHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return invalidID(c)
	}
	theme, err := h.svc.ToggleAvailability(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err)
	}
	return ok(c, http.StatusOK, theme)
}
