package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"schoolbook/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	adminService service.AdminService
	defaults     []service.SeedAccount
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(adminService service.AdminService, defaults []service.SeedAccount) *SeedHandler {
	return &SeedHandler{adminService: adminService, defaults: defaults}
}

// SeedAccountsResponse represents the seed response.
type SeedAccountsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SeedAccounts godoc
// @Summary Seed the default admin and demo accounts
// @Tags seed
// @Produce json
// @Success 200 {object} SeedAccountsResponse
// @Failure 500 {object} map[string]string
// @Router /seed/accounts [get]
func (h *SeedHandler) SeedAccounts(c echo.Context) error {
	count, err := h.adminService.Seed(c.Request().Context(), h.defaults)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, SeedAccountsResponse{
		Message: "accounts seeded successfully",
		Count:   count,
	})
}
