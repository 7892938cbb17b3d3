package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freightline/shipment-tracker/internal/core/ports"
)

// CompanyHandler handles company management.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Create handles POST /api/companies.
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCompanyRequest  true  "Company details"
// @Success      201   {object}  successResponse
// @Failure      409   {object}  map[string]any
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	company, err := h.service.Create(c.Request().Context(), req.Name, userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Company created successfully", company)
}

// Get handles GET /api/companies/:id.
//
// @Summary      Get a company by id
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Company id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	company, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Company fetched successfully", company)
}

// List handles GET /api/companies.
//
// @Summary      Get all companies with pagination
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Companies per page"
// @Success      200    {object}  successResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Companies fetched successfully", listCompaniesResponse{
		Companies: result.Items,
		Pagination: paginationMeta{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}
