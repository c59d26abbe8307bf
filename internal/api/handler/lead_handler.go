package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadvault/crm-api/internal/api/metrics"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// LeadHandler serves the tenant's leads.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// List handles GET /api/leads.
//
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        importId  query     string  false  "Only leads of this import"
// @Param        page      query     int     false  "Page number"  default(1)
// @Param        limit     query     int     false  "Page size"    default(20)
// @Success      200       {object}  listLeadsResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var q listLeadsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers").SetInternal(err)
	}

	result, err := h.service.ListLeads(c.Request().Context(), identity, ports.ListLeadsInput{
		ImportID: q.ImportID,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListLeadsResponse(result))
}

// Get handles GET /api/leads/:id.
//
// @Summary      Get a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  leadResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	lead, err := h.service.GetLead(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeadResponse(lead))
}

// Create handles POST /api/leads.
//
// @Summary      Create a lead under an import
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead fields"
// @Success      201   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createLeadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lead, err := h.service.CreateLead(c.Request().Context(), identity, toCreateLeadInput(req))
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("lead").Inc()
	return c.JSON(http.StatusCreated, toLeadResponse(lead))
}
