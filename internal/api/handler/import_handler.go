package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadvault/crm-api/internal/api/metrics"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// ImportHandler serves the tenant's import records.
type ImportHandler struct {
	service ports.ImportService
}

func NewImportHandler(service ports.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// List handles GET /api/imports.
//
// @Summary      List imports
// @Tags         imports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   importResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/imports [get]
func (h *ImportHandler) List(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	imports, err := h.service.ListImports(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImportResponses(imports))
}

// Get handles GET /api/imports/:id.
//
// @Summary      Get an import with its row errors
// @Tags         imports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Import id"
// @Success      200  {object}  importResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/imports/{id} [get]
func (h *ImportHandler) Get(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	imp, err := h.service.GetImport(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImportResponse(imp))
}

// Create handles POST /api/imports.
//
// @Summary      Register an uploaded file
// @Tags         imports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createImportRequest  true  "File details"
// @Success      201   {object}  importResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/imports [post]
func (h *ImportHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createImportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	imp, err := h.service.CreateImport(c.Request().Context(), identity, ports.CreateImportInput{
		FileName: req.FileName,
		FilePath: req.FilePath,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("import").Inc()
	return c.JSON(http.StatusCreated, toImportResponse(imp))
}

// Update handles PUT /api/imports/:id.
//
// @Summary      Update an import
// @Tags         imports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Import id"
// @Param        body  body      updateImportRequest  true  "Fields to change"
// @Success      200   {object}  importResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/imports/{id} [put]
func (h *ImportHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateImportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	imp, err := h.service.UpdateImport(c.Request().Context(), identity, c.Param("id"), toUpdateImportInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImportResponse(imp))
}
