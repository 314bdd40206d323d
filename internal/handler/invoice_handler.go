package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nfscan/internal/export"
	"nfscan/internal/service"
)

// InvoiceHandler handles invoice extraction endpoints.
type InvoiceHandler struct {
	svc service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(svc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

type extractTextRequest struct {
	Nome  string `json:"nome"`
	Texto string `json:"texto" binding:"required"`
}

// Extract handles POST /api/v1/invoices/extract. It accepts either a
// multipart upload under "file" or a JSON body with the raw text.
func (h *InvoiceHandler) Extract(c *gin.Context) {
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not open uploaded file")
			return
		}
		defer func() { _ = src.Close() }()

		data, err := io.ReadAll(src)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
			return
		}

		rec, err := h.svc.ExtractFromFile(c.Request.Context(), file.Filename, data)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondCreated(c, rec)
		return
	}

	var req extractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "expected a multipart file or a JSON body with texto")
		return
	}
	if req.Nome == "" {
		req.Nome = "texto"
	}

	rec, err := h.svc.ExtractFromText(c.Request.Context(), req.Nome, req.Texto)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, rec)
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction id")
		return
	}

	rec, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	recs, total, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ExportXLSX handles GET /api/v1/invoices/export
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	recs, _, err := h.svc.List(c.Request.Context(), 100, 0)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := export.WriteXLSX(recs)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("notas_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
