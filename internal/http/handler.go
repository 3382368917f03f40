package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/albinolog/contracts/internal/format"
	"github.com/albinolog/contracts/internal/http/middleware"
	"github.com/albinolog/contracts/internal/markdown"
	"github.com/albinolog/contracts/internal/model"
	"github.com/albinolog/contracts/internal/pricing"
	"github.com/albinolog/contracts/internal/service"
)

type Handler struct {
	quotes    *service.QuoteService
	documents *service.DocumentService
	handoffs  *service.HandoffService
	inflight  *inflight
	log       zerolog.Logger
}

func NewHandler(
	quotes *service.QuoteService,
	documents *service.DocumentService,
	handoffs *service.HandoffService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		quotes:    quotes,
		documents: documents,
		handoffs:  handoffs,
		inflight:  newInflight(),
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, sessionMiddleware gin.HandlerFunc) {
	router.SetHTMLTemplate(loadPages())

	site := router.Group("/")
	site.Use(sessionMiddleware)
	site.GET("/", h.quotePage)
	site.GET("/contrato", h.contractPage)
	site.GET("/contrato/pdf", h.downloadPDF)
	site.GET("/contrato/imprimir", h.printView)
	site.GET("/contrato/planilha", h.downloadSpreadsheet)
	site.GET("/obrigado", h.thanksPage)

	api := site.Group("/api")
	api.POST("/quote/preview", h.previewQuote)
	api.POST("/contracts", h.submitQuote)
	api.GET("/contracts/current", h.currentContract)
	api.POST("/agendar", h.scheduleVisit)
	api.POST("/agendar/confirmar", h.confirmVisitOpened)
	api.POST("/equipe", h.joinTeam)
}

type quoteRequest struct {
	CompanyName     string         `json:"companyName"`
	CNPJ            string         `json:"cnpj"`
	ResponsibleName string         `json:"responsibleName"`
	CompanyLocation string         `json:"companyLocation"`
	StartDate       string         `json:"startDate"`
	EndDate         string         `json:"endDate"`
	Services        []string       `json:"services"`
	Quantities      map[string]int `json:"quantities"`
}

type lineItemResponse struct {
	Service     model.ServiceID `json:"service"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	UnitPrice   string          `json:"unitPrice"`
	Subtotal    string          `json:"subtotal"`
}

type previewResponse struct {
	LineItems    []lineItemResponse `json:"lineItems"`
	Total        string             `json:"total"`
	TotalCents   int64              `json:"totalCents"`
	HasCost      bool               `json:"hasCost"`
	BusinessDays int                `json:"businessDays"`
}

func (h *Handler) quotePage(c *gin.Context) {
	quantities := make([]int, service.MaxQuantity)
	for i := range quantities {
		quantities[i] = i + 1
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":      "Orçamento",
		"Notice":     noticeText(c.Query("aviso")),
		"Catalog":    pricing.Catalog(),
		"Quantities": quantities,
	})
}

func (h *Handler) previewQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	form, err := req.toForm()
	if err != nil {
		h.handleError(c, err)
		return
	}

	breakdown := h.quotes.Preview(form)
	resp := previewResponse{
		LineItems:    make([]lineItemResponse, 0, len(breakdown.LineItems)),
		Total:        format.Currency(breakdown.Total),
		TotalCents:   breakdown.Total,
		HasCost:      breakdown.HasCost(),
		BusinessDays: pricing.CountBusinessDays(form.Period.Start, form.Period.End),
	}
	for _, item := range breakdown.LineItems {
		resp.LineItems = append(resp.LineItems, lineItemResponse{
			Service:     item.Service,
			Label:       item.Label,
			Description: item.Measure.Description(),
			UnitPrice:   format.Currency(item.UnitPrice),
			Subtotal:    format.Currency(item.Subtotal()),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) submitQuote(c *gin.Context) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	form, err := req.toForm()
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !h.inflight.acquire(profileID) {
		h.handleError(c, service.ErrSubmissionInProgress)
		return
	}
	defer h.inflight.release(profileID)

	record, err := h.quotes.Submit(c.Request.Context(), profileID, form)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) currentContract(c *gin.Context) {
	record, ok := h.currentRecord(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) contractPage(c *gin.Context) {
	record, ok := h.recordOrRedirect(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "contract.html", gin.H{
		"Title":        "Contrato",
		"Notice":       noticeText(c.Query("aviso")),
		"Record":       record,
		"ContractHTML": template.HTML(markdown.ToHTML(record.ContractText)),
	})
}

func (h *Handler) thanksPage(c *gin.Context) {
	record, ok := h.recordOrRedirect(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "thanks.html", gin.H{
		"Title":  "Agendamento",
		"Notice": noticeText(c.Query("aviso")),
		"Record": record,
	})
}

func (h *Handler) downloadPDF(c *gin.Context) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	result, err := h.documents.ExportPDF(c.Request.Context(), profileID)
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) downloadSpreadsheet(c *gin.Context) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	result, err := h.documents.ExportSpreadsheet(c.Request.Context(), profileID)
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) printView(c *gin.Context) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	page, err := h.documents.PrintView(c.Request.Context(), profileID)
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (h *Handler) scheduleVisit(c *gin.Context) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	var addr model.VisitAddress
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.handoffs.ScheduleVisit(c.Request.Context(), profileID, addr)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// confirmVisitOpened is called by the page once the WhatsApp tab is open.
func (h *Handler) confirmVisitOpened(c *gin.Context) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	if err := h.handoffs.ConfirmOpened(c.Request.Context(), profileID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) joinTeam(c *gin.Context) {
	var app model.TeamApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.handoffs.JoinTeam(c.Request.Context(), app)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) currentRecord(c *gin.Context) (*model.ContractRecord, bool) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return nil, false
	}
	record, err := h.quotes.Current(c.Request.Context(), profileID)
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}
	return record, true
}

// recordOrRedirect sends the browser back to the quote form when there is
// nothing to show.
func (h *Handler) recordOrRedirect(c *gin.Context) (*model.ContractRecord, bool) {
	profileID, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return nil, false
	}
	record, err := h.quotes.Current(c.Request.Context(), profileID)
	if err != nil {
		h.handlePageError(c, err)
		return nil, false
	}
	return record, true
}

func writeAttachment(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Type", result.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) handlePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveQuote):
		c.Redirect(http.StatusFound, "/?aviso="+url.QueryEscape(noticeMissingContract))
	case errors.Is(err, service.ErrExport):
		h.log.Error().Err(err).Msg("export contract failed")
		c.Redirect(http.StatusFound, "/contrato?aviso=falha-exportacao")
	default:
		h.handleError(c, err)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoActiveQuote):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGeneration):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Não foi possível gerar o contrato. Tente novamente em instantes."})
	case errors.Is(err, service.ErrExport):
		h.log.Error().Err(err).Msg("export contract failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// toForm converts the checkbox-style payload. A chosen service without a
// quantity counts as one.
func (r quoteRequest) toForm() (model.QuoteForm, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return model.QuoteForm{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return model.QuoteForm{}, err
	}

	selections := make([]model.ServiceSelection, 0, len(r.Services))
	for _, raw := range r.Services {
		id, ok := model.ParseServiceID(raw)
		if !ok {
			return model.QuoteForm{}, fmt.Errorf("%w: unknown service %q", service.ErrInvalidInput, raw)
		}
		quantity, given := r.Quantities[string(id)]
		if !given {
			quantity = 1
		}
		selections = append(selections, model.ServiceSelection{Service: id, Quantity: quantity})
	}

	return model.QuoteForm{
		CompanyName:     r.CompanyName,
		TaxID:           r.CNPJ,
		ResponsibleName: r.ResponsibleName,
		CompanyLocation: r.CompanyLocation,
		Period:          model.DateRange{Start: start, End: end},
		Selections:      selections,
	}, nil
}

// parseDate accepts an empty value; the contract then shows the date as
// still to be defined.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		format.DateLayout,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", service.ErrInvalidInput, raw)
}
