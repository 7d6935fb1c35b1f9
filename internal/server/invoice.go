package server

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/camille-guillard/invoice-api/internal/invoice/domain"
	"github.com/camille-guillard/invoice-api/internal/invoice/render"
)

type createInvoiceLineRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	VatRate     float64 `json:"vat_rate"`
}

type createInvoiceRequest struct {
	ClientID string                     `json:"client_id"`
	Date     string                     `json:"date"`
	Lines    []createInvoiceLineRequest `json:"lines"`
	Metadata map[string]any             `json:"metadata"`
}

// @Summary      Create Invoice
// @Description  Create a new draft invoice for a client
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body createInvoiceRequest true "Create Invoice Request"
// @Success      201  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}

	lines := make([]invoicedomain.CreateInvoiceLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, invoicedomain.CreateInvoiceLineRequest{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			VatRate:     line.VatRate,
		})
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		ClientID: strings.TrimSpace(req.ClientID),
		Date:     date,
		Lines:    lines,
		Metadata: req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices, optionally filtered; all filters combine with AND
// @Tags         invoices
// @Produce      json
// @Param        status      query  string  false  "DRAFT or PAID"
// @Param        client_id   query  string  false  "Client ID"
// @Param        start_date  query  string  false  "Start date (YYYY-MM-DD, inclusive)"
// @Param        end_date    query  string  false  "End date (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  invoicedomain.ListInvoicesResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	startDate, err := parseOptionalDate(c.Query("start_date"))
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalDate(c.Query("end_date"))
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoicesRequest{
		Status:    strings.TrimSpace(c.Query("status")),
		ClientID:  strings.TrimSpace(c.Query("client_id")),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Render Invoice HTML
// @Description  Render a printable HTML document for an invoice
// @Tags         invoices
// @Produce      html
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {string}  string
// @Router       /invoices/{id}/html [get]
func (s *Server) GetInvoiceHTML(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	client, err := s.clientSvc.GetByID(c.Request.Context(), invoice.ClientID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	lines := make([]render.LineView, 0, len(invoice.Lines))
	for _, line := range invoice.Lines {
		lines = append(lines, render.LineView{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			VatRate:     line.VatRate,
			Total:       invoicedomain.LineTotal(line),
		})
	}

	html, err := s.renderer.RenderHTML(render.RenderInput{
		Invoice: render.InvoiceView{
			Number:            invoice.Number,
			Status:            string(invoice.Status),
			Date:              invoice.Date,
			TotalExcludingTax: invoice.TotalExcludingTax,
			TotalVat:          invoice.TotalVat,
			TotalIncludingTax: invoice.TotalIncludingTax,
		},
		Client: render.ClientView{
			Name:    client.Name,
			Email:   client.Email,
			Address: client.Address,
		},
		Lines: lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// @Summary      Pay Invoice
// @Description  Transition a draft invoice to PAID
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id}/pay [post]
func (s *Server) PayInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkAsPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Get Revenue
// @Description  Aggregate paid invoices over an inclusive date range
// @Tags         invoices
// @Produce      json
// @Param        start_date  query  string  true   "Start date (YYYY-MM-DD)"
// @Param        end_date    query  string  true   "End date (YYYY-MM-DD)"
// @Param        format      query  string  false  "csv for CSV export"
// @Success      200  {object}  invoicedomain.RevenueResponse
// @Router       /invoices/revenue [get]
func (s *Server) GetRevenue(c *gin.Context) {
	startDate, err := parseOptionalDate(c.Query("start_date"))
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}
	endDate, err := parseOptionalDate(c.Query("end_date"))
	if err != nil {
		AbortWithError(c, newValidationError("end_date", "invalid_end_date", "invalid end_date"))
		return
	}

	resp, err := s.invoiceSvc.Revenue(c.Request.Context(), invoicedomain.RevenueRequest{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		writeRevenueCSV(c, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func writeRevenueCSV(c *gin.Context, resp invoicedomain.RevenueResponse) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="revenue.csv"`)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"Metric", "Value"})
	_ = writer.Write([]string{"Start Date", resp.StartDate.Format(time.DateOnly)})
	_ = writer.Write([]string{"End Date", resp.EndDate.Format(time.DateOnly)})
	_ = writer.Write([]string{"Total Revenue", formatAmount(resp.TotalRevenue)})
	_ = writer.Write([]string{"Total Excluding Tax", formatAmount(resp.TotalExcludingTax)})
	_ = writer.Write([]string{"Total VAT", formatAmount(resp.TotalVat)})
	_ = writer.Write([]string{"Invoice Count", strconv.Itoa(resp.InvoiceCount)})
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
