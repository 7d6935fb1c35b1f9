package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/camille-guillard/invoice-api/internal/client/domain"
	invoicedomain "github.com/camille-guillard/invoice-api/internal/invoice/domain"
)

// apiError carries an HTTP status alongside a machine-readable code.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e apiError) Error() string { return e.Code }

var ErrNotFound = apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}

func newValidationError(field, code, message string) apiError {
	return apiError{Status: http.StatusBadRequest, Code: code, Field: field, Message: message}
}

func invalidRequestError() apiError {
	return apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "malformed request body"}
}

// AbortWithError maps domain errors onto the transport: validation and
// business-rule violations are 400, missing entities 404, anything
// unclassified is a 500 collaborator failure.
func AbortWithError(c *gin.Context, err error) {
	var apiErr apiError
	if errors.As(err, &apiErr) {
		abort(c, apiErr)
		return
	}

	switch {
	case isNotFoundError(err):
		abort(c, apiError{Status: http.StatusNotFound, Code: err.Error(), Message: notFoundMessage(err)})
	case isValidationError(err):
		abort(c, apiError{Status: http.StatusBadRequest, Code: err.Error(), Message: validationMessage(err)})
	default:
		zap.L().Error("unexpected error", zap.Error(err))
		abort(c, apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"})
	}
}

func abort(c *gin.Context, err apiError) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(err.Status, gin.H{"error": err})
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, invoicedomain.ErrClientNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidInvoiceID),
		errors.Is(err, invoicedomain.ErrClientIDRequired),
		errors.Is(err, invoicedomain.ErrLinesRequired),
		errors.Is(err, invoicedomain.ErrInvalidDescription),
		errors.Is(err, invoicedomain.ErrInvalidQuantity),
		errors.Is(err, invoicedomain.ErrInvalidUnitPrice),
		errors.Is(err, invoicedomain.ErrInvalidVatRate),
		errors.Is(err, invoicedomain.ErrAlreadyPaid),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidDateRange),
		errors.Is(err, clientdomain.ErrInvalidID),
		errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, clientdomain.ErrInvalidEmail),
		errors.Is(err, clientdomain.ErrInvalidAddress),
		errors.Is(err, clientdomain.ErrHasInvoices):
		return true
	default:
		return false
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, invoicedomain.ErrInvoiceNotFound):
		return "invoice not found"
	case errors.Is(err, invoicedomain.ErrClientNotFound), errors.Is(err, clientdomain.ErrNotFound):
		return "client not found"
	default:
		return "resource not found"
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, invoicedomain.ErrClientIDRequired):
		return "client ID is required"
	case errors.Is(err, invoicedomain.ErrLinesRequired):
		return "invoice must have at least one line"
	case errors.Is(err, invoicedomain.ErrInvalidDescription):
		return "line description is required"
	case errors.Is(err, invoicedomain.ErrInvalidQuantity):
		return "quantity must be a positive number"
	case errors.Is(err, invoicedomain.ErrInvalidUnitPrice):
		return "unit price must be a positive number"
	case errors.Is(err, invoicedomain.ErrInvalidVatRate):
		return "VAT rate must be one of: 0, 5.5, 10, 20"
	case errors.Is(err, invoicedomain.ErrAlreadyPaid):
		return "invoice is already paid"
	case errors.Is(err, invoicedomain.ErrInvalidStatus):
		return "status must be DRAFT or PAID"
	case errors.Is(err, invoicedomain.ErrInvalidDateRange):
		return "start date and end date are required"
	case errors.Is(err, clientdomain.ErrHasInvoices):
		return "client still has invoices"
	default:
		return strings.ReplaceAll(err.Error(), "_", " ")
	}
}

// parseOptionalDate accepts a calendar date or an RFC 3339 timestamp.
func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, errors.New("invalid_date")
}
