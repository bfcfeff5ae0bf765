package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	request "laboratorio_dental/internal/adapter/http/dto/request"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase"
	"laboratorio_dental/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errInternal       = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

func invalid(field, rule string) *pkg.AppError {
	return pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid "+field, http.StatusBadRequest).
		WithDetails(pkg.FieldError{Field: field, Rule: rule})
}

// bindJSON binds the body and answers 400 with field details on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		appErr := errInvalidPayload
		if details := request.FieldErrors(err); len(details) > 0 {
			appErr = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request fields", http.StatusBadRequest).WithDetails(details...)
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return false
	}
	return true
}

// writeError logs server-side failures with their cause; the body never carries it.
func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		attrs := []any{slog.String("code", appErr.Code)}
		if appErr.Err != nil {
			attrs = append(attrs, slog.String("error", appErr.Err.Error()))
		}
		logging.FromContext(c.Request.Context()).Error("request failed", attrs...)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError(errInternal.Code, errInternal.Message, err, errInternal.HTTPStatus)
}

// mapLedgerError covers orders, payments and notes, which share the order sentinels.
func mapLedgerError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return invalid("id", "required")
	case errors.Is(err, usecase.ErrInvalidDoctorID):
		return invalid("doctor_id", "required")
	case errors.Is(err, usecase.ErrUnknownDoctor):
		return invalid("doctor_id", "exists")
	case errors.Is(err, usecase.ErrInvalidPatientName):
		return invalid("patient_name", "required")
	case errors.Is(err, usecase.ErrInvalidJobItems):
		return invalid("job_items", "required")
	case errors.Is(err, usecase.ErrInvalidCost):
		return invalid("cost", "gt")
	case errors.Is(err, usecase.ErrInvalidPriority):
		return invalid("priority", "priority")
	case errors.Is(err, usecase.ErrInvalidStatus):
		return invalid("status", "order_status")
	case errors.Is(err, usecase.ErrInvalidCompletionDate):
		return invalid("completion_date", "status")
	case errors.Is(err, usecase.ErrInvalidPaymentID):
		return invalid("payment_id", "required")
	case errors.Is(err, usecase.ErrInvalidPaymentAmount):
		return invalid("amount", "gt")
	case errors.Is(err, usecase.ErrInvalidMPPayload):
		return invalid("mp_payload", "payment_method_id")
	case errors.Is(err, usecase.ErrInvalidNoteID):
		return invalid("note_id", "required")
	case errors.Is(err, usecase.ErrInvalidNoteText):
		return invalid("text", "required")
	case errors.Is(err, usecase.ErrInvalidNoteAuthor):
		return invalid("author", "required")
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoteNotFound):
		return pkg.NewDomainErrorSimple("NOTE_NOT_FOUND", "Note not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNumberConflict):
		return pkg.NewDomainErrorSimple("ORDER_NUMBER_CONFLICT", "Order number already in use, please retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Order was modified by another request, reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrOverpayment):
		return pkg.NewDomainErrorSimple("OVERPAYMENT", "Payment exceeds the order balance", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "Card payments are not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest),
		errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers),
		errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound),
		errors.Is(err, usecase.ErrPaymentRejected):
		return pkg.NewDomainError("PAYMENT_REJECTED", "Payment provider rejected the charge", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainError("PAYMENT_GATEWAY_ERROR", "Payment provider rejected our credentials", err, http.StatusBadGateway)
	default:
		return internalError(err)
	}
}

func mapDoctorError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDoctorID):
		return invalid("id", "required")
	case errors.Is(err, usecase.ErrInvalidDoctorName):
		return invalid("name", "required")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		return pkg.NewDomainErrorSimple("DOCTOR_NOT_FOUND", "Doctor not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCascadeTooLarge):
		return pkg.NewDomainErrorSimple("CASCADE_TOO_LARGE", "Doctor has too many orders to delete in one operation", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrDoctorOrdersBusy):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Doctor orders changed during delete, retry", http.StatusConflict)
	default:
		return internalError(err)
	}
}

func mapNotificationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidNotificationID):
		return invalid("id", "required")
	case errors.Is(err, usecase.ErrNotificationNotFound):
		return pkg.NewDomainErrorSimple("NOTIFICATION_NOT_FOUND", "Notification not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid username or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrUsernameTaken):
		return pkg.NewDomainErrorSimple("USERNAME_TAKEN", "Username already taken", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidUsername):
		return invalid("username", "username")
	case errors.Is(err, usecase.ErrInvalidPassword):
		return invalid("password", "min")
	case errors.Is(err, usecase.ErrInvalidRole):
		return invalid("role", "oneof")
	default:
		return internalError(err)
	}
}
