package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// domainConflicts are domain failures caused by the current state of a
// resource rather than by the request itself.
var domainConflicts = map[domain.ErrorCode]struct{}{
	domain.CodeWorkLogLocked:                  {},
	domain.CodeWorkLogInvalidStatusTransition: {},
	domain.CodeInvoiceDraftDuplicateWorkLog:   {},
	domain.CodeInvoiceDraftMixedClients:       {},
	domain.CodeInvoiceDraftMixedPersons:       {},
	domain.CodeInvoiceDraftIneligibleStatus:   {},
	domain.CodeInvoiceInvalidStatusTransition: {},
}

// toAppError maps any error returned by a service onto its API representation.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if _, ok := domainConflicts[domainErr.Code]; ok {
			status = http.StatusConflict
		}
		return &apperrors.AppError{
			Code:       apperrors.Code(domainErr.Code),
			Message:    domainErr.Code.Message(),
			StatusCode: status,
			Details:    domainErr.Details,
			Err:        err,
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, err)
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrInUse):
		return apperrors.Wrap(apperrors.CodeConflict, err)
	case errors.Is(err, apperrors.ErrValidation):
		return apperrors.Wrap(apperrors.CodeValidation, err)
	}
	return apperrors.Wrap(apperrors.CodeInternal, err)
}

// respondError writes err in the standard error shape. Server side failures
// are logged; their cause never reaches the client.
func respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
	}
	middleware.AbortWithAppError(c, appErr)
}

// bindingError turns a gin binding failure into VALIDATION_ERROR with per-field details.
func bindingError(err error) *apperrors.AppError {
	details := map[string]any{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		details["fields"] = fields
	case errors.As(err, &typeErr):
		details["fields"] = map[string]string{typeErr.Field: "type:" + typeErr.Type.String()}
	case errors.As(err, &syntaxErr):
		details["reason"] = "malformed JSON"
	default:
		details["reason"] = err.Error()
	}
	return apperrors.Wrap(apperrors.CodeValidation, err).WithDetails(details)
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		middleware.AbortWithAppError(c, bindingError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		middleware.AbortWithAppError(c, bindingError(err))
		return false
	}
	return true
}

// requireUserID returns the authenticated caller, aborting with 401 when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.AbortWithAppError(c, apperrors.New(apperrors.CodeMissingAccessToken))
		return "", false
	}
	return userID, true
}
