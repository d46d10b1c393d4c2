package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable, machine-readable identifier of a domain rule violation.
type ErrorCode string

// Work log codes.
const (
	CodeWorkLogInvalidID               ErrorCode = "WORK_LOG_INVALID_ID"
	CodeWorkLogInvalidPersonID         ErrorCode = "WORK_LOG_INVALID_PERSON_ID"
	CodeWorkLogInvalidClientID         ErrorCode = "WORK_LOG_INVALID_CLIENT_ID"
	CodeWorkLogInvalidDate             ErrorCode = "WORK_LOG_INVALID_DATE"
	CodeWorkLogInvalidNotes            ErrorCode = "WORK_LOG_INVALID_NOTES"
	CodeWorkLogInvalidStatus           ErrorCode = "WORK_LOG_INVALID_STATUS"
	CodeWorkLogItemAlreadyExists       ErrorCode = "WORK_LOG_ITEM_ALREADY_EXISTS"
	CodeWorkLogItemNotFound            ErrorCode = "WORK_LOG_ITEM_NOT_FOUND"
	CodeWorkLogItemDateMismatch        ErrorCode = "WORK_LOG_ITEM_DATE_MISMATCH"
	CodeWorkLogItemInvalidID           ErrorCode = "WORK_LOG_ITEM_INVALID_ID"
	CodeWorkLogItemInvalidLocation     ErrorCode = "WORK_LOG_ITEM_INVALID_LOCATION"
	CodeWorkLogItemInvalidNotes        ErrorCode = "WORK_LOG_ITEM_INVALID_NOTES"
	CodeWorkLogInvalidAdditionalAmount ErrorCode = "WORK_LOG_INVALID_ADDITIONAL_AMOUNT"
	CodeWorkLogInvalidStatusTransition ErrorCode = "WORK_LOG_INVALID_STATUS_TRANSITION"
	CodeWorkLogLocked                  ErrorCode = "WORK_LOG_LOCKED"
	CodeWorkLogEmpty                   ErrorCode = "WORK_LOG_EMPTY"
	CodeWorkLogInvalidDuration         ErrorCode = "WORK_LOG_INVALID_DURATION"
	CodeWorkLogInvalidBreakDuration    ErrorCode = "WORK_LOG_INVALID_BREAK_DURATION"
	CodeWorkLogInvalidHourlyRate       ErrorCode = "WORK_LOG_INVALID_HOURLY_RATE"
	CodeWorkLogInvalidPeriodTimezone   ErrorCode = "WORK_LOG_INVALID_PERIOD_TIMEZONE"
	CodeWorkLogInvalidPeriod           ErrorCode = "WORK_LOG_INVALID_PERIOD"
	CodeWorkLogInvalidPeriodPrecision  ErrorCode = "WORK_LOG_INVALID_PERIOD_PRECISION"
	CodeWorkLogDurationExceedsLimit    ErrorCode = "WORK_LOG_DURATION_EXCEEDS_LIMIT"
	CodeWorkLogInvalidDailyTotal       ErrorCode = "WORK_LOG_INVALID_DAILY_TOTAL"
)

// Invoice codes.
const (
	CodeInvoiceInvalidID                ErrorCode = "INVOICE_INVALID_ID"
	CodeInvoiceInvalidPersonID          ErrorCode = "INVOICE_INVALID_PERSON_ID"
	CodeInvoiceInvalidClientID          ErrorCode = "INVOICE_INVALID_CLIENT_ID"
	CodeInvoiceInvalidPreviousInvoiceID ErrorCode = "INVOICE_INVALID_PREVIOUS_INVOICE_ID"
	CodeInvoiceInvalidPeriodStart       ErrorCode = "INVOICE_INVALID_PERIOD_START"
	CodeInvoiceInvalidPeriodEnd         ErrorCode = "INVOICE_INVALID_PERIOD_END"
	CodeInvoiceInvalidPeriodRange       ErrorCode = "INVOICE_INVALID_PERIOD_RANGE"
	CodeInvoiceInvalidNumber            ErrorCode = "INVOICE_INVALID_NUMBER"
	CodeInvoiceInvalidVersion           ErrorCode = "INVOICE_INVALID_VERSION"
	CodeInvoiceInvalidStatus            ErrorCode = "INVOICE_INVALID_STATUS"
	CodeInvoiceInvalidSubtotal          ErrorCode = "INVOICE_INVALID_SUBTOTAL"
	CodeInvoiceInvalidGstTotal          ErrorCode = "INVOICE_INVALID_GST_TOTAL"
	CodeInvoiceInvalidGstPercentage     ErrorCode = "INVOICE_INVALID_GST_PERCENTAGE"
	CodeInvoiceInvalidTotal             ErrorCode = "INVOICE_INVALID_TOTAL"
	CodeInvoiceTotalMismatch            ErrorCode = "INVOICE_TOTAL_MISMATCH"
	CodeInvoiceEmptyItems               ErrorCode = "INVOICE_EMPTY_ITEMS"
	CodeInvoiceEmptyWorkLogs            ErrorCode = "INVOICE_EMPTY_WORK_LOGS"
	CodeInvoiceDuplicateWorkLogID       ErrorCode = "INVOICE_DUPLICATE_WORK_LOG_ID"
	CodeInvoiceInvalidItemID            ErrorCode = "INVOICE_INVALID_ITEM_ID"
	CodeInvoiceInvalidItemDescription   ErrorCode = "INVOICE_INVALID_ITEM_DESCRIPTION"
	CodeInvoiceInvalidItemAmount        ErrorCode = "INVOICE_INVALID_ITEM_AMOUNT"
	CodeInvoiceInvalidItemSortOrder     ErrorCode = "INVOICE_INVALID_ITEM_SORT_ORDER"
	CodeInvoiceInvalidStatusTransition  ErrorCode = "INVOICE_INVALID_STATUS_TRANSITION"
	CodeInvoiceDraftEmptySelection      ErrorCode = "INVOICE_DRAFT_EMPTY_SELECTION"
	CodeInvoiceDraftDuplicateWorkLog    ErrorCode = "INVOICE_DRAFT_DUPLICATE_WORK_LOG"
	CodeInvoiceDraftMixedClients        ErrorCode = "INVOICE_DRAFT_MIXED_CLIENTS"
	CodeInvoiceDraftMixedPersons        ErrorCode = "INVOICE_DRAFT_MIXED_PERSONS"
	CodeInvoiceDraftIneligibleStatus    ErrorCode = "INVOICE_DRAFT_INELIGIBLE_STATUS"
)

var errorMessages = map[ErrorCode]string{
	CodeWorkLogInvalidID:               "Work log id is required",
	CodeWorkLogInvalidPersonID:         "Person id is required",
	CodeWorkLogInvalidClientID:         "Client id is required",
	CodeWorkLogInvalidDate:             "Work date must be a valid YYYY-MM-DD calendar date",
	CodeWorkLogInvalidNotes:            "Work log notes cannot exceed 1000 characters",
	CodeWorkLogInvalidStatus:           "Work log status is invalid",
	CodeWorkLogItemAlreadyExists:       "Work log item already exists",
	CodeWorkLogItemNotFound:            "Work log item not found",
	CodeWorkLogItemDateMismatch:        "Work log item must start and end on the work date",
	CodeWorkLogItemInvalidID:           "Work log item id is required",
	CodeWorkLogItemInvalidLocation:     "Work log item location is required",
	CodeWorkLogItemInvalidNotes:        "Work log item notes cannot exceed 1000 characters",
	CodeWorkLogInvalidAdditionalAmount: "Additional amount must be an integer in cents",
	CodeWorkLogInvalidStatusTransition: "Invalid work log status transition",
	CodeWorkLogLocked:                  "Work log is invoiced and cannot be changed",
	CodeWorkLogEmpty:                   "Work log has no items",
	CodeWorkLogInvalidDuration:         "Duration must be a non-negative integer in minutes",
	CodeWorkLogInvalidBreakDuration:    "Break duration cannot exceed worked duration",
	CodeWorkLogInvalidHourlyRate:       "Hourly rate must be a positive integer in cents",
	CodeWorkLogInvalidPeriodTimezone:   "Datetime must include an explicit timezone",
	CodeWorkLogInvalidPeriod:           "Work period is invalid",
	CodeWorkLogInvalidPeriodPrecision:  "Work period must be minute-based",
	CodeWorkLogDurationExceedsLimit:    "Work period cannot exceed 24 hours",
	CodeWorkLogInvalidDailyTotal:       "Daily total cannot be negative",

	CodeInvoiceInvalidID:                "Invoice id must be a valid UUID",
	CodeInvoiceInvalidPersonID:          "Invoice personId must be a valid UUID",
	CodeInvoiceInvalidClientID:          "Invoice clientId must be a valid UUID",
	CodeInvoiceInvalidPreviousInvoiceID: "Invoice previousInvoiceId must be a valid UUID",
	CodeInvoiceInvalidPeriodStart:       "Invoice periodStart must follow YYYY-MM-DD format",
	CodeInvoiceInvalidPeriodEnd:         "Invoice periodEnd must follow YYYY-MM-DD format",
	CodeInvoiceInvalidPeriodRange:       "Invoice periodStart cannot be after periodEnd",
	CodeInvoiceInvalidNumber:            "Invoice number must be a positive integer",
	CodeInvoiceInvalidVersion:           "Invoice version must be a positive integer",
	CodeInvoiceInvalidStatus:            "Invoice status is invalid",
	CodeInvoiceInvalidSubtotal:          "Invoice subtotalCents must be a non-negative integer",
	CodeInvoiceInvalidGstTotal:          "Invoice gstTotalCents must be a non-negative integer",
	CodeInvoiceInvalidGstPercentage:     "GST percentage must be a non-negative integer",
	CodeInvoiceInvalidTotal:             "Invoice totalCents must be a non-negative integer",
	CodeInvoiceTotalMismatch:            "Invoice totalCents must match subtotalCents + gstTotalCents",
	CodeInvoiceEmptyItems:               "Invoice must have at least one item",
	CodeInvoiceEmptyWorkLogs:            "Invoice must reference at least one work log",
	CodeInvoiceDuplicateWorkLogID:       "Invoice cannot reference the same work log twice",
	CodeInvoiceInvalidItemID:            "Invoice item id must be a valid UUID",
	CodeInvoiceInvalidItemDescription:   "Invoice item description must contain at least 2 characters",
	CodeInvoiceInvalidItemAmount:        "Invoice item amountCents must be a non-negative integer",
	CodeInvoiceInvalidItemSortOrder:     "Invoice item sortOrder must be a non-negative integer",
	CodeInvoiceInvalidStatusTransition:  "Invalid invoice status transition",
	CodeInvoiceDraftEmptySelection:      "Invoice draft requires at least one work log",
	CodeInvoiceDraftDuplicateWorkLog:    "Invoice draft cannot contain duplicate work logs",
	CodeInvoiceDraftMixedClients:        "Invoice draft must contain work logs from a single client",
	CodeInvoiceDraftMixedPersons:        "Invoice draft must contain work logs from a single person",
	CodeInvoiceDraftIneligibleStatus:    "Invoice draft can only be created from draft work logs",
}

// Message returns the human-readable message for the code.
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return string(c)
}

// DomainError is the single error type raised by the work log and invoice model.
// Callers switch on Code; Details carries optional structured context.
type DomainError struct {
	Code    ErrorCode
	Details map[string]any
}

func newDomainError(code ErrorCode, details map[string]any) *DomainError {
	return &DomainError{Code: code, Details: details}
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Code.Message())
}

// Is reports whether target is a DomainError with the same code, so sentinel
// values below work with errors.Is regardless of details.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the domain error code from err, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidDuration         = &DomainError{Code: CodeWorkLogInvalidDuration}
	ErrInvalidBreakDuration    = &DomainError{Code: CodeWorkLogInvalidBreakDuration}
	ErrInvalidHourlyRate       = &DomainError{Code: CodeWorkLogInvalidHourlyRate}
	ErrInvalidPeriod           = &DomainError{Code: CodeWorkLogInvalidPeriod}
	ErrInvalidPeriodTimezone   = &DomainError{Code: CodeWorkLogInvalidPeriodTimezone}
	ErrInvalidPeriodPrecision  = &DomainError{Code: CodeWorkLogInvalidPeriodPrecision}
	ErrDurationExceedsLimit    = &DomainError{Code: CodeWorkLogDurationExceedsLimit}
	ErrInvalidAdditionalAmount = &DomainError{Code: CodeWorkLogInvalidAdditionalAmount}
	ErrInvalidDailyTotal       = &DomainError{Code: CodeWorkLogInvalidDailyTotal}
	ErrInvalidStatusTransition = &DomainError{Code: CodeWorkLogInvalidStatusTransition}
	ErrWorkLogLocked           = &DomainError{Code: CodeWorkLogLocked}
	ErrWorkLogEmpty            = &DomainError{Code: CodeWorkLogEmpty}
	ErrItemAlreadyExists       = &DomainError{Code: CodeWorkLogItemAlreadyExists}
	ErrItemNotFound            = &DomainError{Code: CodeWorkLogItemNotFound}
	ErrItemDateMismatch        = &DomainError{Code: CodeWorkLogItemDateMismatch}
	ErrInvalidDate             = &DomainError{Code: CodeWorkLogInvalidDate}

	ErrEmptySelection   = &DomainError{Code: CodeInvoiceDraftEmptySelection}
	ErrDuplicateWorkLog = &DomainError{Code: CodeInvoiceDraftDuplicateWorkLog}
	ErrMixedPersons     = &DomainError{Code: CodeInvoiceDraftMixedPersons}
	ErrMixedClients     = &DomainError{Code: CodeInvoiceDraftMixedClients}
	ErrIneligibleStatus = &DomainError{Code: CodeInvoiceDraftIneligibleStatus}
	ErrTotalMismatch    = &DomainError{Code: CodeInvoiceTotalMismatch}
	ErrEmptyItems       = &DomainError{Code: CodeInvoiceEmptyItems}
	ErrEmptyWorkLogs    = &DomainError{Code: CodeInvoiceEmptyWorkLogs}
)
