package failure

import (
	"errors"
	"net/http"
)

// Reason classifies a Failure beyond its HTTP code so callers can branch on it.
type Reason string

const (
	ReasonInvalidState        Reason = "INVALID_STATE"
	ReasonAlreadySettled      Reason = "ALREADY_SETTLED"
	ReasonAccountNotReady     Reason = "ACCOUNT_NOT_READY"
	ReasonInsufficientBalance Reason = "INSUFFICIENT_BALANCE"
	ReasonInvalidAmount       Reason = "INVALID_AMOUNT"
	ReasonOpenDisputeBlock    Reason = "OPEN_DISPUTE_BLOCK"
	ReasonExternalProcessor   Reason = "EXTERNAL_PROCESSOR_ERROR"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`

	cause          error
	outcomeUnknown bool
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the processor error wrapped by ExternalProcessor.
func (e *Failure) Unwrap() error {
	return e.cause
}

// Is matches another Failure carrying the same non-empty Reason.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return e.Reason != "" && e.Reason == other.Reason
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// InvalidState reports an entity that is not in the status the operation expects.
func InvalidState(msg string) error {
	return &Failure{Code: http.StatusConflict, Reason: ReasonInvalidState, Message: msg}
}

// AlreadySettled reports a second settlement attempt for the same booking.
func AlreadySettled(msg string) error {
	return &Failure{Code: http.StatusConflict, Reason: ReasonAlreadySettled, Message: msg}
}

// AccountNotReady reports a connected account lacking a required capability.
func AccountNotReady(msg string) error {
	return &Failure{Code: http.StatusUnprocessableEntity, Reason: ReasonAccountNotReady, Message: msg}
}

func InsufficientBalance(msg string) error {
	return &Failure{Code: http.StatusUnprocessableEntity, Reason: ReasonInsufficientBalance, Message: msg}
}

func InvalidAmount(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Reason: ReasonInvalidAmount, Message: msg}
}

func OpenDisputeBlock(msg string) error {
	return &Failure{Code: http.StatusConflict, Reason: ReasonOpenDisputeBlock, Message: msg}
}

// ExternalProcessor wraps an error returned by the payment processor. When
// outcomeUnknown is set the processor may have accepted the request.
func ExternalProcessor(err error, outcomeUnknown bool) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:           http.StatusBadGateway,
		Reason:         ReasonExternalProcessor,
		Message:        "payment processor: " + err.Error(),
		cause:          err,
		outcomeUnknown: outcomeUnknown,
	}
}

// HasReason reports whether err is, or wraps, a Failure with the given reason.
func HasReason(err error, reason Reason) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason == reason
	}

	return false
}

// OutcomeUnknown reports whether err is a processor failure whose effect cannot be determined.
func OutcomeUnknown(err error) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.outcomeUnknown
	}

	return false
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
