package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeResourceExhausted = "RESOURCE_EXHAUSTED"
)

// Point-of-sale codes.
const (
	ErrCodeItemNotFound        = "ITEM_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidDiscount     = "INVALID_DISCOUNT"
	ErrCodePaymentRequired     = "PAYMENT_REQUIRED"
	ErrCodeInsufficientPayment = "INSUFFICIENT_PAYMENT"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeSessionInvalid      = "SESSION_INVALID"
	ErrCodeSubmissionTimeout   = "SUBMISSION_TIMEOUT"
	ErrCodeSubmissionRejected  = "SUBMISSION_REJECTED"
	ErrCodeCheckoutInProgress  = "CHECKOUT_IN_PROGRESS"
	ErrCodeReadOnlyField       = "READ_ONLY_FIELD"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ResourceExhaustedError(message string) *AppError {
	return NewAppError(ErrCodeResourceExhausted, message, http.StatusTooManyRequests)
}

func ItemNotFoundError(sku string) *AppError {
	return NewAppError(ErrCodeItemNotFound, fmt.Sprintf("Item '%s' not found", sku), http.StatusNotFound)
}

func InvalidQuantityError(message string) *AppError {
	return NewAppError(ErrCodeInvalidQuantity, message, http.StatusBadRequest)
}

func InvalidDiscountError(message string) *AppError {
	return NewAppError(ErrCodeInvalidDiscount, message, http.StatusBadRequest)
}

func PaymentRequiredError(message string) *AppError {
	return NewAppError(ErrCodePaymentRequired, message, http.StatusPaymentRequired)
}

func InsufficientPaymentError(message string) *AppError {
	return NewAppError(ErrCodeInsufficientPayment, message, http.StatusBadRequest)
}

func EmptyCartError(message string) *AppError {
	return NewAppError(ErrCodeEmptyCart, message, http.StatusBadRequest)
}

func SessionInvalidError(message string) *AppError {
	return NewAppError(ErrCodeSessionInvalid, message, http.StatusUnauthorized)
}

// SubmissionTimeoutError marks an ambiguous outcome: the sale may or may not have been recorded.
func SubmissionTimeoutError(message string) *AppError {
	return NewAppError(ErrCodeSubmissionTimeout, message, http.StatusGatewayTimeout)
}

func SubmissionRejectedError(message string) *AppError {
	return NewAppError(ErrCodeSubmissionRejected, message, http.StatusUnprocessableEntity)
}

func CheckoutInProgressError(message string) *AppError {
	return NewAppError(ErrCodeCheckoutInProgress, message, http.StatusConflict)
}

func ReadOnlyFieldError(field string) *AppError {
	return NewAppError(ErrCodeReadOnlyField, fmt.Sprintf("Field '%s' is read-only", field), http.StatusBadRequest)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == code
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
