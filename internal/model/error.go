package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeMissingField   = "MISSING_FIELD"
	ErrCodeCartEmpty      = "CART_EMPTY"
	ErrCodeLineNotFound   = "LINE_NOT_FOUND"
	ErrCodeNotPurchasable = "NOT_PURCHASABLE"
	ErrCodeInvalidQty     = "INVALID_QUANTITY"
	ErrCodeLoginRequired  = "LOGIN_REQUIRED"
	ErrCodeCheckoutBusy   = "CHECKOUT_BUSY"
	ErrCodeOrderNotFound  = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised   = "UNAUTHORIZED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that maps to a 4xx response.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCartEmpty      = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrLineNotFound   = NewDomainError(ErrCodeLineNotFound, "Item is not in the cart")
	ErrNotPurchasable = NewDomainError(ErrCodeNotPurchasable, "Item is out of stock or not live")
	ErrInvalidQty     = NewDomainError(ErrCodeInvalidQty, "Quantity must be greater than zero")
	ErrLoginRequired  = NewDomainError(ErrCodeLoginRequired, "Please login to place order")
	ErrCheckoutBusy   = NewDomainError(ErrCodeCheckoutBusy, "A checkout attempt is already in progress")
	ErrOrderNotFound  = NewDomainError(ErrCodeOrderNotFound, "Order not found")
)
