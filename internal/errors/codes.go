package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. The frontend maps these
// codes to user-facing messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthPasswordTooShort   = "AUTH_PASSWORD_TOO_SHORT"
	AuthProviderFailed     = "AUTH_PROVIDER_FAILED"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartLineNotFound = "CART_LINE_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutNotStarted = "CHECKOUT_NOT_STARTED"
	CheckoutWrongStage = "CHECKOUT_WRONG_STAGE"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound = "ORDER_NOT_FOUND"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
