package apperr

import "github.com/tuanvumaihuynh/inventory-service/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr          = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	InvalidPaginationErr   = zerror.NewBadRequest("INVALID_PAGINATION", "page and limit must be positive integers")
	SearchQueryRequiredErr = zerror.NewBadRequest("SEARCH_QUERY_REQUIRED", "search query is required")
	DatabaseUnavailableErr = zerror.NewServiceUnavailable("DATABASE_UNAVAILABLE", "database is unavailable")
)

// Auth
var (
	InvalidCredentialsErr = zerror.NewBadRequest("INVALID_CREDENTIALS", "invalid credentials")
	UnauthorizedErr       = zerror.NewUnauthorized("UNAUTHORIZED", "authentication required")
	UserAlreadyExistsErr  = zerror.NewBadRequest("USER_ALREADY_EXISTS", "user already exists with this email account")
	UserNotFoundErr       = zerror.NewNotFound("USER_NOT_FOUND", "user not found")
	PasswordTooLongErr    = zerror.NewBadRequest("PASSWORD_TOO_LONG", "password must be at most 72 bytes")
)

// Inventory. Duplicates are reported as 400, the contract the API has always had.
var (
	ProductAlreadyExistsErr  = zerror.NewBadRequest("PRODUCT_ALREADY_EXISTS", "product already exists in the database")
	ProductNotFoundErr       = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	SupplierAlreadyExistsErr = zerror.NewBadRequest("SUPPLIER_ALREADY_EXISTS", "supplier already exists in the database")
	SupplierNotFoundErr      = zerror.NewNotFound("SUPPLIER_NOT_FOUND", "supplier not found")
)

// Uploads
var (
	UnsupportedMediaTypeErr = zerror.NewUnsupportedMediaType("UNSUPPORTED_MEDIA_TYPE", "only .jpeg, .jpg, and .png formats are allowed")
	PayloadTooLargeErr      = zerror.NewPayloadTooLarge("PAYLOAD_TOO_LARGE", "file too large")
	TooManyFilesErr         = zerror.NewPayloadTooLarge("TOO_MANY_FILES", "too many files")
)
