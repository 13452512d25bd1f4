package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	// Client Error Codes (4xx)
	StatusBadRequest         = 400
	StatusUnauthorized       = 401
	StatusForbidden          = 403
	StatusNotFound           = 404
	StatusMethodNotAllowed   = 405
	StatusConflict           = 409
	StatusGone               = 410
	StatusPreconditionFailed = 412
	StatusTooManyRequests    = 429

	// Server Error Codes (5xx)
	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

// Response Messages
const (
	// Success Messages
	MsgSuccess = "Operation successful"
	MsgCreated = "Created successfully"

	// Error Messages
	MsgBadRequest      = "Invalid request"
	MsgUnauthorized    = "Please sign in"
	MsgForbidden       = "Access denied"
	MsgNotFound        = "Resource not found"
	MsgConflict        = "Data conflict"
	MsgTooManyRequests = "Too many requests"
	MsgInternalError   = "Internal system error"

	// Token Messages
	MsgTokenMissing = "Authentication token is missing"
	MsgTokenInvalid = "Authentication token is invalid"
	MsgTokenExpired = "Authentication token has expired"

	// Validation Messages
	MsgValidationError = "Invalid data"
	MsgDatabaseError   = "Database interaction failed"
	MsgInvalidFormat   = "Invalid data format"
)

// ErrorCode identifies one failure category in the error taxonomy.
type ErrorCode struct {
	Code        string // Stable code (e.g. AUTH_001)
	Category    string // Top-level category (e.g. Authentication)
	SubCategory string // Sub category (e.g. Token)
	Description string // Human description
}

// Error codes, grouped by family. Callers branch on Code, never on
// message text.
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Internal system failure",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuth = ErrorCode{
		Code:        "AUTH",
		Category:    "Authentication",
		SubCategory: "General",
		Description: "General authentication failure",
	}

	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Missing or invalid credential",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Login credentials rejected",
	}

	ErrCodeAuthRole = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authentication",
		SubCategory: "Role",
		Description: "Insufficient role for the operation",
	}

	ErrCodeAuthTokenExpired = ErrorCode{
		Code:        "AUTH_004",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Credential expiry has passed",
	}

	ErrCodeAuthSubject = ErrorCode{
		Code:        "AUTH_005",
		Category:    "Authentication",
		SubCategory: "Subject",
		Description: "Credential decodes but no matching user exists",
	}

	// Tenant Lifecycle Errors (TEN_xxx) - evaluated per request for
	// enterprise users, never for platform admins
	ErrCodeTenant = ErrorCode{
		Code:        "TEN",
		Category:    "Tenant",
		SubCategory: "General",
		Description: "General tenant resolution failure",
	}

	ErrCodeTenantNotFound = ErrorCode{
		Code:        "TEN_001",
		Category:    "Tenant",
		SubCategory: "Directory",
		Description: "No enterprise matches the user's enterprise reference",
	}

	ErrCodeTenantDisabled = ErrorCode{
		Code:        "TEN_002",
		Category:    "Tenant",
		SubCategory: "Lifecycle",
		Description: "Enterprise status is DISABLE",
	}

	ErrCodeTenantDeleted = ErrorCode{
		Code:        "TEN_003",
		Category:    "Tenant",
		SubCategory: "Lifecycle",
		Description: "Enterprise has been deleted",
	}

	ErrCodeTenantAuthorizationExpired = ErrorCode{
		Code:        "TEN_004",
		Category:    "Tenant",
		SubCategory: "Lifecycle",
		Description: "Today falls outside the enterprise authorization window",
	}

	// Schema Errors (SCH_xxx)
	ErrCodeSchema = ErrorCode{
		Code:        "SCH",
		Category:    "Schema",
		SubCategory: "General",
		Description: "General schema failure",
	}

	ErrCodeSchemaDuplicateColumn = ErrorCode{
		Code:        "SCH_001",
		Category:    "Schema",
		SubCategory: "Declaration",
		Description: "Column configuration repeats a display name",
	}

	ErrCodeSchemaMismatch = ErrorCode{
		Code:        "SCH_002",
		Category:    "Schema",
		SubCategory: "Validation",
		Description: "Record columns do not match the declared configuration",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "General data validation failure",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Invalid input data",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Invalid data format",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "General database failure",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Database connection failure",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Database query failure",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusiness = ErrorCode{
		Code:        "BIZ",
		Category:    "Business",
		SubCategory: "General",
		Description: "General business rule failure",
	}

	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Operation not allowed in the current state",
	}

	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Invalid business operation",
	}
)

// Error is the typed error carried across all service boundaries.
type Error struct {
	Code       ErrorCode // Taxonomy code
	Message    string    // Human message
	StatusCode int       // HTTP status code
	Details    any       // Extra structured detail (e.g. missing/extra column names)
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// Is supports errors.Is against sentinel *Error values. Two errors
// match when their taxonomy codes and messages match.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}

	return false
}

// NewError builds a fully-populated *Error.
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Sentinel errors for errors.Is matching.
var (
	// Authentication Errors
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Incorrect login credentials", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthTokenExpired, MsgTokenExpired, StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrSubjectNotFound    = NewError(ErrCodeAuthSubject, "No user matches this credential", StatusUnauthorized, nil)

	// Tenant Lifecycle Errors
	ErrTenantNotFound             = NewError(ErrCodeTenantNotFound, "Enterprise not found", StatusUnauthorized, nil)
	ErrTenantDisabled             = NewError(ErrCodeTenantDisabled, "Enterprise is disabled", StatusForbidden, nil)
	ErrTenantDeleted              = NewError(ErrCodeTenantDeleted, "Enterprise has been deleted", StatusForbidden, nil)
	ErrTenantAuthorizationExpired = NewError(ErrCodeTenantAuthorizationExpired, "Enterprise authorization has expired", StatusForbidden, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Invalid input data", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Required field is missing", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Data not found", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "Data already exists", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Database connection failure", StatusServiceUnavailable, nil)

	// Business Logic Errors
	ErrInvalidState     = NewError(ErrCodeBusinessState, "Invalid state", StatusBadRequest, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, "Invalid operation", StatusBadRequest, nil)
)

// NewSchemaMismatchError reports the symmetric difference between a
// record's columns and its document's declared configuration. Both
// directions are always named so the caller can correct its input in
// one round trip.
func NewSchemaMismatchError(extra, missing []string) error {
	return NewError(ErrCodeSchemaMismatch, "Record columns do not match the document configuration", StatusBadRequest, map[string]any{
		"extraColumns":   extra,
		"missingColumns": missing,
	})
}

// NewDuplicateColumnError rejects a column configuration that repeats
// display names. The prior configuration stays untouched.
func NewDuplicateColumnError(names []string) error {
	return NewError(ErrCodeSchemaDuplicateColumn, "Column configuration contains duplicate display names", StatusBadRequest, map[string]any{
		"duplicateColumns": names,
	})
}

// MongoDB Error Messages
const (
	MsgMongoConnection = "MongoDB connection failure"
	MsgMongoNetwork    = "MongoDB network failure"
	MsgMongoTimeout    = "MongoDB connection timed out"
	MsgMongoAuth       = "MongoDB authentication failure"
	MsgMongoQuery      = "MongoDB query failure"
	MsgMongoWrite      = "MongoDB write failure"
	MsgMongoDuplicate  = "Duplicate data in MongoDB"
	MsgMongoSystem     = "MongoDB system failure"
)

// MongoDB Specific Errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, MsgMongoConnection, StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, MsgMongoNetwork, StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, MsgMongoTimeout, StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeAuth, MsgMongoAuth, StatusUnauthorized, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, MsgMongoQuery, StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, MsgMongoWrite, StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, MsgMongoDuplicate, StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, MsgMongoSystem, StatusInternalServerError, nil)
)

// ConvertMongoError funnels every driver error into the taxonomy.
// Typed *Error values pass through untouched.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Already typed (including ErrNotFound) - pass through
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return ErrMongoConnection
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return ErrMongoAuth
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return ErrMongoQuery
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return ErrMongoWrite
		case mongoErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
