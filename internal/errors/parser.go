package errors

import (
	stderrors "errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a displayable message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies a database or service error into a code and a
// user-facing message. Raw driver details never leak to the client.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL constraint errors

	// 2-1. Unique constraint violation (23505)
	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr)
	}

	// 3. Network / connectivity errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Failed to reach an external service. Please try again later",
		}
	}

	// 4. Default internal error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Covers both the postgres (23505) and sqlite message formats.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint")
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	if strings.Contains(errLower, "label") || strings.Contains(errLower, "idx_tags_label") {
		return ErrorInfo{
			Code:    TagAlreadyExists,
			Message: "A tag with this label already exists",
		}
	}

	if strings.Contains(errLower, "idx_cart_product") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This product is already in the cart",
		}
	}

	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "idx_customers_user_id") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A customer profile already exists for this account",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This record already exists. Please try again",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Delete blocked by referencing rows
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "collection") {
			return ErrorInfo{
				Code:    CollectionHasProducts,
				Message: "Collection cannot be deleted because it includes one or more products",
			}
		}
		if strings.Contains(context, "product") {
			return ErrorInfo{
				Code:    ProductReferenced,
				Message: "Product cannot be deleted because it is associated with an order item",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record cannot be deleted because other records reference it",
		}
	}

	// Insert/update pointing at a missing row
	if strings.Contains(errLower, "collection_id") || strings.Contains(errLower, "fk_collections") {
		return ErrorInfo{
			Code:    CollectionNotFound,
			Message: "The referenced collection does not exist",
		}
	}
	if strings.Contains(errLower, "product_id") || strings.Contains(errLower, "fk_products") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "The referenced product does not exist",
		}
	}
	if strings.Contains(errLower, "cart_id") || strings.Contains(errLower, "fk_carts") {
		return ErrorInfo{
			Code:    CartNotFound,
			Message: "The referenced cart does not exist",
		}
	}
	if strings.Contains(errLower, "customer_id") || strings.Contains(errLower, "fk_customers") {
		return ErrorInfo{
			Code:    CustomerNotFound,
			Message: "The referenced customer does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "The referenced record could not be found",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "Email is required"}
	}
	if strings.Contains(errLower, "title") {
		return ErrorInfo{Code: ValidationRequired, Message: "Title is required"}
	}
	if strings.Contains(errLower, "unit_price") {
		return ErrorInfo{Code: ValidationRequired, Message: "Unit price is required"}
	}
	if strings.Contains(errLower, "label") {
		return ErrorInfo{Code: ValidationRequired, Message: "Label is required"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

func parseCheckConstraintError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "rating") {
		return ErrorInfo{
			Code:    ReviewInvalidRating,
			Message: "Rating must be between 1 and 5",
		}
	}
	if strings.Contains(errLower, "quantity") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "Quantity is out of range",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "Invalid input",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "collection") {
		return "Collection not found"
	}
	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "review") {
		return "Review not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart not found"
	}
	if strings.Contains(contextLower, "order") {
		return "Order not found"
	}
	if strings.Contains(contextLower, "customer") {
		return "Customer not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	if strings.Contains(contextLower, "tag") {
		return "Tag not found"
	}

	return "The requested record could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "An error occurred while creating the record. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "An error occurred while updating the record. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "An error occurred while deleting the record. Please try again later"
	}

	return "An internal error occurred. Please try again later"
}
