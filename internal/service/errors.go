package service

import "errors"

// Error taxonomy surfaced to handlers. Handlers map these onto HTTP statuses;
// anything wrapped in ErrInternal is a storage-layer failure and becomes a 500.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyCancelled    = errors.New("transaction is already cancelled")

	ErrInvalidDiscount         = errors.New("discount percentage must be between 0 and 100")
	ErrDiscountExceedsSubtotal = errors.New("discount exceeds subtotal")

	ErrDuplicateSKU      = errors.New("product with this SKU already exists")
	ErrDuplicateBarcode  = errors.New("product with this barcode already exists")
	ErrDuplicateCategory = errors.New("category with this name already exists")
	ErrDuplicateSupplier = errors.New("supplier with this email already exists")

	ErrCategoryNotFound = errors.New("category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrInvestorNotFound = errors.New("investor not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrInternal = errors.New("internal error")
)
