package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Services wrap
// them with context and handlers match them with errors.Is to pick the HTTP
// status, so the same kind always maps to the same status code.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrGroupNotFound    = errors.New("product group not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateBarcode = errors.New("barcode already registered")
	ErrGroupHasProducts = errors.New("product group has associated products and cannot be removed")
)
