package service

import "errors"

var (
	ErrAuthRequired        = errors.New("authentication required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidProduct      = errors.New("invalid product id")
	ErrProductNotFound     = errors.New("product not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidSortMode     = errors.New("invalid sort mode")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartLoadFailed      = errors.New("cart load failed")
	ErrStoreUnavailable    = errors.New("remote store unavailable")
	ErrStoreRequestFailed  = errors.New("remote store request failed")
	ErrSessionStateFailure = errors.New("session state failure")

	ErrUnknownCollection  = errors.New("unknown collection")
	ErrCollectionReadOnly = errors.New("collection is read-only")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrInvalidStoreQuery  = errors.New("invalid store query")
	ErrDocumentConflict   = errors.New("document already exists")
)
