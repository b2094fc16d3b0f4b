package domain

import "errors"

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrForbidden indicates that the user is not authorized to perform the action.
	ErrForbidden = errors.New("action forbidden")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrAlreadyExists indicates a uniqueness conflict (duplicate review, favorite or email).
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrProductUnavailable indicates that a product is not active and cannot be purchased.
	ErrProductUnavailable = errors.New("product is not available for purchase")
	// ErrRepository indicates a generic data persistence error.
	ErrRepository = errors.New("repository error")
)
