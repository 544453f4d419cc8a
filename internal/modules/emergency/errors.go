package emergency

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidAddress   = errors.New("address too short")
)
