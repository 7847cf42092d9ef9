package model

import "errors"

// ErrNotFound is returned when a referenced account name does not exist
// anywhere in the tree.
var ErrNotFound = errors.New("account not found")

// ErrInvalidOperation is returned when an operation is attempted on a
// node shape that does not support it, such as withdrawing from a branch
// or attaching a child to a leaf.
var ErrInvalidOperation = errors.New("invalid operation")
