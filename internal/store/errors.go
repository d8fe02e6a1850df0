package store

import "errors"

var (
	ErrInTransaction  = errors.New("store is already in a transaction")
	ErrCorruptSession = errors.New("stored session is corrupt")
)
