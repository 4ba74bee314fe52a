package domain

import "errors"

var (
	ErrNotFound = errors.New("project not found")
	// ErrStore marks any failure of the backing document store. Callers show a
	// generic message and let the user retry.
	ErrStore = errors.New("project store unavailable")
)
