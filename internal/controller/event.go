package controller

import (
	"errors"

	"github.com/user/recdesk/internal/model"
)

// Op names a controller operation that calls the record service.
type Op string

// Operations
const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Outcome describes a successful Save.
type Outcome struct {
	Op     Op
	Record model.Record
}

// Event is reported to the observer after every service call.
type Event struct {
	Op       Op
	RecordID int
	Title    string
	Count    int
	Err      error
}

// Acknowledgment returns the short message shown to the user once an
// operation finishes. Service failures share one generic message per op.
func Acknowledgment(op Op, err error) string {
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return "Title cannot be empty."
		}
		switch op {
		case OpLoad:
			return "Error fetching records."
		case OpCreate:
			return "Error creating record."
		case OpUpdate:
			return "Error updating record."
		case OpDelete:
			return "Error deleting record."
		}
		return "Request failed."
	}

	switch op {
	case OpLoad:
		return "Records loaded."
	case OpCreate:
		return "Record created successfully!"
	case OpUpdate:
		return "Record updated successfully!"
	case OpDelete:
		return "Record deleted successfully!"
	}
	return "Done."
}
