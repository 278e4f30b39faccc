package errors

import (
	"encoding/json"
	"fmt"
)

// ConflictErr is raised when a write collides with an already persisted entry
type ConflictErr struct {
	target  string
	message string
}

func (e *ConflictErr) Error() string {
	return e.message
}

func (e *ConflictErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

// NewEmailInUseErr builds ConflictErr for already registered email
func NewEmailInUseErr(email string) *ConflictErr {
	return &ConflictErr{
		target:  "email",
		message: fmt.Sprintf("email already exists: %s", email),
	}
}

// NotFoundErr is raised when requested entry doesn't exist
type NotFoundErr struct {
	message string
}

func (e *NotFoundErr) Error() string {
	return e.message
}

// NewCustomerNotFoundErr builds NotFoundErr naming the missing customer id
func NewCustomerNotFoundErr(id int) *NotFoundErr {
	return &NotFoundErr{message: fmt.Sprintf("customer with id %d not found", id)}
}
