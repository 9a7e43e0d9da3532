package dto

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/domain/product"
	"github.com/jsamuelsen11/boardstate/internal/domain/task"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
	msgNonNegative  = "must not be negative"
)

// CreateTaskRequest represents the JSON body for adding a task to the board.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}

	return validationResult(fields)
}

// UpdateTaskRequest represents the JSON body for moving a task to another
// column.
type UpdateTaskRequest struct {
	Status string `json:"status"`
}

// Validate checks that the status is one of the board columns.
func (r *UpdateTaskRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case r.Status == "":
		fields["status"] = msgRequired
	case !task.Status(r.Status).IsValid():
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}

	return validationResult(fields)
}

// DragTaskRequest represents the JSON body for marking the dragged task.
// A null id clears the mark.
type DragTaskRequest struct {
	ID *string `json:"id"`
}

// Validate rejects a blank id. Null is allowed.
func (r *DragTaskRequest) Validate() error {
	fields := make(map[string]string)

	if r.ID != nil && strings.TrimSpace(*r.ID) == "" {
		fields["id"] = msgMustNotEmpty
	}

	return validationResult(fields)
}

// CreateUserRequest represents the JSON body for adding a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks that required fields are present.
func (r *CreateUserRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}

	return validationResult(fields)
}

// SetCurrentUserRequest represents the JSON body for selecting the current
// user. A null id clears the selection.
type SetCurrentUserRequest struct {
	ID *string `json:"id"`
}

// Validate rejects a blank id. Null is allowed.
func (r *SetCurrentUserRequest) Validate() error {
	fields := make(map[string]string)

	if r.ID != nil && strings.TrimSpace(*r.ID) == "" {
		fields["id"] = msgMustNotEmpty
	}

	return validationResult(fields)
}

// CreateProductRequest represents the JSON body for adding a product.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description,omitempty"`
}

// Validate checks that required fields are present and the price is not
// negative.
func (r *CreateProductRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	switch {
	case r.Price == nil:
		fields["price"] = msgRequired
	case *r.Price < 0:
		fields["price"] = msgNonNegative
	}

	return validationResult(fields)
}

// UpdateProductRequest represents the JSON body for patching a product.
// All fields are optional; nil means "do not change this field.".
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Validate checks that any provided fields have valid values and that the
// request changes something.
func (r *UpdateProductRequest) Validate() error {
	fields := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = msgMustNotEmpty
	}
	if r.Price != nil && *r.Price < 0 {
		fields["price"] = msgNonNegative
	}
	if r.ToPatch().IsEmpty() {
		fields["body"] = "must set at least one of name, price, description"
	}

	return validationResult(fields)
}

// ToPatch converts the request into a product.Patch.
func (r *UpdateProductRequest) ToPatch() product.Patch {
	return product.Patch{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
	}
}

func validationResult(fields map[string]string) error {
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
