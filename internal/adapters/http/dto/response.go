// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/boardstate/internal/domain/product"
	"github.com/jsamuelsen11/boardstate/internal/domain/task"
	"github.com/jsamuelsen11/boardstate/internal/domain/user"
)

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// ToTaskResponse converts a domain Task to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
	}
}

// BoardResponse represents the whole task board. It is also the payload of
// every task event on the SSE stream.
type BoardResponse struct {
	Tasks       []TaskResponse `json:"tasks"`
	DraggedTask *string        `json:"draggedTask"`
	Count       int            `json:"count"`
}

// ToBoardResponse converts the task store state to an HTTP response DTO.
func ToBoardResponse(s task.BoardState) BoardResponse {
	items := make([]TaskResponse, len(s.Tasks))
	for i := range s.Tasks {
		items[i] = ToTaskResponse(&s.Tasks[i])
	}
	return BoardResponse{
		Tasks:       items,
		DraggedTask: s.DraggedTask,
		Count:       len(items),
	}
}

// UserResponse represents a single user in HTTP responses.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserResponse converts a domain User to an HTTP response DTO.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserListResponse represents the user store state in HTTP responses.
type UserListResponse struct {
	Users         []UserResponse `json:"users"`
	CurrentUserID *string        `json:"currentUserId"`
	Count         int            `json:"count"`
}

// ToUserListResponse converts the user store state to an HTTP response DTO.
func ToUserListResponse(s user.State) UserListResponse {
	items := make([]UserResponse, len(s.Users))
	for i := range s.Users {
		items[i] = ToUserResponse(&s.Users[i])
	}
	return UserListResponse{
		Users:         items,
		CurrentUserID: s.CurrentUserID,
		Count:         len(items),
	}
}

// ProductResponse represents a single product in HTTP responses.
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// ToProductResponse converts a domain Product to an HTTP response DTO.
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
	}
}

// ProductListResponse represents the product catalog in HTTP responses.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// ToProductListResponse converts the product store state to an HTTP response
// DTO.
func ToProductListResponse(s product.State) ProductListResponse {
	items := make([]ProductResponse, len(s.Products))
	for i := range s.Products {
		items[i] = ToProductResponse(&s.Products[i])
	}
	return ProductListResponse{
		Products: items,
		Count:    len(items),
	}
}
