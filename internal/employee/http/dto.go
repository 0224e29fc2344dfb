package http

import (
	"time"

	"github.com/nekogravitycat/office-seat-booking/internal/employee"
	"github.com/nekogravitycat/office-seat-booking/internal/pkg/request"
)

// ListEmployeesRequest pages through employees, or resolves one when any criteria field is set.
type ListEmployeesRequest struct {
	request.ListParams
	ID        string `form:"id" binding:"omitempty,uuid"`
	Email     string `form:"email" binding:"omitempty,email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

func (r ListEmployeesRequest) Criteria() employee.Criteria {
	return employee.Criteria{ID: r.ID, Email: r.Email, FirstName: r.FirstName, LastName: r.LastName}
}

type CreateEmployeeBody struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type EmployeeResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeTag is a brief representation of an employee.
type EmployeeTag struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Email:     e.Email,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		CreatedAt: e.CreatedAt,
	}
}
