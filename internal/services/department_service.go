package services

import (
	"context"
	"time"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/repository"
	"github.com/finmate/finmate-server/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DepartmentService encapsulates the business logic for departments. Role
// enforcement (business accounts only) happens in the route middleware;
// ownership is still checked here.
type DepartmentService struct {
	repo *repository.DepartmentRepository
}

// NewDepartmentService creates a new instance of DepartmentService.
func NewDepartmentService(repo *repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{
		repo: repo,
	}
}

// DepartmentInput carries the user-supplied fields of a department.
type DepartmentInput struct {
	Name             string  `json:"name"`
	TotalBudget      float64 `json:"total_budget"`
	EfficiencyRating int     `json:"efficiency_rating"`
	Description      string  `json:"description"`
	Headcount        *int    `json:"headcount,omitempty"`
}

func (in DepartmentInput) validate() error {
	if in.Name == "" {
		return apperrors.NewValidation("name", "is required")
	}
	if in.TotalBudget <= 0 {
		return apperrors.NewValidation("total_budget", "must be greater than 0")
	}
	if in.EfficiencyRating < 1 || in.EfficiencyRating > 10 {
		return apperrors.NewValidation("efficiency_rating", "must be between 1 and 10")
	}
	if in.Headcount != nil && *in.Headcount <= 0 {
		return apperrors.NewValidation("headcount", "must be greater than 0")
	}
	return nil
}

// CreateDepartment validates the input and stores the department.
func (s *DepartmentService) CreateDepartment(ctx context.Context, userID primitive.ObjectID, input DepartmentInput) (*models.Department, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dept := &models.Department{
		UserID:           userID,
		Name:             input.Name,
		TotalBudget:      input.TotalBudget,
		EfficiencyRating: input.EfficiencyRating,
		Description:      input.Description,
		Headcount:        input.Headcount,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.CreateDepartment(ctx, dept)
	if err != nil {
		return nil, apperrors.NewStorage("create department", err)
	}

	logger.Log.WithField("department_id", created.ID.Hex()).Info("Department created in service layer")
	return created, nil
}

// GetDepartments lists the caller's active departments.
func (s *DepartmentService) GetDepartments(ctx context.Context, userID primitive.ObjectID) ([]models.Department, error) {
	departments, err := s.repo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewStorage("fetch departments", err)
	}
	return departments, nil
}

// UpdateDepartment changes one of the caller's departments.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, userID primitive.ObjectID, deptID string, input DepartmentInput) error {
	objID, err := primitive.ObjectIDFromHex(deptID)
	if err != nil {
		return apperrors.NewNotFound("department")
	}
	if err := input.validate(); err != nil {
		return err
	}

	dept := &models.Department{
		Name:             input.Name,
		TotalBudget:      input.TotalBudget,
		EfficiencyRating: input.EfficiencyRating,
		Description:      input.Description,
		Headcount:        input.Headcount,
	}
	matched, err := s.repo.UpdateDepartment(ctx, objID, userID, dept)
	if err != nil {
		return apperrors.NewStorage("update department", err)
	}
	if matched == 0 {
		return apperrors.NewNotFound("department")
	}
	return nil
}

// DeleteDepartment retires one of the caller's departments.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, userID primitive.ObjectID, deptID string) error {
	objID, err := primitive.ObjectIDFromHex(deptID)
	if err != nil {
		return apperrors.NewNotFound("department")
	}

	matched, err := s.repo.Deactivate(ctx, objID, userID)
	if err != nil {
		return apperrors.NewStorage("deactivate department", err)
	}
	if matched == 0 {
		return apperrors.NewNotFound("department")
	}
	return nil
}
