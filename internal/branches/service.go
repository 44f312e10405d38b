package branches

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/mvillagranc/mesaboard-backend/pkg/db/types"

	"github.com/mvillagranc/mesaboard-backend/pkg/db/models"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/pagination"
)

// HoursInput is one weekly window in a create or update payload.
type HoursInput struct {
	Weekday  enums.Weekday
	OpensAt  string
	ClosesAt string
}

// CreateBranchInput holds the validated payload to create a branch.
type CreateBranchInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	Open    bool
	Hours   []HoursInput
}

// UpdateBranchInput holds optional mutation values for a branch.
type UpdateBranchInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Open    *bool
	Hours   *[]HoursInput
}

// Service exposes branch management plus the availability surface.
type Service interface {
	CreateBranch(ctx context.Context, input CreateBranchInput) (*BranchDTO, error)
	GetBranch(ctx context.Context, id uuid.UUID) (*BranchDTO, error)
	ListBranches(ctx context.Context, params pagination.Params) (*BranchListResult, error)
	UpdateBranch(ctx context.Context, id uuid.UUID, input UpdateBranchInput) (*BranchDTO, error)
	DeleteBranch(ctx context.Context, id uuid.UUID) error

	EnableProduct(ctx context.Context, branchID, productID uuid.UUID) error
	RemoveProduct(ctx context.Context, branchID, productID uuid.UUID) error
	SetProductAvailability(ctx context.Context, branchID, productID uuid.UUID, available bool) error
	SetIngredientAvailability(ctx context.Context, branchID, ingredientID uuid.UUID, available bool) error
	IsProductAvailable(ctx context.Context, branchID, productID uuid.UUID) (*AvailabilityDTO, error)
	IsIngredientAvailable(ctx context.Context, branchID, ingredientID uuid.UUID) (*AvailabilityDTO, error)
}

type service struct {
	repo       *Repository
	propagator *Propagator
}

// NewService constructs the branch service.
func NewService(repo *Repository, propagator *Propagator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("branch repository required")
	}
	if propagator == nil {
		return nil, fmt.Errorf("availability propagator required")
	}
	return &service{repo: repo, propagator: propagator}, nil
}

func (s *service) CreateBranch(ctx context.Context, input CreateBranchInput) (*BranchDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	hours, err := buildHours(input.Hours)
	if err != nil {
		return nil, err
	}

	branch := &models.Branch{
		ID:            uuid.New(),
		Name:          name,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		Open:          input.Open,
		ProductIDs:    dbtypes.UUIDArray{},
		IngredientIDs: dbtypes.UUIDArray{},
	}
	for i := range hours {
		hours[i].BranchID = branch.ID
	}
	branch.Hours = hours

	created, err := s.repo.CreateBranch(ctx, branch)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert branch")
	}
	return toBranchDTO(created), nil
}

func (s *service) GetBranch(ctx context.Context, id uuid.UUID) (*BranchDTO, error) {
	branch, err := s.repo.FindBranchByID(ctx, id)
	if err != nil {
		return nil, mapBranchLookupErr(err, id)
	}
	return toBranchDTO(branch), nil
}

func (s *service) ListBranches(ctx context.Context, params pagination.Params) (*BranchListResult, error) {
	rows, err := s.repo.ListBranches(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list branches")
	}
	page := pagination.BuildPage(rows, params.Limit, func(m models.Branch) pagination.Cursor {
		return pagination.Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
	})
	dtos := make([]BranchDTO, 0, len(page.Items))
	for i := range page.Items {
		dtos = append(dtos, *toBranchDTO(&page.Items[i]))
	}
	return &BranchListResult{Branches: dtos, NextCursor: page.NextCursor}, nil
}

func (s *service) UpdateBranch(ctx context.Context, id uuid.UUID, input UpdateBranchInput) (*BranchDTO, error) {
	branch, err := s.repo.FindBranchByID(ctx, id)
	if err != nil {
		return nil, mapBranchLookupErr(err, id)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		branch.Name = name
	}
	if input.Phone != nil {
		branch.Phone = input.Phone
	}
	if input.Email != nil {
		branch.Email = input.Email
	}
	if input.Address != nil {
		branch.Address = input.Address
	}
	if input.Open != nil {
		branch.Open = *input.Open
	}

	if input.Hours != nil {
		hours, err := buildHours(*input.Hours)
		if err != nil {
			return nil, err
		}
		for i := range hours {
			hours[i].BranchID = branch.ID
		}
		if err := s.repo.ReplaceHours(ctx, branch.ID, hours); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace branch hours")
		}
		branch.Hours = hours
	}

	updated, err := s.repo.UpdateBranch(ctx, branch)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update branch")
	}
	return toBranchDTO(updated), nil
}

func (s *service) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindBranchByID(ctx, id); err != nil {
		return mapBranchLookupErr(err, id)
	}
	if err := s.repo.DeleteBranch(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete branch")
	}
	return nil
}

func (s *service) EnableProduct(ctx context.Context, branchID, productID uuid.UUID) error {
	return s.propagator.EnableProduct(ctx, branchID, productID)
}

func (s *service) RemoveProduct(ctx context.Context, branchID, productID uuid.UUID) error {
	return s.propagator.RemoveProduct(ctx, branchID, productID)
}

func (s *service) SetProductAvailability(ctx context.Context, branchID, productID uuid.UUID, available bool) error {
	return s.propagator.SetProductAvailability(ctx, branchID, productID, available)
}

func (s *service) SetIngredientAvailability(ctx context.Context, branchID, ingredientID uuid.UUID, available bool) error {
	return s.propagator.SetIngredientAvailability(ctx, branchID, ingredientID, available)
}

func (s *service) IsProductAvailable(ctx context.Context, branchID, productID uuid.UUID) (*AvailabilityDTO, error) {
	available, err := s.propagator.IsProductAvailable(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}
	return &AvailabilityDTO{BranchID: branchID, ItemID: productID, Available: available}, nil
}

func (s *service) IsIngredientAvailable(ctx context.Context, branchID, ingredientID uuid.UUID) (*AvailabilityDTO, error) {
	available, err := s.propagator.IsIngredientAvailable(ctx, branchID, ingredientID)
	if err != nil {
		return nil, err
	}
	return &AvailabilityDTO{BranchID: branchID, ItemID: ingredientID, Available: available}, nil
}

func buildHours(inputs []HoursInput) ([]models.BranchHours, error) {
	hours := make([]models.BranchHours, 0, len(inputs))
	for _, input := range inputs {
		if !input.Weekday.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown weekday %q", input.Weekday))
		}
		opens, err := parseClock(input.OpensAt)
		if err != nil {
			return nil, err
		}
		closes, err := parseClock(input.ClosesAt)
		if err != nil {
			return nil, err
		}
		if !opens.Before(closes) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("opens_at %s must precede closes_at %s", input.OpensAt, input.ClosesAt),
			)
		}
		hours = append(hours, models.BranchHours{
			ID:       uuid.New(),
			Weekday:  input.Weekday,
			OpensAt:  input.OpensAt,
			ClosesAt: input.ClosesAt,
		})
	}
	return hours, nil
}

func parseClock(value string) (time.Time, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid time %q, expected HH:MM", value))
	}
	return parsed, nil
}
