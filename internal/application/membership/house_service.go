package membership

import (
	"context"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared"
)

// HouseService provides house and member registry operations
type HouseService struct {
	houseRepo  membership.HouseRepository
	memberRepo membership.MemberRepository
	duesRepo   membership.DuesRepository
}

// NewHouseService creates a new HouseService
func NewHouseService(
	houseRepo membership.HouseRepository,
	memberRepo membership.MemberRepository,
	duesRepo membership.DuesRepository,
) *HouseService {
	return &HouseService{
		houseRepo:  houseRepo,
		memberRepo: memberRepo,
		duesRepo:   duesRepo,
	}
}

// CreateHouseRequest represents a request to register a house
type CreateHouseRequest struct {
	HouseName   string `json:"house_name" binding:"required"`
	HouseNumber string `json:"house_number" binding:"required"`
	Ward        string `json:"ward"`
	Address     string `json:"address"`
}

// CreateMemberRequest represents a request to register a member
type CreateMemberRequest struct {
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name"`
	HouseID   uuid.UUID `json:"house_id" binding:"required"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email" binding:"omitempty,email"`
}

// CreateHouse registers a house
func (s *HouseService) CreateHouse(ctx context.Context, req CreateHouseRequest) (*membership.House, error) {
	house, err := membership.NewHouse(req.HouseName, req.HouseNumber, req.Ward)
	if err != nil {
		return nil, err
	}
	house.Address = req.Address
	if err := s.houseRepo.Save(ctx, house); err != nil {
		return nil, err
	}
	return house, nil
}

// GetHouse returns one house by ID
func (s *HouseService) GetHouse(ctx context.Context, id uuid.UUID) (*membership.House, error) {
	return s.houseRepo.FindByID(ctx, id)
}

// ListHouses lists houses with filtering
func (s *HouseService) ListHouses(ctx context.Context, filter shared.Filter) ([]membership.House, error) {
	return s.houseRepo.FindAll(ctx, filter)
}

// DeactivateHouse excludes the house from future dues generation
func (s *HouseService) DeactivateHouse(ctx context.Context, id uuid.UUID) error {
	house, err := s.houseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	house.Deactivate()
	return s.houseRepo.Save(ctx, house)
}

// CreateMember registers a member of a house
func (s *HouseService) CreateMember(ctx context.Context, req CreateMemberRequest) (*membership.Member, error) {
	if _, err := s.houseRepo.FindByID(ctx, req.HouseID); err != nil {
		return nil, err
	}
	member, err := membership.NewMember(req.FirstName, req.LastName, req.HouseID)
	if err != nil {
		return nil, err
	}
	member.Phone = req.Phone
	member.Email = req.Email
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers lists members with filtering
func (s *HouseService) ListMembers(ctx context.Context, filter shared.Filter) ([]membership.Member, error) {
	return s.memberRepo.FindAll(ctx, filter)
}

// ListHouseMembers lists members of one house
func (s *HouseService) ListHouseMembers(ctx context.Context, houseID uuid.UUID) ([]membership.Member, error) {
	return s.memberRepo.FindByHouse(ctx, houseID)
}

// ListHouseDues lists dues rows of one house
func (s *HouseService) ListHouseDues(ctx context.Context, houseID uuid.UUID, filter shared.Filter) ([]membership.MembershipDues, error) {
	return s.duesRepo.FindByHouse(ctx, houseID, filter)
}
