package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/domain/shared"
)

func TestHouseService_CreateHouse(t *testing.T) {
	f := setupMembership(t)
	ctx := context.Background()

	t.Run("registers an active house", func(t *testing.T) {
		house, err := f.houseService.CreateHouse(ctx, CreateHouseRequest{
			HouseName:   "Puthenveedu",
			HouseNumber: "H-17",
			Ward:        "East",
			Address:     "Masjid Road",
		})
		require.NoError(t, err)
		assert.True(t, house.IsActive)
		assert.Equal(t, "Puthenveedu", house.HouseName)
		assert.Equal(t, "Masjid Road", house.Address)

		found, err := f.houseService.GetHouse(ctx, house.GetID())
		require.NoError(t, err)
		assert.Equal(t, house.GetID(), found.GetID())
	})

	t.Run("rejects a house without a name", func(t *testing.T) {
		_, err := f.houseService.CreateHouse(ctx, CreateHouseRequest{
			HouseNumber: "H-18",
		})
		assert.Error(t, err)
	})
}

func TestHouseService_DeactivateHouse(t *testing.T) {
	f := setupMembership(t)
	ctx := context.Background()

	house := f.createHouse(t, "Kizhakkeveedu", "H-02")

	require.NoError(t, f.houseService.DeactivateHouse(ctx, house.GetID()))

	found, err := f.houseService.GetHouse(ctx, house.GetID())
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	t.Run("deactivated house is skipped by dues generation", func(t *testing.T) {
		result, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: 7})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Generated)
	})
}

func TestHouseService_Members(t *testing.T) {
	f := setupMembership(t)
	ctx := context.Background()

	house := f.createHouse(t, "Thekkeveedu", "H-03")

	t.Run("registers a member of a house", func(t *testing.T) {
		member, err := f.houseService.CreateMember(ctx, CreateMemberRequest{
			FirstName: "Muhammed",
			LastName:  "Ali",
			HouseID:   house.GetID(),
			Phone:     "9400000000",
			Email:     "ali@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, house.GetID(), member.HouseID)

		members, err := f.houseService.ListHouseMembers(ctx, house.GetID())
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "Muhammed", members[0].FirstName)
	})

	t.Run("rejects a member of an unknown house", func(t *testing.T) {
		_, err := f.houseService.CreateMember(ctx, CreateMemberRequest{
			FirstName: "Ghost",
			HouseID:   uuid.New(),
		})
		assert.Error(t, err)
	})

	t.Run("lists houses with pagination", func(t *testing.T) {
		houses, err := f.houseService.ListHouses(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(houses), 2)
	})
}
