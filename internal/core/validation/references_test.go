package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

type userLookup struct {
	ports.UserRepository
	users map[string]*domain.User
	err   error
}

type restaurantLookup struct {
	ports.RestaurantRepository
	restaurants map[string]*domain.Restaurant
}

func (s *userLookup) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *restaurantLookup) FindActiveByID(_ context.Context, id string) (*domain.Restaurant, error) {
	if r, ok := s.restaurants[id]; ok && r.IsActive {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func TestReferences_Account(t *testing.T) {
	stub := &userLookup{users: map[string]*domain.User{
		"bloggerone": {Username: "bloggerone", Role: domain.RoleBlogger},
	}}
	refs := NewReferences(stub, nil, nil)
	ctx := context.Background()

	u, err := refs.Account(ctx, "blogger", "bloggerone", domain.RoleBlogger)
	require.NoError(t, err)
	assert.Equal(t, "bloggerone", u.Username)

	_, err = refs.Account(ctx, "username", "bloggerone")
	assert.NoError(t, err, "any role accepted when none given")

	_, err = refs.Account(ctx, "restaurateur", "bloggerone", domain.RoleRestaurateur)
	errs := fieldErrors(t, err)
	assert.Equal(t, `Username "@bloggerone" is not associated to any restaurateur account`, errs[0].Msg)
	assert.Equal(t, "restaurateur", errs[0].Param)

	stub.err = errors.New("socket closed")
	_, err = refs.Account(ctx, "username", "bloggerone")
	require.Error(t, err)
	var ve *domain.ValidationError
	assert.False(t, errors.As(err, &ve), "store failures are not validation failures")
}

func TestReferences_Restaurant(t *testing.T) {
	id := "5f1b2c3d4e5f6a7b8c9d0e1f"
	refs := NewReferences(nil, &restaurantLookup{restaurants: map[string]*domain.Restaurant{
		id: {ID: id, IsActive: false},
	}}, nil)
	ctx := context.Background()

	_, err := refs.RestaurantField(ctx, "restaurant", id)
	errs := fieldErrors(t, err)
	assert.Equal(t, `ID "@`+id+`" is not associated to any restaurant`, errs[0].Msg)

	_, err = refs.ActiveRestaurant(ctx, id)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, `ID "`+id+`" is not associated to any restaurant`, nf.Msg)

	_, err = refs.ActiveRestaurant(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
