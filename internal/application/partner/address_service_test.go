package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
)

type memoryAddressRepo struct {
	byID map[uuid.UUID]*partner.Address
}

func newMemoryAddressRepo() *memoryAddressRepo {
	return &memoryAddressRepo{byID: make(map[uuid.UUID]*partner.Address)}
}

func (m *memoryAddressRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*partner.Address, error) {
	a, ok := m.byID[id]
	if !ok || a.UserID != userID {
		return nil, shared.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memoryAddressRepo) FindAllForUser(_ context.Context, userID uuid.UUID) ([]partner.Address, error) {
	var out []partner.Address
	for _, a := range m.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memoryAddressRepo) Save(_ context.Context, address *partner.Address) error {
	copied := *address
	m.byID[address.ID] = &copied
	return nil
}

func (m *memoryAddressRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	a, ok := m.byID[id]
	if !ok || a.UserID != userID {
		return shared.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func TestAddressServiceCreateAndGet(t *testing.T) {
	svc := NewAddressService(newMemoryAddressRepo())
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, "Wang Fang", "13800000000", "1 Market St", false)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wang Fang", got.RecipientName)
}

func TestAddressServiceCreateInvalid(t *testing.T) {
	svc := NewAddressService(newMemoryAddressRepo())

	_, err := svc.Create(context.Background(), uuid.New(), "", "13800000000", "1 Market St", false)
	assert.Error(t, err)
}

func TestAddressServiceUpdate(t *testing.T) {
	svc := NewAddressService(newMemoryAddressRepo())
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, "Wang Fang", "13800000000", "1 Market St", false)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), userID, created.ID, "Li Wei", "13900000000", "2 Market St", false)
	require.NoError(t, err)
	assert.Equal(t, "Li Wei", updated.RecipientName)

	got, err := svc.Get(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2 Market St", got.Address)
}

func TestAddressServiceDefaultFlag(t *testing.T) {
	svc := NewAddressService(newMemoryAddressRepo())
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, "Wang Fang", "13800000000", "1 Market St", true)
	require.NoError(t, err)
	assert.True(t, created.IsDefault)

	got, err := svc.Get(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)

	updated, err := svc.Update(context.Background(), userID, created.ID, "Wang Fang", "13800000000", "1 Market St", false)
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
}

func TestAddressServiceUpdateNotOwned(t *testing.T) {
	svc := NewAddressService(newMemoryAddressRepo())

	created, err := svc.Create(context.Background(), uuid.New(), "Wang Fang", "13800000000", "1 Market St", false)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), created.ID, "Li Wei", "13900000000", "2 Market St", false)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAddressServiceDelete(t *testing.T) {
	svc := NewAddressService(newMemoryAddressRepo())
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, "Wang Fang", "13800000000", "1 Market St", false)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, created.ID))

	_, err = svc.Get(context.Background(), userID, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
