package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
)

func TestUserCanAfford(t *testing.T) {
	u := &entity.User{Points: 50}
	assert.True(t, u.CanAfford(50))
	assert.True(t, u.CanAfford(20))
	assert.False(t, u.CanAfford(51))
}

func TestUserIsAdministrator(t *testing.T) {
	assert.True(t, (&entity.User{Role: entity.RoleAdministrator}).IsAdministrator())
	assert.False(t, (&entity.User{Role: entity.RoleMember}).IsAdministrator())
}

func TestItemCanBeRedeemed(t *testing.T) {
	assert.True(t, (&entity.Item{Approved: true, Status: entity.StatusAvailable}).CanBeRedeemed())
	assert.False(t, (&entity.Item{Approved: false, Status: entity.StatusAvailable}).CanBeRedeemed())
	assert.False(t, (&entity.Item{Approved: true, Status: entity.StatusRedeemed}).CanBeRedeemed())

	// re-approval of a redeemed item does not resurrect it
	assert.False(t, (&entity.Item{Approved: true, Status: entity.StatusSwapped}).CanBeRedeemed())
}
