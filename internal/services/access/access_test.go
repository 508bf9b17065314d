package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/pizzeria/internal/model"
)

func bound(role model.Role) *model.Session {
	return &model.Session{Token: "t", Account: &model.Account{ID: 1, Role: role}}
}

func TestIsAuthenticated(t *testing.T) {
	assert.False(t, IsAuthenticated(nil))
	assert.False(t, IsAuthenticated(&model.Session{}))
	assert.False(t, IsAuthenticated(&model.Session{Token: "t"}))
	assert.True(t, IsAuthenticated(bound(model.RoleStandard)))
	assert.True(t, IsAuthenticated(bound(model.RoleElevated)))
}

func TestIsElevated(t *testing.T) {
	assert.False(t, IsElevated(nil))
	assert.False(t, IsElevated(&model.Session{}))
	assert.False(t, IsElevated(bound(model.RoleStandard)))
	assert.False(t, IsElevated(bound("")))
	assert.True(t, IsElevated(bound(model.RoleElevated)))
}

func TestElevatedImpliesAuthenticated(t *testing.T) {
	sessions := []*model.Session{
		nil,
		{},
		bound(model.RoleStandard),
		bound(model.RoleElevated),
		bound("superuser"),
	}
	for _, s := range sessions {
		if IsElevated(s) {
			assert.True(t, IsAuthenticated(s))
		}
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(bound(model.RoleElevated), IsAuthenticated, IsElevated))
	assert.NoError(t, Check(nil))

	assert.ErrorIs(t, Check(&model.Session{}, IsAuthenticated), ErrAccessDenied)
	assert.ErrorIs(t, Check(bound(model.RoleStandard), IsAuthenticated, IsElevated), ErrAccessDenied)
}
