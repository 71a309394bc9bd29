package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleTeacher, RoleStudent} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("Janitor").Valid())
	assert.False(t, Role("").Valid())
}

// Email carries a unique index, so account removal must free the email slot.
// A gorm soft-delete field would keep the dead row in the index and make a
// rejected student's email unusable forever.
func TestAccountDeleteIsPermanent(t *testing.T) {
	deletedAt := reflect.TypeOf(gorm.DeletedAt{})
	typ := reflect.TypeOf(Account{})
	for i := 0; i < typ.NumField(); i++ {
		assert.NotEqual(t, deletedAt, typ.Field(i).Type,
			"accounts must hard-delete; field %s re-introduces soft deletion", typ.Field(i).Name)
	}
}
