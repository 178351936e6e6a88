package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCouponKeyStorageKey(t *testing.T) {
	k := NewCouponKey("p1", "SAVE10", "alice")
	assert.Equal(t, `["p1","SAVE10","alice"]`, k.StorageKey())

	// Components containing separators must not collide.
	a := NewCouponKey("p1,x", "y", "z")
	b := NewCouponKey("p1", "x,y", "z")
	assert.NotEqual(t, a.StorageKey(), b.StorageKey())

	assert.NotEqual(t,
		NewCouponKey("p1", "SAVE", "alice").StorageKey(),
		NewCouponKey("p1", "SAVE", "bob").StorageKey(),
	)
}

func TestReviewTrackingKeyStorageKey(t *testing.T) {
	k := NewReviewTrackingKey("p1", "bob")
	assert.Equal(t, `["p1","bob"]`, k.StorageKey())
	assert.Equal(t, k, NewReviewTrackingKey("p1", "bob"))
}

func TestProductInputActiveDefault(t *testing.T) {
	assert.True(t, ProductInput{}.Active())

	inactive := false
	assert.False(t, ProductInput{IsActive: &inactive}.Active())
}

func TestAccountIDIsZero(t *testing.T) {
	assert.True(t, AccountID("").IsZero())
	assert.True(t, AccountID("  ").IsZero())
	assert.False(t, AccountID("alice").IsZero())
}
