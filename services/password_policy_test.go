package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ng!Password123"))

	// Too short
	assert.Error(t, ValidatePassword("Sh0rt!pw"))
	// No uppercase
	assert.Error(t, ValidatePassword("str0ng!password123"))
	// No lowercase
	assert.Error(t, ValidatePassword("STR0NG!PASSWORD123"))
	// No number
	assert.Error(t, ValidatePassword("Strong!Password"))
	// No special character
	assert.Error(t, ValidatePassword("Str0ngPassword123"))
}
