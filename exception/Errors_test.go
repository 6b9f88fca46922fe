package exception

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorParamSubstitution(t *testing.T) {
	err := CustomError{
		Status:  409,
		Code:    AccountAlreadyLinked,
		Message: AccountAlreadyLinkedMsg,
		Params:  map[string]interface{}{"account": "A100"},
	}
	assert.Equal(t, "Account A100 is already linked for the current user", err.Error())
}

func TestCustomErrorDebugSuffix(t *testing.T) {
	err := CustomError{
		Status:  500,
		Message: "something broke",
		Debug:   "stack details",
	}
	assert.Equal(t, "something broke | stack details", err.Error())
}
