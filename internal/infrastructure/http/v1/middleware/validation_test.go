package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kodeRequest struct {
	Code string  `json:"kodeItem" binding:"required,kodeitem"`
	Opt  *string `json:"opt" binding:"omitempty,kodeitem"`
}

func TestKodeItemTag(t *testing.T) {
	SetupValidator()

	require.NoError(t, binding.Validator.ValidateStruct(&kodeRequest{Code: "07"}))

	err := binding.Validator.ValidateStruct(&kodeRequest{Code: "7"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"kodeItem": "Must be a two-digit item type code"}, ValidationDetails(err))

	bad := "1A"
	err = binding.Validator.ValidateStruct(&kodeRequest{Code: "10", Opt: &bad})
	require.Error(t, err)
	assert.Contains(t, ValidationDetails(err), "opt")
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
