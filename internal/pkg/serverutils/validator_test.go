package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Age      int    `validate:"omitempty,gte=18"`
}

func TestValidateRequestPasses(t *testing.T) {
	err := ValidateRequest(&sampleRequest{
		Email:    "aluno@example.com",
		FullName: "Aluno Teste",
	})
	assert.NoError(t, err)
}

func TestValidateRequestCollectsFailures(t *testing.T) {
	err := ValidateRequest(&sampleRequest{Email: "not-an-email", Age: 10})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, verr.Fields, 3)
	assert.Contains(t, verr.Error(), "Email (email)")
	assert.Contains(t, verr.Error(), "FullName (required)")
	assert.Contains(t, verr.Error(), "Age (gte)")
}
