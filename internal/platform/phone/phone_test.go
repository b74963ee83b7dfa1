package phone_test

import (
	"testing"

	"github.com/SscSPs/vetpos_backend/internal/platform/phone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := phone.NewNormalizer("US")

	got, err := n.Normalize("(650) 253-0000")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got)

	got, err = n.Normalize("+44 20 7031 3000")
	require.NoError(t, err)
	assert.Equal(t, "+442070313000", got)
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	n := phone.NewNormalizer("US")

	_, err := n.Normalize("not a phone")
	assert.Error(t, err)

	_, err = n.Normalize("123")
	assert.Error(t, err)
}
