package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonpulse/webtoon-platform/internal/lib/password"
)

func TestDigestAndVerify(t *testing.T) {
	tests := []struct {
		name   string
		scheme password.Scheme
	}{
		{name: "legacy scheme", scheme: password.SchemeLegacy},
		{name: "bcrypt scheme", scheme: password.SchemeBcrypt},
		{name: "empty scheme defaults to legacy", scheme: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := password.Digest("secret1", tt.scheme)
			require.NoError(t, err)
			require.NotEmpty(t, digest)

			assert.NoError(t, password.Verify("secret1", digest))
			assert.ErrorIs(t, password.Verify("wrong", digest), password.ErrMismatch)
		})
	}
}

func TestDigest_UnknownScheme(t *testing.T) {
	_, err := password.Digest("secret1", password.Scheme("md5"))
	assert.Error(t, err)
}

func TestVerify_MixedSchemesCoexist(t *testing.T) {
	legacy, err := password.Digest("secret1", password.SchemeLegacy)
	require.NoError(t, err)
	hashed, err := password.Digest("secret1", password.SchemeBcrypt)
	require.NoError(t, err)

	// Хранилище может содержать записи обеих схем одновременно.
	assert.NotEqual(t, legacy, hashed)
	assert.NoError(t, password.Verify("secret1", legacy))
	assert.NoError(t, password.Verify("secret1", hashed))
}
