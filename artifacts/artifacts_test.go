package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	a := &Artifacts{
		Binary:       []byte("constraint system bytes"),
		ProvingKey:   []byte("proving key bytes"),
		VerifyingKey: []byte("verifying key bytes"),
	}

	require.NoError(t, a.Write(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, a, loaded)
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load("/nonexistent/artifacts/path")
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	dir := t.TempDir()

	a := &Artifacts{
		Binary:       []byte{0x01},
		ProvingKey:   []byte{0x02},
		VerifyingKey: []byte{0x03},
	}
	require.NoError(t, a.Write(dir))

	t.Setenv("AGEKEY_ARTIFACTS_PATH", dir)

	loaded, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, a, loaded)
}
