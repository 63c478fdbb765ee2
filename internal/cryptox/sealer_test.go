package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBox(t *testing.T) *Box {
	t.Helper()
	master := bytes.Repeat([]byte{0x42}, KeySize)
	box, err := NewBox(master)
	require.NoError(t, err)
	return box
}

func TestSealOpenField_RoundTrip(t *testing.T) {
	box := testBox(t)

	tests := []string{
		"John Doe",
		"a@b.com",
		"555-123-4567",
		"Berlin, Germany",
		"пример",
		"with\nnewline",
	}

	for _, plaintext := range tests {
		sealed, degraded := box.SealField(plaintext)
		require.False(t, degraded)
		require.NotEqual(t, plaintext, sealed)

		opened, degraded := box.OpenField(sealed)
		require.False(t, degraded)
		assert.Equal(t, plaintext, opened)
	}
}

func TestSealField_Empty(t *testing.T) {
	box := testBox(t)

	sealed, degraded := box.SealField("")
	assert.False(t, degraded)
	assert.Equal(t, "", sealed)

	opened, degraded := box.OpenField("")
	assert.False(t, degraded)
	assert.Equal(t, "", opened)
}

func TestSealField_Nondeterministic(t *testing.T) {
	box := testBox(t)

	first, _ := box.SealField("a@b.com")
	second, _ := box.SealField("a@b.com")
	// fresh nonce per envelope
	assert.NotEqual(t, first, second)
}

func TestOpenField_TamperedEnvelopeDegrades(t *testing.T) {
	box := testBox(t)

	sealed, degraded := box.SealField("secret value")
	require.False(t, degraded)

	tampered := "A" + sealed[1:]
	opened, degraded := box.OpenField(tampered)
	assert.True(t, degraded)
	assert.Equal(t, tampered, opened, "degraded open returns its input unchanged")
}

func TestOpenField_GarbageDegrades(t *testing.T) {
	box := testBox(t)

	opened, degraded := box.OpenField("not-an-envelope")
	assert.True(t, degraded)
	assert.Equal(t, "not-an-envelope", opened)
}

func TestOpenField_WrongKeyDegrades(t *testing.T) {
	box := testBox(t)

	other, err := NewBox(bytes.Repeat([]byte{0x7}, KeySize))
	require.NoError(t, err)

	sealed, _ := box.SealField("secret")
	opened, degraded := other.OpenField(sealed)
	assert.True(t, degraded)
	assert.Equal(t, sealed, opened)
}

func TestSealOpenBytes_RoundTripAndSubkeySeparation(t *testing.T) {
	box := testBox(t)

	blob := []byte(`[{"role":"user","content":"hi"}]`)
	sealed, degraded := box.SealBytes(blob)
	require.False(t, degraded)

	opened, degraded := box.OpenBytes(sealed)
	require.False(t, degraded)
	assert.Equal(t, blob, opened)

	// A transcript envelope must not open under the field subkey.
	_, degraded = box.OpenField(sealed)
	assert.True(t, degraded)
}

func TestPassthrough(t *testing.T) {
	var sealer Sealer = Passthrough{}

	sealed, degraded := sealer.SealField("plain")
	assert.False(t, degraded)
	assert.Equal(t, "plain", sealed)

	opened, degraded := sealer.OpenField("plain")
	assert.False(t, degraded)
	assert.Equal(t, "plain", opened)
}
