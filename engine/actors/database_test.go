package actors

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenOpen(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := Open(dir, "posts")
	require.NoError(t, err)
	assert.False(t, ok, "missing file should not be reported as found")

	require.NoError(t, Write(dir, "posts", []byte(`{"a":1}`)))
	require.NoError(t, Write(dir, "posts", []byte(`{"a":2}`)))

	f, ok, err := Open(dir, "posts")
	require.NoError(t, err)
	require.True(t, ok)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(b))
}

func TestAppend(t *testing.T) {
	dir := t.TempDir() + "/audit"

	require.NoError(t, Append(dir, "log.jsonl", []byte("one\n")))
	require.NoError(t, Append(dir, "log.jsonl", []byte("two\n")))

	f, err := os.Open(dir + "/log.jsonl")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(b))
}

func TestPubKey(t *testing.T) {
	// private key 1 maps to the secp256k1 generator point
	pk, err := PubKey("0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", pk)

	_, err = PubKey("zz")
	assert.Error(t, err)
}
