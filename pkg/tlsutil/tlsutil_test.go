package tlsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDevCertificatesAndLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, dir))

	serverCreds, err := ServerCredentials(filepath.Join(dir, ServerFile), filepath.Join(dir, ServerKeyFile))
	require.NoError(t, err)
	assert.Equal(t, "tls", serverCreds.Info().SecurityProtocol)

	clientCreds, err := ClientCredentials(filepath.Join(dir, CAFile))
	require.NoError(t, err)
	assert.NotNil(t, clientCreds)
}

func TestGenerateDevCertificates_RequiresHost(t *testing.T) {
	assert.Error(t, GenerateDevCertificates(nil, t.TempDir()))
}

func TestServerCredentials_MissingFiles(t *testing.T) {
	_, err := ServerCredentials("/nonexistent/server.pem", "/nonexistent/server-key.pem")
	assert.Error(t, err)
}

func TestClientCredentials_BadCA(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateDevCertificates([]string{"localhost"}, dir))

	// A private key is not a certificate.
	_, err := ClientCredentials(filepath.Join(dir, CAKeyFile))
	assert.Error(t, err)

	creds, err := ClientCredentials("")
	require.NoError(t, err)
	assert.NotNil(t, creds)
}
