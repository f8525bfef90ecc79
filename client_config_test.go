package hedera

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientFromConfigCustomNetwork(t *testing.T) {
	seed := make([]byte, 32)
	_, err := rand.Read(seed)
	require.NoError(t, err)

	doc := `
auto_validate_checksums = true

[network]
[network.nodes]
"0.0.3" = ["localhost:50211"]

[operator]
account_id = "0.0.1001"
private_key = "` + hex.EncodeToString(seed) + `"
`
	client, err := ClientFromConfig(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, client.AutoValidateChecksums())
	id, ok := client.GetOperatorAccountID()
	require.True(t, ok)
	require.Equal(t, testAccountID(1001), id)
}

func TestClientFromConfigUnknownPreset(t *testing.T) {
	doc := `
[network]
name = "not-a-real-network"
`
	_, err := ClientFromConfig(strings.NewReader(doc))
	require.Error(t, err)
}

func TestClientFromConfigDefaultsToTestnet(t *testing.T) {
	client, err := ClientFromConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, client.LedgerID())
	require.False(t, client.AutoValidateChecksums())
	_, ok := client.GetOperatorAccountID()
	require.False(t, ok)
}
