package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, "testnet", cfg.Network.Name)
	require.Equal(t, "ed25519", cfg.Operator.KeyType)
	require.False(t, cfg.HasOperator())
	require.False(t, cfg.HasCustomNetwork())
}

func TestLoadOperatorAndNetwork(t *testing.T) {
	doc := `
auto_validate_checksums = true

[network]
name = "mainnet"

[operator]
account_id = "0.0.1001"
private_key = "deadbeef"
key_type = "ed25519"
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "mainnet", cfg.Network.Name)
	require.True(t, cfg.HasOperator())
	require.Equal(t, "0.0.1001", cfg.Operator.AccountID)
	require.True(t, cfg.AutoValidateChecksums)
}

func TestLoadCustomNetwork(t *testing.T) {
	doc := `
[network]
[network.nodes]
"0.0.3" = ["localhost:50211"]
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.True(t, cfg.HasCustomNetwork())
	require.Equal(t, []string{"localhost:50211"}, cfg.Network.Nodes["0.0.3"])
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/hedera.toml")
	require.Error(t, err)
}
