// Package config loads the small client-facing configuration document
// this module accepts: a network selection plus an optional operator.
// It is deliberately not a mirror of a full node's configuration file —
// a client has no ports, no peer protocol, no consensus parameters to
// configure, just enough to construct a Client.
package config

import "path/filepath"

// NetworkConfig selects either a built-in preset by name ("mainnet",
// "testnet", "previewnet") or a custom node map. Nodes, if non-empty,
// take precedence over Name.
type NetworkConfig struct {
	Name  string              `toml:"name" mapstructure:"name"`
	Nodes map[string][]string `toml:"nodes" mapstructure:"nodes"` // node account id string -> endpoints
}

// OperatorConfig names the default payer and its private key. KeyType is
// "ed25519" (default) or "ecdsa".
type OperatorConfig struct {
	AccountID  string `toml:"account_id" mapstructure:"account_id"`
	PrivateKey string `toml:"private_key" mapstructure:"private_key"`
	KeyType    string `toml:"key_type" mapstructure:"key_type"`
}

// Config is the root document this package loads:
//
//	[network]
//	name = "testnet"
//
//	[operator]
//	account_id = "0.0.1001"
//	private_key = "..."
type Config struct {
	Network  NetworkConfig  `toml:"network" mapstructure:"network"`
	Operator OperatorConfig `toml:"operator" mapstructure:"operator"`

	AutoValidateChecksums    bool   `toml:"auto_validate_checksums" mapstructure:"auto_validate_checksums"`
	TransportCompression     bool   `toml:"transport_compression" mapstructure:"transport_compression"`
	DefaultMaxTransactionFee uint64 `toml:"default_max_transaction_fee_tinybar" mapstructure:"default_max_transaction_fee_tinybar"`
	DefaultMaxQueryPayment   uint64 `toml:"default_max_query_payment_tinybar" mapstructure:"default_max_query_payment_tinybar"`

	configPath string `toml:"-" mapstructure:"-"`
}

// GetConfigPath returns the path this config was loaded from, empty if
// it came from an in-memory reader.
func (c *Config) GetConfigPath() string { return c.configPath }

// HasOperator reports whether an operator account/key was configured.
func (c *Config) HasOperator() bool {
	return c.Operator.AccountID != "" && c.Operator.PrivateKey != ""
}

// HasCustomNetwork reports whether the network section names explicit
// nodes rather than a preset.
func (c *Config) HasCustomNetwork() bool { return len(c.Network.Nodes) > 0 }

// DefaultConfigPath is the filename LoadFromDir looks for.
const DefaultConfigPath = "hedera.toml"

// ConfigPathFromDir joins dir with the default config filename.
func ConfigPathFromDir(dir string) string {
	return filepath.Join(dir, DefaultConfigPath)
}
