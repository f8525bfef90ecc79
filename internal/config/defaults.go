package config

import "github.com/spf13/viper"

// setDefaults mirrors the teacher's own setDefaults: every value a
// loaded document is allowed to omit gets one here first, before the
// file and environment layers are applied on top.
func setDefaults(v *viper.Viper) {
	v.SetDefault("network.name", "testnet")
	v.SetDefault("operator.key_type", "ed25519")
	v.SetDefault("auto_validate_checksums", false)
	v.SetDefault("transport_compression", false)
	v.SetDefault("default_max_transaction_fee_tinybar", 0)
	v.SetDefault("default_max_query_payment_tinybar", 0)
}
