package hedera

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func TestValidateChecksumsDisabledByDefault(t *testing.T) {
	client := NewClient(nil)
	client.SetLedgerID([]byte{0x01})

	bad := AccountID{Shard: 0, Realm: 0, Num: 42, Checksum: "wrong"}
	require.NoError(t, client.ValidateChecksums(bad))
}

func TestValidateChecksumsCatchesMismatch(t *testing.T) {
	client := NewClient(nil)
	client.SetLedgerID([]byte{0x01})
	client.SetAutoValidateChecksums(true)

	id := testAccountID(42)
	id.Checksum = Checksum(client.LedgerID(), id.Shard, id.Realm, id.Num)
	require.NoError(t, client.ValidateChecksums(id))

	id.Checksum = "zzzzz"
	require.Error(t, client.ValidateChecksums(id))
}

func TestValidateChecksumsInvalidatedBySetLedgerID(t *testing.T) {
	client := NewClient(nil)
	client.SetAutoValidateChecksums(true)
	client.SetLedgerID([]byte{0x01})

	id := testAccountID(7)
	id.Checksum = Checksum(client.LedgerID(), id.Shard, id.Realm, id.Num)
	require.NoError(t, client.ValidateChecksums(id))

	client.SetLedgerID([]byte{0x02})
	require.Error(t, client.ValidateChecksums(id))
}

func TestClientMaxNodesPerTransactionCapsDefaultFanOut(t *testing.T) {
	client := NewClient(nil)
	dial := func(string) (grpc.ClientConnInterface, error) { return newScriptedChannel(), nil }
	for i := 0; i < 5; i++ {
		require.NoError(t, client.AddNetworkNode(testAccountID(uint64(3+i)), []string{"stub:50211"}, dial))
	}

	client.SetMaxNodesPerTransaction(2)
	require.Len(t, client.defaultNodeAccountIDs(), 2)

	client.SetMaxNodesPerTransaction(0)
	require.Len(t, client.defaultNodeAccountIDs(), 5)
}

func TestClientSetLoggerAndMaxAttempts(t *testing.T) {
	client := NewClient(nil)
	client.SetMaxAttempts(3)
	require.Equal(t, 3, client.MaxAttempts())

	client.SetLogger(nil)
	require.NotNil(t, client.Logger())
}
