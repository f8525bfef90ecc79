package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampRoundTrip(t *testing.T) {
	in := Timestamp{Seconds: 1700000000, Nanos: 42}
	out, err := UnmarshalTimestamp(in.Marshal())
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestAccountIDRoundTripEachForm(t *testing.T) {
	cases := []AccountID{
		{ShardNum: 0, RealmNum: 0, AccountNum: 1000},
		{ShardNum: 0, RealmNum: 0, Alias: []byte{1, 2, 3}},
		{ShardNum: 0, RealmNum: 0, EvmAddress: make([]byte, 20)},
	}
	for _, in := range cases {
		out, err := UnmarshalAccountID(in.Marshal())
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

func TestTransactionBodyEqualIgnoresNodeAndTxID(t *testing.T) {
	transfer := CryptoTransferTransactionBody{Transfers: []AccountAmount{
		{AccountID: AccountID{AccountNum: 1000}, Amount: -10},
		{AccountID: AccountID{AccountNum: 1001}, Amount: 10},
	}}
	dataBytes := transfer.Marshal()

	base := TransactionBody{
		TransactionID:            TransactionID{AccountID: AccountID{AccountNum: 1000}, TransactionValidStart: Timestamp{Seconds: 1700000000}},
		NodeAccountID:             AccountID{AccountNum: 3},
		TransactionFee:            100000,
		TransactionValidDuration:  Duration{Seconds: 120},
		Memo:                      "hi",
		DataFieldNumber:           FieldCryptoTransfer,
		DataBytes:                 dataBytes,
	}
	other := base
	other.NodeAccountID = AccountID{AccountNum: 4}
	other.TransactionID.TransactionValidStart.Nanos = 5

	require.True(t, base.Equal(other))

	other.Memo = "different"
	require.False(t, base.Equal(other))
}

func TestSignatureMapDuplicatePrefixDetection(t *testing.T) {
	m := SignatureMap{SigPair: []SignaturePair{
		{PubKeyPrefix: []byte("pub1"), Signature: []byte("sig1")},
	}}
	require.Equal(t, 0, m.IndexOfPrefix([]byte("pub1")))
	require.Equal(t, -1, m.IndexOfPrefix([]byte("pub2")))
}

func TestTransactionListRoundTrip(t *testing.T) {
	l := TransactionList{TransactionList: []Transaction{
		{SignedTransactionBytes: []byte("a")},
		{SignedTransactionBytes: []byte("b")},
	}}
	out, err := UnmarshalTransactionList(l.Marshal())
	require.NoError(t, err)
	require.Equal(t, l, out)
}

func TestUnknownTransactionDataRejected(t *testing.T) {
	body := TransactionBody{
		TransactionID: TransactionID{AccountID: AccountID{AccountNum: 1}},
		NodeAccountID:  AccountID{AccountNum: 3},
	}
	_, err := UnmarshalTransactionBody(body.Marshal())
	require.Error(t, err)
}
