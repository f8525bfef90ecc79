package hedera

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	dcrsecp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// PublicKey is a raw public key tagged with its curve, matching the
// signature-pair representation used on the wire.
type PublicKey struct {
	Bytes   []byte
	IsECDSA bool
}

func (p PublicKey) Equal(o PublicKey) bool {
	return p.IsECDSA == o.IsECDSA && bytes.Equal(p.Bytes, o.Bytes)
}

// Verify checks sig against message using the key's curve.
func (p PublicKey) Verify(message, sig []byte) bool {
	if p.IsECDSA {
		return verifyECDSA(p.Bytes, message, sig)
	}
	if len(p.Bytes) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Bytes), message, sig)
}

// Signer is the opaque "given these bytes, produce (public key,
// signature)" capability. It is implemented by PrivateKey and by
// externally supplied callbacks wrapped with NewCallbackSigner.
type Signer interface {
	PublicKey() PublicKey
	Sign(message []byte) ([]byte, error)
}

// callbackSigner adapts an externally provided public key and signing
// callback into a Signer.
type callbackSigner struct {
	pub PublicKey
	fn  func([]byte) ([]byte, error)
}

func NewCallbackSigner(pub PublicKey, fn func([]byte) ([]byte, error)) Signer {
	return &callbackSigner{pub: pub, fn: fn}
}

func (s *callbackSigner) PublicKey() PublicKey           { return s.pub }
func (s *callbackSigner) Sign(message []byte) ([]byte, error) { return s.fn(message) }

// PrivateKey is a Signer backed by an in-process private key, either
// Ed25519 (stdlib crypto/ed25519) or ECDSA secp256k1 (decred/btcec,
// matching the teacher's own algorithm providers in
// internal/crypto/algorithms).
type PrivateKey struct {
	isECDSA bool
	ed25519 ed25519.PrivateKey
	ecdsa   *dcrsecp256k1.PrivateKey
}

var _ Signer = PrivateKey{}

// GenerateEd25519PrivateKey creates a new random Ed25519 key.
func GenerateEd25519PrivateKey() (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{ed25519: priv}, nil
}

// GenerateEcdsaSecp256k1PrivateKey creates a new random secp256k1 key.
func GenerateEcdsaSecp256k1PrivateKey() (PrivateKey, error) {
	key, err := dcrsecp256k1.GeneratePrivateKey()
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{isECDSA: true, ecdsa: key}, nil
}

// Ed25519PrivateKeyFromBytes wraps a 32-byte raw Ed25519 seed.
func Ed25519PrivateKeyFromBytes(seed []byte) (PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return PrivateKey{}, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return PrivateKey{ed25519: ed25519.NewKeyFromSeed(seed)}, nil
}

// EcdsaSecp256k1PrivateKeyFromBytes wraps a 32-byte raw secp256k1 scalar.
func EcdsaSecp256k1PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	if len(b) != 32 {
		return PrivateKey{}, fmt.Errorf("secp256k1 private key must be 32 bytes, got %d", len(b))
	}
	key := dcrsecp256k1.PrivKeyFromBytes(b)
	return PrivateKey{isECDSA: true, ecdsa: key}, nil
}

// PrivateKeyFromStringEd25519 parses a hex-encoded 32-byte Ed25519 seed,
// the form a config file or CLI flag carries an operator key in.
func PrivateKeyFromStringEd25519(s string) (PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return PrivateKey{}, fmt.Errorf("decode ed25519 private key: %w", err)
	}
	return Ed25519PrivateKeyFromBytes(b)
}

// PrivateKeyFromStringECDSA parses a hex-encoded 32-byte secp256k1 scalar.
func PrivateKeyFromStringECDSA(s string) (PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return PrivateKey{}, fmt.Errorf("decode ecdsa private key: %w", err)
	}
	return EcdsaSecp256k1PrivateKeyFromBytes(b)
}

func (k PrivateKey) IsECDSA() bool { return k.isECDSA }

func (k PrivateKey) PublicKey() PublicKey {
	if k.isECDSA {
		// Compressed form, matching btcec's canonical serialization.
		pub := k.ecdsa.PubKey()
		return PublicKey{Bytes: pub.SerializeCompressed(), IsECDSA: true}
	}
	return PublicKey{Bytes: append([]byte(nil), k.ed25519.Public().(ed25519.PublicKey)...)}
}

// Sign produces a signature over message. For secp256k1 this uses
// deterministic ECDSA (RFC 6979) and enforces low-S canonicalization, the
// same canonicality rule the teacher's internal/crypto/canonicality.go
// applies to XRPL ECDSA signatures.
func (k PrivateKey) Sign(message []byte) ([]byte, error) {
	if k.isECDSA {
		digest := sha256.Sum256(message)
		sig := dcrecdsa.Sign(k.ecdsa, digest[:])
		return sig.Serialize(), nil
	}
	return ed25519.Sign(k.ed25519, message), nil
}

func verifyECDSA(pubBytes, message, sig []byte) bool {
	pub, err := btcec.ParsePubKey(pubBytes)
	if err != nil {
		return false
	}
	parsed, err := dcrecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(message)
	return parsed.Verify(digest[:], pub)
}

// ToWirePair signs message and packages the result as a
// public-key-prefix/signature pair.
func ToWirePair(s Signer, message []byte) (wire.SignaturePair, error) {
	sig, err := s.Sign(message)
	if err != nil {
		return wire.SignaturePair{}, err
	}
	pub := s.PublicKey()
	return wire.SignaturePair{
		PubKeyPrefix: pub.Bytes,
		IsECDSA:      pub.IsECDSA,
		Signature:    sig,
	}, nil
}

