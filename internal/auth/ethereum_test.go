package auth

import (
	"crypto/ecdsa"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// signNonce signs nonce the way a wallet's personal_sign does, returning the
// 0x-prefixed signature with V as 27/28.
func signNonce(t *testing.T, key *ecdsa.PrivateKey, nonce string) string {
	t.Helper()
	sig, err := crypto.Sign(personalSignHash([]byte(nonce)), key)
	if err != nil {
		t.Fatal(err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}

func TestVerifyWalletSignature_Valid(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	nonce := GenerateNonce()

	sig := signNonce(t, key, nonce)

	if !VerifyWalletSignature(address, nonce, sig) {
		t.Fatal("expected valid signature to verify")
	}

	// Address comparison must be case-insensitive.
	if !VerifyWalletSignature(strings.ToLower(address), nonce, sig) {
		t.Fatal("expected lowercased address to verify")
	}
}

func TestVerifyWalletSignature_WrongKey(t *testing.T) {
	key, _ := crypto.GenerateKey()
	otherKey, _ := crypto.GenerateKey()
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	nonce := GenerateNonce()

	sig := signNonce(t, otherKey, nonce)

	if VerifyWalletSignature(address, nonce, sig) {
		t.Fatal("signature from a different key must not verify")
	}
}

func TestVerifyWalletSignature_WrongNonce(t *testing.T) {
	key, _ := crypto.GenerateKey()
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig := signNonce(t, key, "nonce-a")

	if VerifyWalletSignature(address, "nonce-b", sig) {
		t.Fatal("signature over a different nonce must not verify")
	}
}

func TestVerifyWalletSignature_Malformed(t *testing.T) {
	key, _ := crypto.GenerateKey()
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	cases := []string{
		"",
		"not-hex",
		"0xdeadbeef",                     // too short
		"0x" + string(make([]byte, 130)), // invalid hex runes
	}
	for _, sig := range cases {
		if VerifyWalletSignature(address, "nonce", sig) {
			t.Errorf("malformed signature %q verified", sig)
		}
	}
}

func TestVerifyWalletSignature_RawRecoveryID(t *testing.T) {
	// Some clients send V as 0/1 instead of 27/28; both must verify.
	key, _ := crypto.GenerateKey()
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	nonce := "raw-v-nonce"

	sig, err := crypto.Sign(personalSignHash([]byte(nonce)), key)
	if err != nil {
		t.Fatal(err)
	}

	if !VerifyWalletSignature(address, nonce, hexutil.Encode(sig)) {
		t.Fatal("signature with raw recovery id must verify")
	}
}

func TestGenerateNonce_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := GenerateNonce()
		if n == "" {
			t.Fatal("empty nonce")
		}
		if seen[n] {
			t.Fatalf("duplicate nonce %q", n)
		}
		seen[n] = true
	}
}
