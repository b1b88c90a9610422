package auth

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// VerifyWalletSignature reports whether signature was produced by address
// signing nonce via personal_sign (EIP-191).
//
// The message is hashed exactly the way wallets do it:
// keccak256("\x19Ethereum Signed Message:\n" + len(nonce) + nonce),
// then the signer address is recovered from the signature and compared to
// the claimed one case-insensitively. Every decode or recovery failure is a
// plain mismatch, the function never returns an error and never mutates
// anything, so callers may retry it freely.
func VerifyWalletSignature(address, nonce, signature string) bool {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}

	// Wallets emit V as 27/28, go-ethereum expects 0/1.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return false
	}

	hash := personalSignHash([]byte(nonce))

	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return false
	}

	recovered := crypto.PubkeyToAddress(*pubKey)
	return strings.EqualFold(recovered.Hex(), address)
}

// personalSignHash applies the EIP-191 personal message prefix and hashes.
func personalSignHash(msg []byte) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	return crypto.Keccak256([]byte(prefixed))
}
