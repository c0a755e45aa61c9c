/*
paillier.go — the homomorphic-ciphertext capability used by the encpool contract.

Ciphertexts are opaque handles: canonical lowercase hex strings wrapping Paillier
ciphertexts. The contract only ever combines handles (ciphertext multiplication
mod n², i.e. plaintext addition) and hands them to the decryption oracle; it
never inspects or branches on the underlying value. The additive identity is
Enc(0) = 1, so accumulators can be initialized before a key is even installed.
*/
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"
)

// PublicKey stores the Paillier public modulus for the pool.
// n² is derived and canonicalized at install time so hot paths never recompute it.
type PublicKey struct {
	N  string `json:"n"`
	G  string `json:"g,omitempty"`
	N2 string `json:"n2,omitempty"`
}

// scheme is the in-memory view of the installed public key.
type scheme struct {
	n  *big.Int
	n2 *big.Int
}

// zeroCipher returns the handle for Enc(0), the accumulator identity.
func zeroCipher() string { return "1" }

// cipherFromHex parses a ciphertext handle (hex with or without 0x, or decimal).
func cipherFromHex(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	if b, err := hex.DecodeString(s); err == nil {
		return new(big.Int).SetBytes(b), nil
	}
	if z, ok := new(big.Int).SetString(s, 10); ok {
		return z, nil
	}
	return nil, fmt.Errorf("bad hex ciphertext: %q", s)
}

// cipherHex encodes a ciphertext as canonical lowercase hex, no 0x, no leading zeros.
func cipherHex(x *big.Int) string {
	if x == nil || x.Sign() == 0 {
		return "0"
	}
	s := strings.TrimLeft(strings.ToLower(x.Text(16)), "0")
	if s == "" {
		return "0"
	}
	return s
}

// canonCipher normalizes a handle string; non-parseable inputs pass through unchanged.
func canonCipher(s string) string {
	x, err := cipherFromHex(s)
	if err != nil {
		return s
	}
	return cipherHex(x)
}

// add folds one ciphertext into another: Paillier multiplication mod n².
// Commutative and associative, so submission order never changes the aggregate.
func (s *scheme) add(acc, c *big.Int) *big.Int {
	z := new(big.Int).Mul(acc, c)
	return z.Mod(z, s.n2)
}

// checkCipher rejects handles that are not valid group elements: the value must
// satisfy 1 <= c < n² and be invertible mod n². Enc(0)=1 is accepted so a zero
// premium or payout can be submitted.
func (s *scheme) checkCipher(c *big.Int) error {
	one := big.NewInt(1)
	if c.Cmp(one) < 0 || c.Cmp(s.n2) >= 0 {
		return fmt.Errorf("ciphertext out of range")
	}
	if g := new(big.Int).GCD(nil, nil, c, s.n2); g.Cmp(one) != 0 {
		return fmt.Errorf("ciphertext not invertible mod n²")
	}
	return nil
}

// loadScheme reads the installed public key from world state.
func loadScheme(ctx contractapi.TransactionContextInterface) (*scheme, error) {
	raw, err := ctx.GetStub().GetState(keyPublicKey)
	if err != nil {
		return nil, fmt.Errorf("get pk: %w", err)
	}
	if raw == nil {
		return nil, failf(kindInvalidArgument, "public key not set")
	}
	var pk PublicKey
	if err := json.Unmarshal(raw, &pk); err != nil {
		return nil, fmt.Errorf("pk json: %w", err)
	}
	n, err := cipherFromHex(pk.N)
	if err != nil {
		return nil, fmt.Errorf("pk.n parse: %w", err)
	}
	var n2 *big.Int
	if pk.N2 != "" {
		if n2, err = cipherFromHex(pk.N2); err != nil {
			return nil, fmt.Errorf("pk.n2 parse: %w", err)
		}
	} else {
		n2 = new(big.Int).Mul(n, n)
	}
	return &scheme{n: n, n2: n2}, nil
}

/* Risk derivation */

// riskFunc derives the risk-score ciphertext from the two updated accumulators.
// The concrete formula is a policy decision, so it is selected by name through
// the params document rather than hardcoded into the submission path.
type riskFunc func(s *scheme, premiumAcc, payoutAcc *big.Int) *big.Int

// mirrorPayoutRisk is the baseline strategy: the risk accumulator tracks the
// payout accumulator exactly.
func mirrorPayoutRisk(_ *scheme, _, payoutAcc *big.Int) *big.Int {
	return new(big.Int).Set(payoutAcc)
}

var riskStrategies = map[string]riskFunc{
	"mirror-payout": mirrorPayoutRisk,
}

// riskStrategy resolves the configured strategy name.
func riskStrategy(name string) (riskFunc, error) {
	if f, ok := riskStrategies[name]; ok {
		return f, nil
	}
	return nil, failf(kindInvalidArgument, "unknown risk strategy %q", name)
}
