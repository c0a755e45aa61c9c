/*
decryption.go — the decryption commitment protocol.

A decryption request snapshots the closed batch's three accumulators into a
commitment hash before the oracle is asked to decrypt them. The callback is a
public entry point: anyone may invoke it, any number of times, at any later
time. Its safety never derives from caller identity, only from the stored
commitment, the settled flag, and the oracle's proof check, in that order.
*/
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"
)

// contractNamespace is folded into every commitment hash so a decryption
// result produced for one deployment can never settle a request on another.
const contractNamespace = "encpool"

// DecryptionRequest binds an oracle-assigned request id to the batch snapshot
// it was issued against. Settled flips to true at most once and is terminal.
type DecryptionRequest struct {
	RequestID      string `json:"request_id"`
	BatchID        uint64 `json:"batch_id"`
	CommitmentHash string `json:"commitment_hash"`
	Settled        bool   `json:"settled"`
}

// Cleartexts is the decoded oracle result for one batch.
type Cleartexts struct {
	TotalPremiums string `json:"total_premiums"`
	TotalPayouts  string `json:"total_payouts"`
	RiskScore     string `json:"risk_score"`
}

/* Hash helpers */

func sha256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func sha256HexStr(s string) string { return sha256Hex([]byte(s)) }

// commitmentHash digests the batch's current ciphertext set together with the
// protocol instance identity (channel + contract namespace). Handles are
// canonicalized first so the digest is reproducible across clients.
func commitmentHash(channelID string, b *Batch) string {
	parts := []string{
		canonCipher(b.PremiumAcc),
		canonCipher(b.PayoutAcc),
		canonCipher(b.RiskAcc),
		channelID,
		contractNamespace,
	}
	return sha256Hex([]byte(strings.Join(parts, "|")))
}

/* Oracle collaborator (cc2cc) */

// callOracle invokes a function on the decryption-oracle chaincode on the same
// channel. Non-200 or empty payload is treated as an error so callers fail
// closed.
func callOracle(ctx contractapi.TransactionContextInterface, oracleCC, fcn string, args ...string) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("cc2cc %s: nil ctx", fcn)
	}
	s := ctx.GetStub()
	if s == nil {
		return nil, fmt.Errorf("cc2cc %s: nil stub", fcn)
	}
	// Guard against typed-nil stub (interface is non-nil but underlying pointer is nil).
	if rv := reflect.ValueOf(s); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, fmt.Errorf("cc2cc %s: nil underlying stub", fcn)
	}

	argv := make([][]byte, 0, 1+len(args))
	argv = append(argv, []byte(fcn))
	for _, a := range args {
		argv = append(argv, []byte(a))
	}
	resp := s.InvokeChaincode(oracleCC, argv, "") // "" => same channel
	if resp.Status != 200 || len(resp.Payload) == 0 {
		return nil, fmt.Errorf("cc2cc %s status=%d message=%q", fcn, resp.Status, resp.Message)
	}
	return resp.Payload, nil
}

// unquote strips the JSON string quoting contractapi applies to cc2cc payloads.
func unquote(b []byte) string {
	return strings.Trim(strings.TrimSpace(string(b)), `"`)
}

/* Request storage */

func requestKey(id string) string { return keyRequestPrefix + id }

func loadRequest(ctx contractapi.TransactionContextInterface, id string) (*DecryptionRequest, error) {
	raw, err := ctx.GetStub().GetState(requestKey(id))
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var r DecryptionRequest
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("request json: %w", err)
	}
	return &r, nil
}

func putRequest(ctx contractapi.TransactionContextInterface, r *DecryptionRequest) error {
	return ctx.GetStub().PutState(requestKey(r.RequestID), mustJSON(r))
}

/* Protocol */

// RequestBatchDecryption asks the oracle to decrypt a closed batch's three
// accumulators and records the commitment the eventual callback must match.
//
// The ciphertext set is forwarded as a JSON array [premium, payout, risk]; the
// oracle answers with its assigned request id. The request record owns that id
// exclusively — a colliding id from the oracle is rejected rather than
// overwritten, since overwriting would orphan an unsettled commitment.
func (c *EncPoolContract) RequestBatchDecryption(ctx contractapi.TransactionContextInterface, batchID uint64) (string, error) {
	id, err := requireProvider(ctx)
	if err != nil {
		return "", err
	}
	if err := requireRunning(ctx); err != nil {
		return "", err
	}
	p, err := getParams(ctx)
	if err != nil {
		return "", err
	}
	now, err := checkCooldown(ctx, cdKindDecrypt, id, p.CooldownSeconds)
	if err != nil {
		return "", err
	}
	b, err := loadBatch(ctx, batchID)
	if err != nil {
		return "", err
	}
	if b.IsOpen {
		return "", failf(kindInvalidBatch, "batch %d is still open", batchID)
	}

	commit := commitmentHash(ctx.GetStub().GetChannelID(), b)
	cts := mustJSON([]string{
		canonCipher(b.PremiumAcc),
		canonCipher(b.PayoutAcc),
		canonCipher(b.RiskAcc),
	})
	payload, err := callOracle(ctx, p.OracleCCName, "ScheduleDecryption",
		string(cts), contractNamespace+":OnDecryptionCallback")
	if err != nil {
		return "", err
	}
	reqID := unquote(payload)
	if reqID == "" {
		return "", fmt.Errorf("oracle returned empty request id")
	}
	if existing, err := loadRequest(ctx, reqID); err != nil {
		return "", err
	} else if existing != nil {
		return "", failf(kindInvalidArgument, "oracle reused request id %s", reqID)
	}

	if err := stampCooldown(ctx, cdKindDecrypt, id, now); err != nil {
		return "", err
	}
	if err := putRequest(ctx, &DecryptionRequest{
		RequestID:      reqID,
		BatchID:        batchID,
		CommitmentHash: commit,
	}); err != nil {
		return "", err
	}
	if p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventDecryptionRequested, mustJSON(map[string]any{
			"request_id":      reqID,
			"batch":           batchID,
			"commitment_hash": commit,
		}))
	}
	return reqID, nil
}

// OnDecryptionCallback settles a decryption request with oracle cleartexts.
//
// Permissionless: the relayer convention is open, so authenticity comes from
// the proof, never from the caller. Hard gates, in order: request exists; not
// already settled; commitment recomputed from the batch's current accumulators
// still matches; proof verifies for this exact request id. Only the first
// valid callback is honored; a settled request can never be reopened.
func (c *EncPoolContract) OnDecryptionCallback(ctx contractapi.TransactionContextInterface, requestID, cleartextsJSON, proof string) error {
	r, err := loadRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if r == nil {
		return failf(kindUnknownRequest, "request %s not found", requestID)
	}
	if r.Settled {
		return failf(kindAlreadySettled, "request %s already settled", requestID)
	}
	b, err := loadBatch(ctx, r.BatchID)
	if err != nil {
		return err
	}
	if got := commitmentHash(ctx.GetStub().GetChannelID(), b); got != r.CommitmentHash {
		return failf(kindStateMismatch, "batch %d ciphertexts changed since request %s", r.BatchID, requestID)
	}

	p, err := getParams(ctx)
	if err != nil {
		return err
	}
	payload, err := callOracle(ctx, p.OracleCCName, "VerifyProof", requestID, cleartextsJSON, proof)
	if err != nil {
		return failf(kindInvalidProof, "proof check unavailable: %v", err)
	}
	if unquote(payload) != "true" {
		return failf(kindInvalidProof, "proof does not authenticate cleartexts for request %s", requestID)
	}

	var vals []string
	if err := json.Unmarshal([]byte(cleartextsJSON), &vals); err != nil || len(vals) != 3 {
		return failf(kindInvalidArgument, "cleartexts must be a JSON array of 3 values")
	}
	ct := Cleartexts{TotalPremiums: vals[0], TotalPayouts: vals[1], RiskScore: vals[2]}

	r.Settled = true
	if err := putRequest(ctx, r); err != nil {
		return err
	}
	if p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventDecryptionCompleted, mustJSON(map[string]any{
			"request_id":     requestID,
			"batch":          r.BatchID,
			"total_premiums": ct.TotalPremiums,
			"total_payouts":  ct.TotalPayouts,
			"risk_score":     ct.RiskScore,
		}))
	}
	return nil
}

// GetRequest returns a decryption request's commitment and settlement status.
func (c *EncPoolContract) GetRequest(ctx contractapi.TransactionContextInterface, requestID string) (*DecryptionRequest, error) {
	r, err := loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, failf(kindUnknownRequest, "request %s not found", requestID)
	}
	return r, nil
}
