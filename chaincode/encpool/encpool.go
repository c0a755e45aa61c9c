// -----------------------------------------------------------------------------
// Encpool_cc contract (Go, Fabric v3.1.1)
// Purpose: Batches confidential premium/payout submissions from authorized
// Providers into per-batch homomorphic accumulators, and settles aggregates
// Through a commitment-bound, replay-proof decryption-oracle callback.
// Role in system: Write-path folds provider ciphertexts into an open batch;
// Read-path exposes batch/request state; settlement path binds oracle
// Cleartexts to the ciphertext snapshot they were requested against.
// Key dependencies: Hyperledger Fabric contractapi/cid; a decryption-oracle
// Registry chaincode ("decoracle") reached via cc2cc for scheduling and
// Proof verification.
// -----------------------------------------------------------------------------

/*
encpool.go — world-state model, access-control ledger, and batch lifecycle.

State layout (public world state, single namespace):
  OWNER              → owner identity string
  PROV::<identity>   → "1" for each authorized provider
  PAUSED             → "true" when the pool is paused
  PARAMS             → Params JSON (cooldown, events toggle, oracle cc name, risk strategy)
  PK                 → PublicKey JSON (Paillier modulus)
  BATCHSEQ           → decimal last allocated batch id
  BATCH::<id>        → Batch JSON
  CD::<kind>::<id>   → decimal unix seconds of the actor's last action of that kind
  REQ::<requestId>   → DecryptionRequest JSON (see decryption.go)

The chaincode exposes no HTTP endpoints. A gateway/indexer is expected to
invoke these functions and subscribe to emitted events; the event log is the
sole durable audit trail and is sufficient to reconstruct state.
*/
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"
)

/* Keys & constants (single namespace for this chaincode) */

const (
	keyOwner          = "OWNER"    // OWNER → identity string
	keyPaused         = "PAUSED"   // PAUSED → "true" when paused
	keyParams         = "PARAMS"   // Global Params JSON
	keyPublicKey      = "PK"       // PK → PublicKey JSON (Paillier)
	keyBatchSeq       = "BATCHSEQ" // BATCHSEQ → last allocated batch id
	keyBatchPrefix    = "BATCH::"  // BATCH::<id> → Batch JSON
	keyProviderPrefix = "PROV::"   // PROV::<identity> → "1"
	keyCooldownPrefix = "CD::"     // CD::<kind>::<identity> → unix seconds
	keyRequestPrefix  = "REQ::"    // REQ::<requestId> → DecryptionRequest JSON
)

// Cooldown kinds: submissions and decryption requests are rate-limited
// independently per actor.
const (
	cdKindSubmit  = "submit"
	cdKindDecrypt = "decrypt"
)

const (
	eventOwnershipTransferred = "OwnershipTransferred"
	eventProviderAdded        = "ProviderAdded"
	eventProviderRemoved      = "ProviderRemoved"
	eventPauseSet             = "PauseSet"
	eventCooldownSet          = "CooldownSet"
	eventPublicKeySet         = "PublicKeySet"
	eventBatchOpened          = "BatchOpened"
	eventBatchClosed          = "BatchClosed"
	eventDataSubmitted        = "DataSubmitted"
	eventDecryptionRequested  = "DecryptionRequested"
	eventDecryptionCompleted  = "DecryptionCompleted"
)

/* Failure taxonomy */

// Error kinds are stable prefixes in the error text so callers and tests can
// classify failures without a shared error type across the chaincode boundary.
const (
	kindUnauthorized    = "UNAUTHORIZED"
	kindSystemPaused    = "SYSTEM_PAUSED"
	kindRateLimited     = "RATE_LIMITED"
	kindInvalidBatch    = "INVALID_BATCH"
	kindUnknownRequest  = "UNKNOWN_REQUEST"
	kindAlreadySettled  = "ALREADY_SETTLED"
	kindStateMismatch   = "STATE_MISMATCH"
	kindInvalidProof    = "INVALID_PROOF"
	kindInvalidArgument = "INVALID_ARGUMENT"
)

// failf builds a classified failure: "<KIND>: <detail>".
func failf(kind, format string, args ...any) error {
	return fmt.Errorf(kind+": "+format, args...)
}

/* Types & small data models */

// EncPoolContract implements the confidential premium-pool contract.
//
// Responsibilities:
// - Maintain the owner/provider roster, pause flag, and per-actor cooldowns.
// - Run the one-way Open → Closed batch lifecycle.
// - Fold provider ciphertexts into per-batch homomorphic accumulators.
// - Drive the decryption commitment protocol (see decryption.go).
type EncPoolContract struct{ contractapi.Contract }

// Batch is one accumulation window. Accumulators are opaque ciphertext handles
// (canonical hex). A batch is mutated only while open; closing is terminal.
type Batch struct {
	ID         uint64 `json:"id"`
	IsOpen     bool   `json:"is_open"`
	PremiumAcc string `json:"premium_acc"`
	PayoutAcc  string `json:"payout_acc"`
	RiskAcc    string `json:"risk_acc"`
}

// Params contains the runtime knobs stored on-chain with coded defaults.
type Params struct {
	CooldownSeconds int64  `json:"cooldown_seconds"`
	EmitEvents      bool   `json:"emit_events"`
	OracleCCName    string `json:"oracle_cc_name"`
	RiskStrategy    string `json:"risk_strategy"`
}

/* Small helpers */

// mustJSON marshals v and ignores errors (used for events and small writes).
func mustJSON(v any) []byte { b, _ := json.Marshal(v); return b }

// callerID resolves the invoking identity from the transaction context.
func callerID(ctx contractapi.TransactionContextInterface) (string, error) {
	ci := ctx.GetClientIdentity()
	if ci == nil {
		return "", failf(kindUnauthorized, "caller identity unavailable")
	}
	id, err := ci.GetID()
	if err != nil || strings.TrimSpace(id) == "" {
		return "", failf(kindUnauthorized, "caller identity unavailable")
	}
	return id, nil
}

// txUnix returns the transaction timestamp in unix seconds. All cooldown math
// uses the consensus timestamp, never wall-clock time.
func txUnix(ctx contractapi.TransactionContextInterface) (int64, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("tx timestamp: %w", err)
	}
	return ts.GetSeconds(), nil
}

// getParams reads the runtime parameters, overlaying stored values on defaults.
func getParams(ctx contractapi.TransactionContextInterface) (*Params, error) {
	p := &Params{
		CooldownSeconds: 60,
		EmitEvents:      true,
		OracleCCName:    "decoracle",
		RiskStrategy:    "mirror-payout",
	}
	if b, err := ctx.GetStub().GetState(keyParams); err == nil && b != nil {
		var on Params
		if json.Unmarshal(b, &on) == nil {
			return &on, nil
		}
	}
	return p, nil
}

func putParams(ctx contractapi.TransactionContextInterface, p *Params) error {
	return ctx.GetStub().PutState(keyParams, mustJSON(p))
}

// getOwner returns the stored owner identity, or "" before Initialize.
func getOwner(ctx contractapi.TransactionContextInterface) (string, error) {
	raw, err := ctx.GetStub().GetState(keyOwner)
	if err != nil {
		return "", fmt.Errorf("get owner: %w", err)
	}
	return string(raw), nil
}

// requireOwner gates owner-only operations.
func requireOwner(ctx contractapi.TransactionContextInterface) (string, error) {
	id, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	owner, err := getOwner(ctx)
	if err != nil {
		return "", err
	}
	if owner == "" || id != owner {
		return "", failf(kindUnauthorized, "caller is not the owner")
	}
	return id, nil
}

// isProvider checks roster membership.
func isProvider(ctx contractapi.TransactionContextInterface, id string) (bool, error) {
	raw, err := ctx.GetStub().GetState(keyProviderPrefix + id)
	if err != nil {
		return false, fmt.Errorf("get provider: %w", err)
	}
	return raw != nil, nil
}

// requireProvider gates provider-only operations.
func requireProvider(ctx contractapi.TransactionContextInterface) (string, error) {
	id, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	ok, err := isProvider(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", failf(kindUnauthorized, "caller %s is not an authorized provider", id)
	}
	return id, nil
}

// requireRunning rejects state-mutating calls while the pool is paused.
func requireRunning(ctx contractapi.TransactionContextInterface) error {
	raw, err := ctx.GetStub().GetState(keyPaused)
	if err != nil {
		return fmt.Errorf("get paused: %w", err)
	}
	if string(raw) == "true" {
		return failf(kindSystemPaused, "pool is paused")
	}
	return nil
}

func cooldownKey(kind, id string) string { return keyCooldownPrefix + kind + "::" + id }

// checkCooldown verifies the actor's window for one action kind has elapsed.
// It returns the current tx time so the caller can stamp it after all other
// gates pass (validate first, write last).
func checkCooldown(ctx contractapi.TransactionContextInterface, kind, id string, window int64) (int64, error) {
	now, err := txUnix(ctx)
	if err != nil {
		return 0, err
	}
	raw, err := ctx.GetStub().GetState(cooldownKey(kind, id))
	if err != nil {
		return 0, fmt.Errorf("get cooldown: %w", err)
	}
	if raw != nil {
		last, _ := strconv.ParseInt(string(raw), 10, 64)
		if now-last < window {
			return 0, failf(kindRateLimited, "%s cooldown: %ds not elapsed", kind, window)
		}
	}
	return now, nil
}

// stampCooldown records the actor's new last-action timestamp.
func stampCooldown(ctx contractapi.TransactionContextInterface, kind, id string, now int64) error {
	return ctx.GetStub().PutState(cooldownKey(kind, id), []byte(strconv.FormatInt(now, 10)))
}

/* Batch storage */

func batchKey(id uint64) string { return keyBatchPrefix + strconv.FormatUint(id, 10) }

// lastBatchID reads the high-water mark of allocated batch ids.
func lastBatchID(ctx contractapi.TransactionContextInterface) (uint64, error) {
	raw, err := ctx.GetStub().GetState(keyBatchSeq)
	if err != nil {
		return 0, fmt.Errorf("get batch seq: %w", err)
	}
	if raw == nil {
		return 0, nil
	}
	return strconv.ParseUint(string(raw), 10, 64)
}

// loadBatch fetches a batch, rejecting ids outside the allocated range.
func loadBatch(ctx contractapi.TransactionContextInterface, id uint64) (*Batch, error) {
	seq, err := lastBatchID(ctx)
	if err != nil {
		return nil, err
	}
	if id == 0 || id > seq {
		return nil, failf(kindInvalidBatch, "batch %d does not exist", id)
	}
	raw, err := ctx.GetStub().GetState(batchKey(id))
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if raw == nil {
		return nil, failf(kindInvalidBatch, "batch %d does not exist", id)
	}
	var b Batch
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("batch json: %w", err)
	}
	return &b, nil
}

func putBatch(ctx contractapi.TransactionContextInterface, b *Batch) error {
	return ctx.GetStub().PutState(batchKey(b.ID), mustJSON(b))
}

/* Bootstrap */

// Initialize claims the contract for its deployer: the first caller becomes
// owner and an implicit provider, with the default 60s cooldown persisted.
// Repeat calls are rejected so ownership cannot be re-claimed.
func (c *EncPoolContract) Initialize(ctx contractapi.TransactionContextInterface) error {
	id, err := callerID(ctx)
	if err != nil {
		return err
	}
	owner, err := getOwner(ctx)
	if err != nil {
		return err
	}
	if owner != "" {
		return failf(kindUnauthorized, "already initialized")
	}
	if err := ctx.GetStub().PutState(keyOwner, []byte(id)); err != nil {
		return err
	}
	if err := ctx.GetStub().PutState(keyProviderPrefix+id, []byte("1")); err != nil {
		return err
	}
	p, _ := getParams(ctx)
	if err := putParams(ctx, p); err != nil {
		return err
	}
	if p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventOwnershipTransferred, mustJSON(map[string]string{
			"old": "", "new": id,
		}))
	}
	return nil
}

/* Access control ledger */

// TransferOwnership hands the owner role to a new identity. The new owner is
// not implicitly added to the provider roster.
func (c *EncPoolContract) TransferOwnership(ctx contractapi.TransactionContextInterface, newOwner string) error {
	old, err := requireOwner(ctx)
	if err != nil {
		return err
	}
	newOwner = strings.TrimSpace(newOwner)
	if newOwner == "" {
		return failf(kindInvalidArgument, "new owner empty")
	}
	if newOwner == old {
		return nil // no-op, no duplicate event
	}
	if err := ctx.GetStub().PutState(keyOwner, []byte(newOwner)); err != nil {
		return err
	}
	if p, _ := getParams(ctx); p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventOwnershipTransferred, mustJSON(map[string]string{
			"old": old, "new": newOwner,
		}))
	}
	return nil
}

// AddProvider authorizes an identity to submit data and request decryptions.
// Adding a present member is a silent no-op.
func (c *EncPoolContract) AddProvider(ctx contractapi.TransactionContextInterface, id string) error {
	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return failf(kindInvalidArgument, "provider identity empty")
	}
	present, err := isProvider(ctx, id)
	if err != nil {
		return err
	}
	if present {
		return nil
	}
	if err := ctx.GetStub().PutState(keyProviderPrefix+id, []byte("1")); err != nil {
		return err
	}
	if p, _ := getParams(ctx); p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventProviderAdded, mustJSON(map[string]string{"id": id}))
	}
	return nil
}

// RemoveProvider revokes submission rights. Removing an absent member is a
// silent no-op.
func (c *EncPoolContract) RemoveProvider(ctx contractapi.TransactionContextInterface, id string) error {
	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	present, err := isProvider(ctx, id)
	if err != nil {
		return err
	}
	if !present {
		return nil
	}
	if err := ctx.GetStub().DelState(keyProviderPrefix + id); err != nil {
		return err
	}
	if p, _ := getParams(ctx); p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventProviderRemoved, mustJSON(map[string]string{"id": id}))
	}
	return nil
}

// SetPaused flips the global pause flag. Setting the current value is a
// silent no-op.
func (c *EncPoolContract) SetPaused(ctx contractapi.TransactionContextInterface, paused bool) error {
	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	raw, err := ctx.GetStub().GetState(keyPaused)
	if err != nil {
		return fmt.Errorf("get paused: %w", err)
	}
	old := string(raw) == "true"
	if old == paused {
		return nil
	}
	val := []byte("false")
	if paused {
		val = []byte("true")
	}
	if err := ctx.GetStub().PutState(keyPaused, val); err != nil {
		return err
	}
	if p, _ := getParams(ctx); p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventPauseSet, mustJSON(map[string]bool{
			"old": old, "new": paused,
		}))
	}
	return nil
}

// SetCooldown updates the shared cooldown window for submissions and
// decryption requests. Zero is rejected; an unlimited-rate pool must instead
// be expressed by removing the gate upstream.
func (c *EncPoolContract) SetCooldown(ctx contractapi.TransactionContextInterface, seconds int64) error {
	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	if seconds <= 0 {
		return failf(kindInvalidArgument, "cooldown must be positive, got %d", seconds)
	}
	p, err := getParams(ctx)
	if err != nil {
		return err
	}
	old := p.CooldownSeconds
	if old == seconds {
		return nil
	}
	p.CooldownSeconds = seconds
	if err := putParams(ctx, p); err != nil {
		return err
	}
	if p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventCooldownSet, mustJSON(map[string]int64{
			"old": old, "new": seconds,
		}))
	}
	return nil
}

// SetPublicKey installs the Paillier public modulus for the pool. Hex fields
// are validated and canonicalized, and n² is derived when absent so submission
// paths never pay for the multiplication.
func (c *EncPoolContract) SetPublicKey(ctx contractapi.TransactionContextInterface, pkJSON string) error {
	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	var pk PublicKey
	if err := json.Unmarshal([]byte(pkJSON), &pk); err != nil {
		return failf(kindInvalidArgument, "bad pk json: %v", err)
	}
	if pk.N == "" {
		return failf(kindInvalidArgument, "pk must include hex n")
	}
	n, err := cipherFromHex(pk.N)
	if err != nil {
		return failf(kindInvalidArgument, "pk.n bad hex: %v", err)
	}
	pk.N = cipherHex(n)
	if pk.G != "" {
		g, err := cipherFromHex(pk.G)
		if err != nil {
			return failf(kindInvalidArgument, "pk.g bad hex: %v", err)
		}
		pk.G = cipherHex(g)
	}
	if pk.N2 == "" {
		pk.N2 = cipherHex(new(big.Int).Mul(n, n))
	} else {
		n2, err := cipherFromHex(pk.N2)
		if err != nil {
			return failf(kindInvalidArgument, "pk.n2 bad hex: %v", err)
		}
		pk.N2 = cipherHex(n2)
	}
	if err := ctx.GetStub().PutState(keyPublicKey, mustJSON(pk)); err != nil {
		return err
	}
	if p, _ := getParams(ctx); p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventPublicKeySet, mustJSON(map[string]string{
			"nHash": sha256HexStr(pk.N),
		}))
	}
	return nil
}

/* Batch lifecycle */

// OpenBatch allocates the next sequential batch id and initializes all three
// accumulators to the homomorphic zero. Ids are never reused.
func (c *EncPoolContract) OpenBatch(ctx contractapi.TransactionContextInterface) (uint64, error) {
	if _, err := requireOwner(ctx); err != nil {
		return 0, err
	}
	if err := requireRunning(ctx); err != nil {
		return 0, err
	}
	seq, err := lastBatchID(ctx)
	if err != nil {
		return 0, err
	}
	id := seq + 1
	b := &Batch{
		ID:         id,
		IsOpen:     true,
		PremiumAcc: zeroCipher(),
		PayoutAcc:  zeroCipher(),
		RiskAcc:    zeroCipher(),
	}
	if err := ctx.GetStub().PutState(keyBatchSeq, []byte(strconv.FormatUint(id, 10))); err != nil {
		return 0, err
	}
	if err := putBatch(ctx, b); err != nil {
		return 0, err
	}
	if p, _ := getParams(ctx); p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventBatchOpened, mustJSON(map[string]uint64{"batch": id}))
	}
	return id, nil
}

// CloseBatch freezes a batch. Closing is a one-way door: decryption always
// operates over a snapshot that can no longer accept submissions.
func (c *EncPoolContract) CloseBatch(ctx contractapi.TransactionContextInterface, id uint64) error {
	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	if err := requireRunning(ctx); err != nil {
		return err
	}
	b, err := loadBatch(ctx, id)
	if err != nil {
		return err
	}
	if !b.IsOpen {
		return failf(kindInvalidBatch, "batch %d already closed", id)
	}
	b.IsOpen = false
	if err := putBatch(ctx, b); err != nil {
		return err
	}
	if p, _ := getParams(ctx); p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventBatchClosed, mustJSON(map[string]uint64{"batch": id}))
	}
	return nil
}

/* Hot path */

// SubmitData folds one encrypted premium/payout pair into an open batch.
//
// Gates, in order: provider roster, pause flag, per-actor submit cooldown,
// batch open, ciphertext sanity. Only after every gate passes does the
// function write: cooldown stamp, updated batch, event. The raw ciphertext
// inputs ride on the event so indexers can replay the accumulation.
func (c *EncPoolContract) SubmitData(ctx contractapi.TransactionContextInterface, batchID uint64, encPremium, encPayout string) error {
	id, err := requireProvider(ctx)
	if err != nil {
		return err
	}
	if err := requireRunning(ctx); err != nil {
		return err
	}
	p, err := getParams(ctx)
	if err != nil {
		return err
	}
	now, err := checkCooldown(ctx, cdKindSubmit, id, p.CooldownSeconds)
	if err != nil {
		return err
	}
	b, err := loadBatch(ctx, batchID)
	if err != nil {
		return err
	}
	if !b.IsOpen {
		return failf(kindInvalidBatch, "batch %d is closed", batchID)
	}

	sch, err := loadScheme(ctx)
	if err != nil {
		return err
	}
	cPrem, err := cipherFromHex(encPremium)
	if err != nil {
		return failf(kindInvalidArgument, "encPremium: %v", err)
	}
	if err := sch.checkCipher(cPrem); err != nil {
		return failf(kindInvalidArgument, "encPremium: %v", err)
	}
	cPay, err := cipherFromHex(encPayout)
	if err != nil {
		return failf(kindInvalidArgument, "encPayout: %v", err)
	}
	if err := sch.checkCipher(cPay); err != nil {
		return failf(kindInvalidArgument, "encPayout: %v", err)
	}
	derive, err := riskStrategy(p.RiskStrategy)
	if err != nil {
		return err
	}

	accPrem, err := cipherFromHex(b.PremiumAcc)
	if err != nil {
		return fmt.Errorf("premium acc: %w", err)
	}
	accPay, err := cipherFromHex(b.PayoutAcc)
	if err != nil {
		return fmt.Errorf("payout acc: %w", err)
	}
	accPrem = sch.add(accPrem, cPrem)
	accPay = sch.add(accPay, cPay)
	b.PremiumAcc = cipherHex(accPrem)
	b.PayoutAcc = cipherHex(accPay)
	b.RiskAcc = cipherHex(derive(sch, accPrem, accPay))

	if err := stampCooldown(ctx, cdKindSubmit, id, now); err != nil {
		return err
	}
	if err := putBatch(ctx, b); err != nil {
		return err
	}
	if p.EmitEvents {
		_ = ctx.GetStub().SetEvent(eventDataSubmitted, mustJSON(map[string]any{
			"batch":       batchID,
			"provider":    id,
			"enc_premium": canonCipher(encPremium),
			"enc_payout":  canonCipher(encPayout),
		}))
	}
	return nil
}

/* Queries */

// GetCurrentBatchId returns the highest allocated batch id (0 before any open).
func (c *EncPoolContract) GetCurrentBatchId(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return lastBatchID(ctx)
}

// GetBatch returns a batch's full state, accumulators included.
func (c *EncPoolContract) GetBatch(ctx contractapi.TransactionContextInterface, id uint64) (*Batch, error) {
	return loadBatch(ctx, id)
}

// IsProvider reports roster membership for an identity.
func (c *EncPoolContract) IsProvider(ctx contractapi.TransactionContextInterface, id string) (bool, error) {
	return isProvider(ctx, id)
}

// GetOwner returns the current owner identity.
func (c *EncPoolContract) GetOwner(ctx contractapi.TransactionContextInterface) (string, error) {
	return getOwner(ctx)
}

// IsPaused reports the global pause flag.
func (c *EncPoolContract) IsPaused(ctx contractapi.TransactionContextInterface) (bool, error) {
	raw, err := ctx.GetStub().GetState(keyPaused)
	if err != nil {
		return false, err
	}
	return string(raw) == "true", nil
}

// GetParams reads back the runtime parameters.
func (c *EncPoolContract) GetParams(ctx contractapi.TransactionContextInterface) (*Params, error) {
	return getParams(ctx)
}

// GetPublicKey returns the stored Paillier public key JSON.
func (c *EncPoolContract) GetPublicKey(ctx contractapi.TransactionContextInterface) (string, error) {
	raw, err := ctx.GetStub().GetState(keyPublicKey)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", fmt.Errorf("not found")
	}
	return string(raw), nil
}

/* Health */

// Ping is a simple health check used by deployment tooling and test harnesses.
func (c *EncPoolContract) Ping(ctx contractapi.TransactionContextInterface) (string, error) {
	return "OK:" + ctx.GetStub().GetTxID(), nil
}
