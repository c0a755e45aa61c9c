package main

/*
decoracle (decryption-oracle registry)

Companion chaincode for encpool. The off-chain oracle service watches JOB::
entries, performs the actual threshold decryption, and relays cleartexts back
to encpool.OnDecryptionCallback; encpool reaches this contract via cc2cc.

Exports:
  1) SetOracleKey(keyHex)
       ORKEY → HMAC key (hex). Owner of the oracle service seeds it once;
       re-seeding is rejected so a relayer cannot swap the proof key.
  2) ScheduleDecryption(ciphertextsJSON, callbackRef) → requestId
       JOB::<requestId> → DecryptJob JSON. requestId is derived from the
       scheduling txID and the ciphertext set, so it is unique per request
       and reproducible by auditors.
  3) VerifyProof(requestId, cleartextsJSON, proofHex) → true/false
       proof = HMAC-SHA256(key, requestId|cleartextsJSON). Fails closed:
       missing key, unknown job, or bad hex all verify as false.
  4) GetJob(requestId) → DecryptJob JSON
*/

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/v2/contractapi"
)

const (
	keyOracleKey = "ORKEY" // ORKEY → proof HMAC key (hex)
	keyJobPrefix = "JOB::" // JOB::<requestId> → DecryptJob JSON
)

// DecryptJob is one pending decryption scheduled by a client chaincode.
type DecryptJob struct {
	RequestID   string   `json:"request_id"`
	Ciphertexts []string `json:"ciphertexts"`
	CallbackRef string   `json:"callback_ref"`
}

type OracleContract struct{ contractapi.Contract }

func jobKey(id string) string { return keyJobPrefix + id }

// SetOracleKey seeds the HMAC key proofs are checked against. Write-once.
func (o *OracleContract) SetOracleKey(ctx contractapi.TransactionContextInterface, keyHex string) error {
	keyHex = strings.TrimSpace(keyHex)
	if keyHex == "" {
		return errors.New("key empty")
	}
	if _, err := hex.DecodeString(keyHex); err != nil {
		return fmt.Errorf("key not hex: %w", err)
	}
	cur, err := ctx.GetStub().GetState(keyOracleKey)
	if err != nil {
		return err
	}
	if cur != nil {
		return errors.New("oracle key already set")
	}
	return ctx.GetStub().PutState(keyOracleKey, []byte(keyHex))
}

// ScheduleDecryption registers a decryption job and assigns its request id.
func (o *OracleContract) ScheduleDecryption(ctx contractapi.TransactionContextInterface, ciphertextsJSON, callbackRef string) (string, error) {
	var cts []string
	if err := json.Unmarshal([]byte(ciphertextsJSON), &cts); err != nil {
		return "", fmt.Errorf("parse ciphertexts: %w", err)
	}
	if len(cts) == 0 {
		return "", errors.New("empty ciphertext set")
	}
	callbackRef = strings.TrimSpace(callbackRef)
	if callbackRef == "" {
		return "", errors.New("callback ref empty")
	}

	canon, _ := json.Marshal(cts)
	sum := sha256.Sum256([]byte(ctx.GetStub().GetTxID() + "|" + string(canon)))
	reqID := hex.EncodeToString(sum[:16])

	job := DecryptJob{RequestID: reqID, Ciphertexts: cts, CallbackRef: callbackRef}
	raw, _ := json.Marshal(job)
	if err := ctx.GetStub().PutState(jobKey(reqID), raw); err != nil {
		return "", fmt.Errorf("put job: %w", err)
	}
	return reqID, nil
}

// VerifyProof checks an HMAC proof for a scheduled job. Any missing
// prerequisite verifies as false rather than erroring, so client chaincodes
// fail closed without needing to distinguish fault classes.
func (o *OracleContract) VerifyProof(ctx contractapi.TransactionContextInterface, requestID, cleartextsJSON, proofHex string) (bool, error) {
	keyRaw, err := ctx.GetStub().GetState(keyOracleKey)
	if err != nil {
		return false, err
	}
	if keyRaw == nil {
		return false, nil
	}
	key, err := hex.DecodeString(string(keyRaw))
	if err != nil {
		return false, nil
	}
	jobRaw, err := ctx.GetStub().GetState(jobKey(requestID))
	if err != nil {
		return false, err
	}
	if jobRaw == nil {
		return false, nil
	}
	proof, err := hex.DecodeString(strings.TrimSpace(proofHex))
	if err != nil {
		return false, nil
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(requestID + "|" + cleartextsJSON))
	return hmac.Equal(mac.Sum(nil), proof), nil
}

// GetJob returns a scheduled job's JSON.
func (o *OracleContract) GetJob(ctx contractapi.TransactionContextInterface, requestID string) (string, error) {
	raw, err := ctx.GetStub().GetState(jobKey(requestID))
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", fmt.Errorf("job not found")
	}
	return string(raw), nil
}

func main() {
	cc, err := contractapi.NewChaincode(new(OracleContract))
	if err != nil {
		panic(err)
	}
	if err := cc.Start(); err != nil {
		panic(err)
	}
}
