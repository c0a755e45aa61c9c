// decoracle_test.go
//
// Purpose: Tests for the decryption-oracle registry: scheduling assigns
// reproducible per-tx request ids, the proof key is write-once, and HMAC proof
// verification fails closed on every missing prerequisite.

package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/hyperledger/fabric-chaincode-go/v2/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	"google.golang.org/protobuf/types/known/timestamppb"

	f "github.com/yourorg/encpool_cc/fakes"
)

const testKeyHex = "6f7261636c652d746573742d6b6579" // "oracle-test-key"

type oracleHarness struct {
	ctrl *gomock.Controller
	ctx  *oracleTxCtx
	oc   *OracleContract
	ws   map[string][]byte
	txID string
}

type oracleTxCtx struct{ s shim.ChaincodeStubInterface }

func (c *oracleTxCtx) GetStub() shim.ChaincodeStubInterface  { return c.s }
func (c *oracleTxCtx) GetClientIdentity() cid.ClientIdentity { return nil }

func newOracleHarness(t *testing.T) *oracleHarness {
	t.Helper()
	ctrl := gomock.NewController(t)
	stub := f.NewMockChaincodeStubInterface(ctrl)
	h := &oracleHarness{
		ctrl: ctrl, oc: new(OracleContract),
		ws: make(map[string][]byte), txID: "otx-0001",
	}
	h.ctx = &oracleTxCtx{s: stub}

	stub.EXPECT().GetTxID().AnyTimes().DoAndReturn(func() string { return h.txID })
	stub.EXPECT().GetTxTimestamp().AnyTimes().Return(&timestamppb.Timestamp{Seconds: 1763173800}, nil)
	stub.EXPECT().GetState(gomock.Any()).AnyTimes().DoAndReturn(func(key string) ([]byte, error) {
		if v, ok := h.ws[key]; ok {
			return append([]byte(nil), v...), nil
		}
		return nil, nil
	})
	stub.EXPECT().PutState(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(func(key string, val []byte) error {
		h.ws[key] = append([]byte(nil), val...)
		return nil
	})
	return h
}

func proofHex(keyHex, requestID, cleartexts string) string {
	key, _ := hex.DecodeString(keyHex)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(requestID + "|" + cleartexts))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestOracle_SetKeyWriteOnce(t *testing.T) {
	h := newOracleHarness(t)
	defer h.ctrl.Finish()

	if err := h.oc.SetOracleKey(h.ctx, "not hex!"); err == nil {
		t.Fatalf("non-hex key accepted")
	}
	if err := h.oc.SetOracleKey(h.ctx, testKeyHex); err != nil {
		t.Fatalf("seed key: %v", err)
	}
	if err := h.oc.SetOracleKey(h.ctx, "aabbcc"); err == nil {
		t.Fatalf("key re-seeding accepted")
	}
}

func TestOracle_ScheduleAssignsPerTxIds(t *testing.T) {
	h := newOracleHarness(t)
	defer h.ctrl.Finish()

	cts := `["a1","b2","c3"]`
	id1, err := h.oc.ScheduleDecryption(h.ctx, cts, "encpool:OnDecryptionCallback")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	// Same inputs in a different tx get a different id.
	h.txID = "otx-0002"
	id2, err := h.oc.ScheduleDecryption(h.ctx, cts, "encpool:OnDecryptionCallback")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("request ids collide across transactions")
	}

	raw, err := h.oc.GetJob(h.ctx, id1)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	var job DecryptJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		t.Fatalf("job json: %v", err)
	}
	if job.RequestID != id1 || len(job.Ciphertexts) != 3 || job.Ciphertexts[0] != "a1" {
		t.Fatalf("bad stored job: %+v", job)
	}
}

func TestOracle_ScheduleValidation(t *testing.T) {
	h := newOracleHarness(t)
	defer h.ctrl.Finish()

	if _, err := h.oc.ScheduleDecryption(h.ctx, `[]`, "cb"); err == nil {
		t.Fatalf("empty ciphertext set accepted")
	}
	if _, err := h.oc.ScheduleDecryption(h.ctx, `not json`, "cb"); err == nil {
		t.Fatalf("malformed ciphertexts accepted")
	}
	if _, err := h.oc.ScheduleDecryption(h.ctx, `["a1"]`, "  "); err == nil {
		t.Fatalf("blank callback ref accepted")
	}
}

func TestOracle_VerifyProofFailsClosed(t *testing.T) {
	h := newOracleHarness(t)
	defer h.ctrl.Finish()

	cts := `["150","15","15"]`

	// No key seeded yet.
	ok, err := h.oc.VerifyProof(h.ctx, "req-x", cts, "00")
	if err != nil || ok {
		t.Fatalf("verify without key: ok=%v err=%v", ok, err)
	}

	if err := h.oc.SetOracleKey(h.ctx, testKeyHex); err != nil {
		t.Fatalf("seed key: %v", err)
	}
	reqID, err := h.oc.ScheduleDecryption(h.ctx, `["a1","b2","c3"]`, "encpool:OnDecryptionCallback")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	// Unknown job.
	ok, _ = h.oc.VerifyProof(h.ctx, "req-unknown", cts, proofHex(testKeyHex, "req-unknown", cts))
	if ok {
		t.Fatalf("proof verified for unscheduled request")
	}
	// Bad proof hex.
	ok, _ = h.oc.VerifyProof(h.ctx, reqID, cts, "zz")
	if ok {
		t.Fatalf("non-hex proof verified")
	}
	// Wrong payload.
	ok, _ = h.oc.VerifyProof(h.ctx, reqID, cts, proofHex(testKeyHex, reqID, `["0","0","0"]`))
	if ok {
		t.Fatalf("proof for different cleartexts verified")
	}
	// The genuine article.
	ok, err = h.oc.VerifyProof(h.ctx, reqID, cts, proofHex(testKeyHex, reqID, cts))
	if err != nil || !ok {
		t.Fatalf("valid proof rejected: ok=%v err=%v", ok, err)
	}
}
