// harness_test.go
//
// Purpose: Minimal, deterministic test harness for the encpool chaincode.
// Role: Provides an in-memory world-state "ledger", a mocked Fabric
// ChaincodeStub (via gomock), a switchable caller identity, and a stubbed
// decryption-oracle chaincode (cc2cc). It lets tests drive the contract
// without real peers, orderers, or crypto material.
// Key deps:
// - Hyperledger Fabric Go SDKs: chaincode-go/shim, contractapi, protos (peer)
// - gomock for stub expectations and return paths
// - Google protobuf/timestamppb for stable TxTimestamp values
// - Local fakes package: github.com/yourorg/encpool_cc/fakes (mock stub interface)
// Notes:
// - The harness makes defensive copies of byte slices to avoid aliasing between
// the test code and the "ledger" map.
// - The tx timestamp and caller are mutable so cooldown and roster paths can be
// exercised without sleeping or re-wiring mocks.

package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/hyperledger/fabric-chaincode-go/v2/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	contractapi "github.com/hyperledger/fabric-contract-api-go/v2/contractapi"
	pb "github.com/hyperledger/fabric-protos-go-apiv2/peer"
	"google.golang.org/protobuf/types/known/timestamppb"

	f "github.com/yourorg/encpool_cc/fakes"
)

const (
	testOwner    = "x509::owner"
	testProvA    = "x509::prov-a"
	testProvB    = "x509::prov-b"
	testOutsider = "x509::outsider"

	testChannel = "poolchan-01"
	testGenesis = int64(1763173800)

	testOracleCC = "decoracle"
)

/* in-memory WS harness */

// memWorld is a tiny in-memory ledger used by the mock stub.
// It tracks world state (ws), emitted events, and op counts.
type memWorld struct {
	ws     map[string][]byte
	events []struct {
		name    string
		payload []byte
	}
	opsCounts struct {
		getState, putState, delState int
		setEvent                     int
	}
}

func newMemWorld() *memWorld {
	return &memWorld{ws: make(map[string][]byte)}
}

func (m *memWorld) getState(key string) ([]byte, error) {
	m.opsCounts.getState++
	if v, ok := m.ws[key]; ok {
		return append([]byte(nil), v...), nil // Copy for safety
	}
	return nil, nil
}

func (m *memWorld) putState(key string, val []byte) error {
	m.opsCounts.putState++
	m.ws[key] = append([]byte(nil), val...) // Copy for safety
	return nil
}

func (m *memWorld) delState(key string) error {
	m.opsCounts.delState++
	delete(m.ws, key)
	return nil
}

func (m *memWorld) setEvent(name string, payload []byte) error {
	m.opsCounts.setEvent++
	m.events = append(m.events, struct {
		name    string
		payload []byte
	}{name: name, payload: append([]byte(nil), payload...)}) // Copy for safety
	return nil
}

// countEvents returns how many events with the given name were emitted.
func (m *memWorld) countEvents(name string) int {
	n := 0
	for _, e := range m.events {
		if e.name == name {
			n++
		}
	}
	return n
}

// lastEvent returns the payload of the most recent event with the given name,
// decoded into a generic map, or nil if none was emitted.
func (m *memWorld) lastEvent(name string) map[string]any {
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].name == name {
			var out map[string]any
			_ = json.Unmarshal(m.events[i].payload, &out)
			return out
		}
	}
	return nil
}

/* caller identity */

// fakeIdentity satisfies cid.ClientIdentity with a pointer to the harness's
// current caller, so tests can switch actors without re-wiring the context.
type fakeIdentity struct{ id *string }

func (fi *fakeIdentity) GetID() (string, error)    { return *fi.id, nil }
func (fi *fakeIdentity) GetMSPID() (string, error) { return "PoolMSP", nil }
func (fi *fakeIdentity) GetAttributeValue(string) (string, bool, error) {
	return "", false, nil
}
func (fi *fakeIdentity) AssertAttributeValue(string, string) error { return nil }
func (fi *fakeIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}

/* tx context w/ real stub (no gomock ctx) */

type simpleTxCtx struct {
	s  shim.ChaincodeStubInterface
	ci cid.ClientIdentity
}

func (c *simpleTxCtx) GetStub() shim.ChaincodeStubInterface { return c.s }
func (c *simpleTxCtx) GetClientIdentity() cid.ClientIdentity { return c.ci }

/* test harness */

// testHarness bundles the mock controller, stub, in-mem ledger, and the
// contract under test, plus mutable txID / timestamp / caller knobs.
type testHarness struct {
	ctrl   *gomock.Controller
	ctx    contractapi.TransactionContextInterface
	stub   *f.MockChaincodeStubInterface
	mem    *memWorld
	cc     *EncPoolContract
	t      *testing.T
	txID   string
	now    int64
	caller string

	oracleKey []byte // proofs are HMAC-SHA256 under this key
	reqSeq    int    // deterministic oracle-assigned request ids
	oracleUp  bool   // when false, cc2cc to the oracle answers 500
}

// newHarness builds a mocked Fabric transaction context for unit tests.
// It wires world state to an in-memory map and the oracle chaincode to a
// deterministic cc2cc stub.
func newHarness(t *testing.T) *testHarness {
	t.Helper()

	ctrl := gomock.NewController(t)
	stub := f.NewMockChaincodeStubInterface(ctrl)
	mem := newMemWorld()

	h := &testHarness{
		ctrl: ctrl, stub: stub, mem: mem,
		cc: new(EncPoolContract), t: t,
		txID: "tx-0001", now: testGenesis, caller: testOwner,
		oracleKey: []byte("oracle-test-key"),
		oracleUp:  true,
	}
	h.ctx = &simpleTxCtx{s: stub, ci: &fakeIdentity{id: &h.caller}}

	stub.EXPECT().GetTxID().AnyTimes().DoAndReturn(func() string { return h.txID })
	stub.EXPECT().GetChannelID().AnyTimes().Return(testChannel)
	stub.EXPECT().GetTxTimestamp().AnyTimes().DoAndReturn(func() (*timestamppb.Timestamp, error) {
		return &timestamppb.Timestamp{Seconds: h.now}, nil
	})

	// Wire world state to the in-mem map.
	stub.EXPECT().GetState(gomock.Any()).AnyTimes().DoAndReturn(mem.getState)
	stub.EXPECT().PutState(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(mem.putState)
	stub.EXPECT().DelState(gomock.Any()).AnyTimes().DoAndReturn(mem.delState)

	// Capture events into the in-mem log for assertions.
	stub.EXPECT().SetEvent(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(mem.setEvent)

	h.stubOracle()
	return h
}

/* cc2cc oracle stub */

// stubOracle answers ScheduleDecryption and VerifyProof the way the decoracle
// chaincode would: sequential request ids and HMAC-SHA256 proofs under the
// harness key. Flip h.oracleUp to false to simulate an unreachable oracle.
func (h *testHarness) stubOracle() {
	h.stub.EXPECT().
		InvokeChaincode(
			gomock.Eq(testOracleCC),
			gomock.AssignableToTypeOf([][]byte{}),
			gomock.Any(),
		).
		AnyTimes().
		DoAndReturn(func(cc string, args [][]byte, ch string) *pb.Response {
			if !h.oracleUp {
				return &pb.Response{Status: 500, Message: "oracle unavailable"}
			}
			if len(args) == 0 {
				return &pb.Response{Status: int32(shim.ERROR), Message: "missing fcn"}
			}
			switch string(args[0]) {
			case "ScheduleDecryption":
				if len(args) < 3 {
					return &pb.Response{Status: int32(shim.ERROR), Message: "bad args"}
				}
				h.reqSeq++
				id := fmt.Sprintf("req-%04d", h.reqSeq)
				return &pb.Response{Status: int32(shim.OK), Payload: []byte(`"` + id + `"`)}
			case "VerifyProof":
				if len(args) < 4 {
					return &pb.Response{Status: int32(shim.ERROR), Message: "bad args"}
				}
				reqID, cleartexts, proofHex := string(args[1]), string(args[2]), string(args[3])
				proof, err := hex.DecodeString(strings.TrimSpace(proofHex))
				if err != nil {
					return &pb.Response{Status: int32(shim.OK), Payload: []byte("false")}
				}
				mac := hmac.New(sha256.New, h.oracleKey)
				mac.Write([]byte(reqID + "|" + cleartexts))
				if hmac.Equal(mac.Sum(nil), proof) {
					return &pb.Response{Status: int32(shim.OK), Payload: []byte("true")}
				}
				return &pb.Response{Status: int32(shim.OK), Payload: []byte("false")}
			default:
				return &pb.Response{Status: 404, Message: "not mocked: " + string(args[0])}
			}
		})
}

// proofFor computes the proof the stubbed oracle will accept for a payload.
func (h *testHarness) proofFor(requestID, cleartextsJSON string) string {
	mac := hmac.New(sha256.New, h.oracleKey)
	mac.Write([]byte(requestID + "|" + cleartextsJSON))
	return hex.EncodeToString(mac.Sum(nil))
}

/* small helpers */

func (h *testHarness) setTxID(id string)     { h.txID = id }
func (h *testHarness) setCaller(id string)   { h.caller = id }
func (h *testHarness) advance(seconds int64) { h.now += seconds }

// as runs fn with the given caller and restores the previous one after.
func (h *testHarness) as(id string, fn func()) {
	prev := h.caller
	h.caller = id
	fn()
	h.caller = prev
}

// bootstrap initializes the contract as the owner and registers both test
// providers, which is the starting state for most scenarios.
func (h *testHarness) bootstrap() {
	h.t.Helper()
	requireNoErr(h.t, h.cc.Initialize(h.ctx))
	requireNoErr(h.t, h.cc.AddProvider(h.ctx, testProvA))
	requireNoErr(h.t, h.cc.AddProvider(h.ctx, testProvB))
}

// setPK installs a public key with g=n+1 for the given modulus.
func (h *testHarness) setPK(n *big.Int) {
	h.t.Helper()
	g := new(big.Int).Add(n, big.NewInt(1))
	pkJSON := fmt.Sprintf(`{"n":"0x%x","g":"0x%x"}`, n, g)
	requireNoErr(h.t, h.cc.SetPublicKey(h.ctx, pkJSON))
}

// submitAs performs a SubmitData call as the given provider.
func (h *testHarness) submitAs(provider string, batchID uint64, encPremium, encPayout string) error {
	var err error
	h.as(provider, func() { err = h.cc.SubmitData(h.ctx, batchID, encPremium, encPayout) })
	return err
}

// requestAs performs a RequestBatchDecryption call as the given provider.
func (h *testHarness) requestAs(provider string, batchID uint64) (string, error) {
	var id string
	var err error
	h.as(provider, func() { id, err = h.cc.RequestBatchDecryption(h.ctx, batchID) })
	return id, err
}

// storedBatch reads a batch straight from the in-mem ledger, bypassing the
// contract, so tests can inspect or tamper with persisted state.
func (h *testHarness) storedBatch(id uint64) Batch {
	h.t.Helper()
	raw, ok := h.mem.ws[batchKey(id)]
	if !ok {
		h.t.Fatalf("missing batch %d in world state", id)
	}
	var b Batch
	if err := json.Unmarshal(raw, &b); err != nil {
		h.t.Fatalf("bad batch json: %v", err)
	}
	return b
}

func requireNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// requireErrKind asserts err is non-nil and carries the given failure kind prefix.
func requireErrKind(t *testing.T, err error, kind string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !strings.HasPrefix(err.Error(), kind+":") {
		t.Fatalf("error %q is not kind %s", err.Error(), kind)
	}
}

/* Minimal Paillier helpers for tests */

// paillierTestKey is a toy keypair with just enough fields for unit tests.
// No production crypto here — the moduli are tiny and deterministic.
type paillierTestKey struct {
	n, n2, lambda, mu *big.Int
}

// newPaillierTestKey builds a tiny (insecure) Paillier key from two primes.
func newPaillierTestKey(p, q int64) *paillierTestKey {
	P := big.NewInt(p)
	Q := big.NewInt(q)
	n := new(big.Int).Mul(P, Q)
	n2 := new(big.Int).Mul(n, n)
	l1 := new(big.Int).Sub(P, big.NewInt(1))
	l2 := new(big.Int).Sub(Q, big.NewInt(1))
	gcd := new(big.Int).GCD(nil, nil, l1, l2)
	lambda := new(big.Int).Mul(new(big.Int).Div(l1, gcd), l2) // lcm(p−1,q−1)

	// mu = (L(g^lambda mod n²))^{-1} mod n, with g=n+1 and L(u)=(u-1)/n
	g := new(big.Int).Add(n, big.NewInt(1))
	u := new(big.Int).Exp(g, lambda, n2)
	Lu := new(big.Int).Sub(u, big.NewInt(1))
	Lu.Div(Lu, n)
	mu := new(big.Int).ModInverse(Lu, n)

	return &paillierTestKey{n: n, n2: n2, lambda: lambda, mu: mu}
}

// encHex returns Enc(m; r) = (n+1)^m * r^n mod n² as lowercase hex (no 0x).
func (k *paillierTestKey) encHex(m, r int64) string {
	g := new(big.Int).Add(k.n, big.NewInt(1))
	gm := new(big.Int).Exp(g, big.NewInt(m), k.n2)
	rn := new(big.Int).Exp(big.NewInt(r), k.n, k.n2)
	c := new(big.Int).Mul(gm, rn)
	c.Mod(c, k.n2)
	return fmt.Sprintf("%x", c)
}

// dec decrypts a ciphertext handle and returns the plaintext in Z_n.
func (k *paillierTestKey) dec(t *testing.T, cStr string) *big.Int {
	t.Helper()
	c, err := cipherFromHex(cStr)
	requireNoErr(t, err)
	u := new(big.Int).Exp(c, k.lambda, k.n2)
	Lu := new(big.Int).Sub(u, big.NewInt(1))
	Lu.Div(Lu, k.n)
	m := new(big.Int).Mul(Lu, k.mu)
	m.Mod(m, k.n)
	return m
}
