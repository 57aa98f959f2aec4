package rugcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpwatch/pumpwatch/internal/blacklist"
	"github.com/pumpwatch/pumpwatch/internal/feed"
)

func TestClient_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mint111", r.URL.Query().Get("contract_address"))
		w.Write([]byte(`{"status":"Good","supply_bundled":false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	verdict, err := c.Check(context.Background(), "Mint111")
	require.NoError(t, err)
	assert.Equal(t, StatusGood, verdict.Status)
	assert.False(t, verdict.SupplyBundled)
}

func TestClient_Check_MissingStatusDefaultsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"supply_bundled":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	verdict, err := c.Check(context.Background(), "Mint111")
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, verdict.Status)
	assert.True(t, verdict.SupplyBundled)
}

func TestClient_Check_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Check(context.Background(), "Mint111")
	require.Error(t, err)
}

func TestGate_BadStatusBlacklistsSymbolAndDev(t *testing.T) {
	stub := NewStubChecker()
	stub.SetVerdict("A1", Verdict{Status: "Bad", SupplyBundled: true})

	bl := blacklist.NewStore()
	gate := NewGate(stub, bl)

	token := &feed.Token{ContractAddress: "A1", Symbol: "FOO", DevAddress: "D1"}
	verdict := gate.Classify(context.Background(), token)

	require.NotNil(t, verdict)
	assert.Equal(t, "Bad", verdict.Status)
	assert.True(t, bl.ContainsSymbol("FOO"))
	assert.True(t, bl.ContainsAddress("D1"))
}

func TestGate_BundledSupplyBlacklistsEvenWhenGood(t *testing.T) {
	stub := NewStubChecker()
	stub.SetVerdict("A1", Verdict{Status: StatusGood, SupplyBundled: true})

	bl := blacklist.NewStore()
	gate := NewGate(stub, bl)

	token := &feed.Token{ContractAddress: "A1", Symbol: "FOO", DevAddress: "D1"}
	gate.Classify(context.Background(), token)

	assert.True(t, bl.ContainsSymbol("FOO"))
	assert.True(t, bl.ContainsAddress("D1"))
}

func TestGate_GoodVerdictDoesNotBlacklist(t *testing.T) {
	stub := NewStubChecker()
	stub.SetVerdict("A2", Verdict{Status: StatusGood, SupplyBundled: false})

	bl := blacklist.NewStore()
	gate := NewGate(stub, bl)

	token := &feed.Token{ContractAddress: "A2", Symbol: "BAR", DevAddress: "D2"}
	verdict := gate.Classify(context.Background(), token)

	require.NotNil(t, verdict)
	assert.Equal(t, StatusGood, verdict.Status)
	assert.False(t, bl.ContainsSymbol("BAR"))
	assert.False(t, bl.ContainsAddress("D2"))
}

func TestGate_ProviderFailureLeavesBlacklistUntouched(t *testing.T) {
	stub := NewStubChecker() // no verdicts loaded: every check errors

	bl := blacklist.NewStore()
	gate := NewGate(stub, bl)

	token := &feed.Token{ContractAddress: "A3", Symbol: "BAZ", DevAddress: "D3"}
	verdict := gate.Classify(context.Background(), token)

	assert.Nil(t, verdict)
	assert.False(t, bl.ContainsSymbol("BAZ"))
	assert.False(t, bl.ContainsAddress("D3"))
	assert.Equal(t, int64(1), gate.Stats().CheckErrors)
}

func TestGate_EmptyContractSkipsProvider(t *testing.T) {
	stub := NewStubChecker()

	bl := blacklist.NewStore()
	gate := NewGate(stub, bl)

	token := &feed.Token{Symbol: "NOADDR"}
	verdict := gate.Classify(context.Background(), token)

	require.NotNil(t, verdict)
	assert.Equal(t, StatusUnknown, verdict.Status)
	assert.False(t, verdict.SupplyBundled)
	assert.Zero(t, stub.Calls(), "no provider call for empty contract address")
}
