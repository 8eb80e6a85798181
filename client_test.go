package questdb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swift-glide/questdb-go/queryenc"
	"github.com/swift-glide/questdb-go/result"
)

type limitParams struct {
	Limit int64
}

func (p limitParams) EncodeFields(w *queryenc.FieldWriter) error {
	return w.Int("limit", p.Limit)
}

type trade struct {
	Symbol string
	Price  float64
}

func (tr *trade) DecodeRecord(r result.Row) error {
	var err error
	if tr.Symbol, err = r.String("symbol"); err != nil {
		return err
	}
	tr.Price, err = r.Double("price")
	return err
}

const tradesPayload = `{
	"query": "select symbol, price from trades",
	"columns": [{"name":"symbol","type":"SYMBOL"},{"name":"price","type":"DOUBLE"}],
	"dataset": [["BTC-USD", 66123.5], ["ETH-USD", 3300.25]],
	"count": 2
}`

func TestClientQueryAssemblesRawQuery(t *testing.T) {
	var seen string
	rt := RoundTripperFunc(func(ctx context.Context, rawQuery string) ([]byte, error) {
		seen = rawQuery
		return []byte(tradesPayload), nil
	})

	c := NewClient(rt)
	resp, err := c.Query(context.Background(), "select symbol, price from trades", limitParams{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "query=select%20symbol,%20price%20from%20trades&limit=10", seen)
	assert.Len(t, resp.Dataset, 2)
}

func TestClientQueryWithoutParams(t *testing.T) {
	var seen string
	rt := RoundTripperFunc(func(ctx context.Context, rawQuery string) ([]byte, error) {
		seen = rawQuery
		return []byte(tradesPayload), nil
	})

	_, err := NewClient(rt).Query(context.Background(), "select 1", nil)
	require.NoError(t, err)
	assert.Equal(t, "query=select%201", seen)
}

func TestClientQueryServerError(t *testing.T) {
	rt := RoundTripperFunc(func(ctx context.Context, rawQuery string) ([]byte, error) {
		return []byte(`{"query":"selec 1","error":"unexpected token: selec","position":0}`), nil
	})

	resp, err := NewClient(rt).Query(context.Background(), "selec 1", nil)
	require.Error(t, err)

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "unexpected token: selec", serr.Message)
	// The decoded envelope still comes back alongside the error.
	require.NotNil(t, resp)
	assert.Equal(t, "selec 1", resp.Query)
}

func TestClientQueryTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	rt := RoundTripperFunc(func(ctx context.Context, rawQuery string) ([]byte, error) {
		return nil, boom
	})

	_, err := NewClient(rt).Query(context.Background(), "select 1", nil)
	require.ErrorIs(t, err, boom)
}

func TestClientQueryEncodingFailureAborts(t *testing.T) {
	called := false
	rt := RoundTripperFunc(func(ctx context.Context, rawQuery string) ([]byte, error) {
		called = true
		return []byte(tradesPayload), nil
	})

	bad := queryenc.Encodable(badParams{})
	_, err := NewClient(rt).Query(context.Background(), "select 1", bad)
	require.Error(t, err)

	var encErr *queryenc.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.False(t, called, "transport must not run after an encoding failure")
}

type badParams struct{}

func (badParams) EncodeFields(w *queryenc.FieldWriter) error {
	return w.String("v", "bad\xff")
}

func TestQueryAs(t *testing.T) {
	rt := RoundTripperFunc(func(ctx context.Context, rawQuery string) ([]byte, error) {
		return []byte(tradesPayload), nil
	})

	trades, err := QueryAs[trade](context.Background(), NewClient(rt), "select symbol, price from trades", nil)
	require.NoError(t, err)
	assert.Equal(t, []trade{
		{Symbol: "BTC-USD", Price: 66123.5},
		{Symbol: "ETH-USD", Price: 3300.25},
	}, trades)
}

func TestClientEncoderOptions(t *testing.T) {
	var seen string
	rt := RoundTripperFunc(func(ctx context.Context, rawQuery string) ([]byte, error) {
		seen = rawQuery
		return []byte(`{"columns":[],"dataset":[]}`), nil
	})

	c := NewClient(rt, WithEncoderOptions(
		queryenc.WithArrayStrategy(queryenc.ArraySeparated),
	))
	_, err := c.Query(context.Background(), "q", symbolsParams{Symbols: []string{"BTC", "ETH"}})
	require.NoError(t, err)
	assert.Equal(t, "query=q&symbols=BTC,ETH", seen)
}

type symbolsParams struct {
	Symbols []string
}

func (p symbolsParams) EncodeFields(w *queryenc.FieldWriter) error {
	return w.Strings("symbols", p.Symbols)
}
