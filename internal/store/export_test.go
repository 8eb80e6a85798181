package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swift-glide/questdb-go/dynval"
	"github.com/swift-glide/questdb-go/result"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func tradeColumns() []result.Column {
	return []result.Column{
		{Name: "symbol", Type: "SYMBOL"},
		{Name: "price", Type: "DOUBLE"},
		{Name: "qty", Type: "LONG"},
		{Name: "note", Type: "STRING"},
	}
}

func TestExportWritesRows(t *testing.T) {
	s := openTestStore(t)

	dataset := [][]dynval.Value{
		{dynval.String("BTC-USD"), dynval.Double(66123.5), dynval.Int(3), dynval.Null{}},
		{dynval.String("ETH-USD"), dynval.Double(3300.25), dynval.Int(10), dynval.String("fill")},
	}

	written, err := s.Export(context.Background(), "trades", tradeColumns(), dataset)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	rows, err := s.DB().Query(`SELECT symbol, price, qty, note FROM trades ORDER BY symbol`)
	require.NoError(t, err)
	defer rows.Close()

	type rec struct {
		symbol string
		price  float64
		qty    int64
		note   *string
	}
	var got []rec
	for rows.Next() {
		var r rec
		require.NoError(t, rows.Scan(&r.symbol, &r.price, &r.qty, &r.note))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 2)
	assert.Equal(t, "BTC-USD", got[0].symbol)
	assert.Equal(t, 66123.5, got[0].price)
	assert.Equal(t, int64(3), got[0].qty)
	assert.Nil(t, got[0].note)
	require.NotNil(t, got[1].note)
	assert.Equal(t, "fill", *got[1].note)
}

func TestExportSkipsShapeMismatchedRows(t *testing.T) {
	s := openTestStore(t)

	dataset := [][]dynval.Value{
		{dynval.String("BTC-USD")}, // too short
		{dynval.String("ETH-USD"), dynval.Double(1), dynval.Int(1), dynval.Null{}},
	}

	written, err := s.Export(context.Background(), "trades", tradeColumns(), dataset)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
}

func TestExportReplacesExistingTable(t *testing.T) {
	s := openTestStore(t)
	cols := []result.Column{{Name: "x", Type: "LONG"}}

	_, err := s.Export(context.Background(), "t", cols, [][]dynval.Value{{dynval.Int(1)}, {dynval.Int(2)}})
	require.NoError(t, err)

	written, err := s.Export(context.Background(), "t", cols, [][]dynval.Value{{dynval.Int(3)}})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT count(*) FROM t`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestExportCompositeCellsStoredAsJSON(t *testing.T) {
	s := openTestStore(t)
	cols := []result.Column{{Name: "v", Type: "STRING"}}

	dataset := [][]dynval.Value{
		{dynval.Array{dynval.Int(1), dynval.Int(2)}},
	}
	_, err := s.Export(context.Background(), "t", cols, dataset)
	require.NoError(t, err)

	var v string
	require.NoError(t, s.DB().QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "[1,2]", v)
}

func TestExportNoColumns(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Export(context.Background(), "t", nil, nil)
	require.Error(t, err)
}

func TestAffinityMapping(t *testing.T) {
	assert.Equal(t, "INTEGER", affinity("LONG"))
	assert.Equal(t, "INTEGER", affinity("boolean"))
	assert.Equal(t, "REAL", affinity("DOUBLE"))
	assert.Equal(t, "TEXT", affinity("TIMESTAMP"))
	assert.Equal(t, "TEXT", affinity("SYMBOL"))
}
