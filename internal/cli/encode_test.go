package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCommandBracketed(t *testing.T) {
	out, err := runCommand(t, "encode", "--params", "testdata/params.yaml")
	require.NoError(t, err)
	assert.Equal(t, "filter[active]=true&limit=10&symbols[]=BTC-USD&symbols[]=ETH-USD\n", out)
}

func TestEncodeCommandRepeated(t *testing.T) {
	out, err := runCommand(t, "encode", "--params", "testdata/params.yaml", "--arrays", "repeated")
	require.NoError(t, err)
	assert.Equal(t, "filter[active]=true&limit=10&symbols=BTC-USD&symbols=ETH-USD\n", out)
}

func TestEncodeCommandSeparator(t *testing.T) {
	out, err := runCommand(t, "encode", "--params", "testdata/params.yaml", "--arrays", "separator")
	require.NoError(t, err)
	assert.Equal(t, "filter[active]=true&limit=10&symbols=BTC-USD,ETH-USD\n", out)
}

func TestEncodeCommandJSONFormat(t *testing.T) {
	out, err := runCommand(t, "--format", "json", "encode", "--params", "testdata/params.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			QueryString string `json:"query_string"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "filter[active]=true&limit=10&symbols[]=BTC-USD&symbols[]=ETH-USD", resp.Data.QueryString)
}

func TestEncodeCommandUnknownStrategy(t *testing.T) {
	_, err := runCommand(t, "encode", "--params", "testdata/params.yaml", "--arrays", "zigzag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown array strategy")
}

func TestEncodeCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, "encode", "--params", "testdata/absent.yaml")
	require.Error(t, err)
}
