package deployments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const proxyAddr = "0x3f1eae7d46d88f08fc2f8ed27fcb2ab183eb2d0e"

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deployments.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `{
  "deployments": {
    "darkpool_proxy_contract": "`+proxyAddr+`",
    "darkpool_contract": "0x0000000000000000000000000000000000000abc",
    "deploy_block": 12
  }
}`)

	d, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"darkpool_contract", "darkpool_proxy_contract"}, d.Names())

	proxy, ok := d.Proxy()
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress(proxyAddr), proxy)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"not json":       "deployments:",
		"no deployments": `{"contracts": {}}`,
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, contents))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	logger, hook := test.NewNullLogger()
	log := logrus.NewEntry(logger)

	Report(log, writeFile(t, `{"deployments": {"darkpool_proxy_contract": "`+proxyAddr+`"}}`))
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, common.HexToAddress(proxyAddr).Hex())

	hook.Reset()
	Report(log, filepath.Join(t.TempDir(), "missing.json"))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
