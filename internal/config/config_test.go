package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known development key (hardhat account #0).
const (
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "rpc_url: http://localhost:8545\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8545", cfg.RPCURL)
	assert.Equal(t, ":1337", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.GraceTimeout)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, "gofi.db", cfg.DBPath)
	assert.Equal(t, uint32(30), cfg.Fee())
	assert.Equal(t, uint64(250000), cfg.GasLimit)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.True(t, cfg.IsDryRun())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ZeroFee(t *testing.T) {
	path := writeConfig(t, "rpc_url: http://localhost:8545\nfee_bp: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.FeeBP)
	assert.Equal(t, uint32(0), cfg.Fee())
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
rpc_url: http://node:8545
db_path: /tmp/pools.db
swap_contract: "0x0000000000000000000000000000000000000001"
base_token: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
quote_token: "0xdAC17F958D2ee523a2206206994597C13D831ec7"
fee_bp: 25
min_profit: 0.03
max_profit: 2.0
display_profit: 0.01
gas_limit: 300000
workers: 3
dry_run: false
listen_addr: ":8080"
shutdown_timeout: 10s
request_timeout: 2s
read_header_timeout: 1s
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pools.db", cfg.DBPath)
	assert.Equal(t, uint32(25), cfg.Fee())
	assert.InDelta(t, 0.03, cfg.MinProfit, 1e-12)
	assert.InDelta(t, 2.0, cfg.MaxProfit, 1e-12)
	assert.Equal(t, uint64(300000), cfg.GasLimit)
	assert.Equal(t, 3, cfg.Workers)
	assert.False(t, cfg.IsDryRun())
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.GraceTimeout)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(envRPCURL, "http://env:8545")
	t.Setenv(envDBPath, "env.db")
	t.Setenv(envPrivKey, "0x"+testKey)

	path := writeConfig(t, "rpc_url: http://file:8545\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:8545", cfg.RPCURL)
	assert.Equal(t, "env.db", cfg.DBPath)

	addr, key, err := cfg.Account()
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, common.HexToAddress(testAddress), addr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "missing rpc", body: "listen_addr: \":1\"\n", want: ErrMissingRPCURL},
		{name: "fee out of range", body: "rpc_url: x\nfee_bp: 10000\n", want: ErrInvalid},
		{name: "profit bounds", body: "rpc_url: x\nmin_profit: 3\nmax_profit: 2\n", want: ErrInvalid},
		{name: "bad address", body: "rpc_url: x\nbase_token: weth\n", want: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_BadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "rpc_url: [unterminated\n"))
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv(envConfigPath, "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv(envConfigPath, "/etc/gofi.yaml")
	assert.Equal(t, "/etc/gofi.yaml", Path())
}

func TestAccount_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := Config{}.Account()
	require.ErrorIs(t, err, ErrInvalid)

	_, _, err = Config{EthPrivKey: "zz"}.Account()
	require.Error(t, err)
}
