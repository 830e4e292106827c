package config

import (
	"crypto/ecdsa"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is used when CONFIG_PATH is not set.
	DefaultPath = "cfg/config.yaml"

	envConfigPath = "CONFIG_PATH"
	envPrivKey    = "GOFI_ETH_PRIV_KEY"
	envRPCURL     = "GOFI_RPC_URL"
	envDBPath     = "GOFI_DB_PATH"

	defaultFeeBP = 30
	maxFeeBP     = 10000
)

var (
	// ErrMissingRPCURL is returned when neither the file nor the environment
	// provides an RPC endpoint.
	ErrMissingRPCURL = errors.New("rpc_url is required")

	// ErrInvalid is returned for any other rejected setting.
	ErrInvalid = errors.New("invalid config")
)

// Config holds application configuration loaded from file.
type Config struct {
	RPCURL     string `yaml:"rpc_url"`
	DBPath     string `yaml:"db_path"`
	EthPrivKey string `yaml:"eth_priv_key"`

	SwapContract string `yaml:"swap_contract"`
	BaseToken    string `yaml:"base_token"`
	QuoteToken   string `yaml:"quote_token"`

	FeeBP         *uint32 `yaml:"fee_bp"`
	MinProfit     float64 `yaml:"min_profit"`
	MaxProfit     float64 `yaml:"max_profit"`
	DisplayProfit float64 `yaml:"display_profit"`
	GasLimit      uint64  `yaml:"gas_limit"`
	Workers       int     `yaml:"workers"`
	DryRun        *bool   `yaml:"dry_run"`

	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`

	LogLevel string `yaml:"log_level"`
}

// Path returns the config file location from CONFIG_PATH or DefaultPath.
func Path() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the config from a YAML file path. A .env file in the working
// directory is loaded first; secrets set in the environment override the file.
func Load(path string) (Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "os.ReadFile")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "yaml.Unmarshal")
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envPrivKey); v != "" {
		c.EthPrivKey = v
	}
	if v := os.Getenv(envRPCURL); v != "" {
		c.RPCURL = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		c.DBPath = v
	}
}

func (c *Config) applyDefaults() {
	const (
		defaultTimeout  = 5 * time.Second
		defaultGasLimit = 250000
	)

	if c.ListenAddr == "" {
		c.ListenAddr = ":1337"
	}
	if c.GraceTimeout == 0 {
		c.GraceTimeout = defaultTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaultTimeout
	}
	if c.DBPath == "" {
		c.DBPath = "gofi.db"
	}
	if c.FeeBP == nil {
		fee := uint32(defaultFeeBP)
		c.FeeBP = &fee
	}
	if c.GasLimit == 0 {
		c.GasLimit = defaultGasLimit
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.DryRun == nil {
		dry := true
		c.DryRun = &dry
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks required fields and ranges.
func (c Config) Validate() error {
	if c.RPCURL == "" {
		return ErrMissingRPCURL
	}
	if c.Fee() >= maxFeeBP {
		return errors.Wrapf(ErrInvalid, "fee_bp %d out of range", c.Fee())
	}
	if c.MinProfit < 0 || c.MaxProfit < 0 {
		return errors.Wrap(ErrInvalid, "profit bounds must be non-negative")
	}
	if c.MaxProfit > 0 && c.MinProfit > c.MaxProfit {
		return errors.Wrapf(ErrInvalid, "min_profit %v above max_profit %v", c.MinProfit, c.MaxProfit)
	}
	for name, addr := range map[string]string{
		"swap_contract": c.SwapContract,
		"base_token":    c.BaseToken,
		"quote_token":   c.QuoteToken,
	} {
		if addr != "" && !common.IsHexAddress(addr) {
			return errors.Wrapf(ErrInvalid, "%s %q is not an address", name, addr)
		}
	}
	return nil
}

// Fee returns fee_bp. An absent key means the Uniswap V2 default of 30; an
// explicit 0 is kept.
func (c Config) Fee() uint32 {
	if c.FeeBP == nil {
		return defaultFeeBP
	}
	return *c.FeeBP
}

// IsDryRun reports whether trades must only be logged, never sent.
func (c Config) IsDryRun() bool {
	return c.DryRun == nil || *c.DryRun
}

// Account parses eth_priv_key and returns the signing key with its address.
func (c Config) Account() (common.Address, *ecdsa.PrivateKey, error) {
	if c.EthPrivKey == "" {
		return common.Address{}, nil, errors.Wrap(ErrInvalid, "eth_priv_key is empty")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.EthPrivKey, "0x"))
	if err != nil {
		return common.Address{}, nil, errors.Wrap(err, "crypto.HexToECDSA")
	}
	return crypto.PubkeyToAddress(key.PublicKey), key, nil
}
