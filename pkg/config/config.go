package config

import (
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/crypto/signer"
)

// EnvPrefix is prepended to every environment override, e.g. UPDATER_RPC_URL
const EnvPrefix = "updater"

type HTTPConfig struct {
	Port int    `yaml:"port" envconfig:"PORT"`
	Host string `yaml:"host" envconfig:"HOST"`
}

type MetricConfig struct {
	Port int `yaml:"port" envconfig:"PORT"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type Config struct {
	// Name is reported by the info endpoint
	Name string `yaml:"name" envconfig:"NAME"`

	// JSON-RPC endpoint of the chain the oracle readers live on
	RPCURL string `yaml:"rpc_url" envconfig:"RPC_URL"`

	// ChainID skips the eth_chainId lookup when non-zero
	ChainID int64 `yaml:"chain_id" envconfig:"CHAIN_ID"`

	// Signing key, either raw hex or an encrypted keystore file
	PrivateKey       string `yaml:"private_key" envconfig:"PRIVATE_KEY"`
	KeystorePath     string `yaml:"keystore_path" envconfig:"KEYSTORE_PATH"`
	KeystorePassword string `yaml:"keystore_password" envconfig:"KEYSTORE_PASSWORD"`

	// BandOracleReader contracts updated every cycle, in this order
	ContractAddresses []string `yaml:"contract_addresses" envconfig:"CONTRACT_ADDRESSES"`

	UpdateIntervalSeconds int `yaml:"update_interval_seconds" envconfig:"UPDATE_INTERVAL_SECONDS"`

	// CallTimeout bounds a single pullDataAndCache call; zero disables it
	CallTimeout time.Duration `yaml:"call_timeout" envconfig:"CALL_TIMEOUT"`

	HTTP    HTTPConfig   `yaml:"http" envconfig:"HTTP"`
	Metric  MetricConfig `yaml:"metric" envconfig:"METRIC"`
	Logging LogConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// LoadConfig loads the configuration from the given file path and applies
// UPDATER_* environment overrides. An empty path loads defaults plus env only.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		log.Debug().Str("path", path).Msg("Loading config from file")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Replace environment variables in the config file
		content := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process env overrides: %w", err)
	}

	cfg.ContractAddresses = normalizeAddresses(cfg.ContractAddresses)
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Name:                  "band-oracle-updater",
		UpdateIntervalSeconds: 60,
		CallTimeout:           2 * time.Minute,
		HTTP: HTTPConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Metric: MetricConfig{
			Port: 4014,
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// normalizeAddresses trims entries and drops the empty ones left by unset env vars
func normalizeAddresses(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		for _, part := range strings.Split(a, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// UpdateInterval returns the idle wait between cycles
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateIntervalSeconds) * time.Second
}

// ChainIDBig returns the configured chain id or nil when it should be fetched from the node
func (c *Config) ChainIDBig() *big.Int {
	if c.ChainID == 0 {
		return nil
	}
	return big.NewInt(c.ChainID)
}

// SignerConfig returns the signer settings; a keystore path takes precedence over a raw key
func (c *Config) SignerConfig() *signer.Config {
	return &signer.Config{
		SigningKey:     c.PrivateKey,
		SigningKeyPath: c.KeystorePath,
		Password:       c.KeystorePassword,
	}
}

// Targets parses ContractAddresses preserving order and duplicates
func (c *Config) Targets() ([]ethcommon.Address, error) {
	targets := make([]ethcommon.Address, 0, len(c.ContractAddresses))
	for i, addr := range c.ContractAddresses {
		if !ethcommon.IsHexAddress(addr) {
			return nil, fmt.Errorf("contract address #%d %q is not a valid hex address", i, addr)
		}
		targets = append(targets, ethcommon.HexToAddress(addr))
	}
	return targets, nil
}
