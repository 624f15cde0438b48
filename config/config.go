package config

import (
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// NetworkKey selects the bitcoin network, one of mainnet, testnet or
	// regtest
	NetworkKey = "NETWORK"
	// ExplorerEndpointKey is the esplora HTTP endpoint to fetch chain data
	// from and to broadcast transactions to
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// ExplorerRequestsPerSecondKey caps the rate of requests towards the
	// explorer endpoint
	ExplorerRequestsPerSecondKey = "EXPLORER_REQUESTS_PER_SECOND"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DatadirKey is the local data directory
	DatadirKey = "DATADIR"

	// NetworkMainnet ...
	NetworkMainnet = "mainnet"
	// NetworkTestnet ...
	NetworkTestnet = "testnet"
	// NetworkRegtest ...
	NetworkRegtest = "regtest"
)

var defaultExplorerEndpoints = map[string]string{
	NetworkMainnet: "https://blockstream.info/api",
	NetworkTestnet: "https://blockstream.info/testnet/api",
	NetworkRegtest: "http://localhost:3001",
}

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("orangesats", false)

// InitConfig loads the configuration from the environment and validates
// it. Every key can be overridden by an env var carrying the ORANGESATS
// prefix, ie. ORANGESATS_NETWORK.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ORANGESATS")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, NetworkMainnet)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(ExplorerRequestsPerSecondKey, 10)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	log.SetLevel(log.Level(GetInt(LogLevelKey)))

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetNetwork returns the chain params of the configured network.
func GetNetwork() (*chaincfg.Params, error) {
	switch network := GetString(NetworkKey); network {
	case NetworkMainnet:
		return &chaincfg.MainNetParams, nil
	case NetworkTestnet:
		return &chaincfg.TestNet3Params, nil
	case NetworkRegtest:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %s", network)
	}
}

// GetExplorerEndpoint returns the configured explorer endpoint, falling
// back to the default one of the configured network.
func GetExplorerEndpoint() string {
	if endpoint := GetString(ExplorerEndpointKey); len(endpoint) > 0 {
		return endpoint
	}
	return defaultExplorerEndpoints[GetString(NetworkKey)]
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if _, err := GetNetwork(); err != nil {
		return err
	}

	logLevel := GetInt(LogLevelKey)
	if logLevel < 0 || logLevel > int(log.TraceLevel) {
		return fmt.Errorf(
			"%s must be in range [0, %d]", LogLevelKey, int(log.TraceLevel),
		)
	}

	rps := GetInt(ExplorerRequestsPerSecondKey)
	if rps <= 0 {
		return fmt.Errorf("%s must be a positive number", ExplorerRequestsPerSecondKey)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDatadir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
