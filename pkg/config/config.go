package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvRPCURL          = "DEVNET_RPC_URL"
	EnvInitCheckAddr   = "INIT_CHECK_ADDRESS"
	EnvPrivateKey      = "DEVNET_PKEY"
	EnvDeploymentsPath = "DEPLOYMENTS_PATH"
	EnvProxyOwner      = "PROXY_OWNER"
	EnvNoVerify        = "NO_VERIFY"
	EnvUploadVkeys     = "UPLOAD_VKEYS"
)

var envKeys = map[string]string{
	"rpc_url":          EnvRPCURL,
	"init_check_addr":  EnvInitCheckAddr,
	"private_key":      EnvPrivateKey,
	"deployments_path": EnvDeploymentsPath,
	"proxy_owner":      EnvProxyOwner,
	"no_verify":        EnvNoVerify,
	"upload_vkeys":     EnvUploadVkeys,
}

// Config is the deployment configuration read once from the environment at
// startup. It must not be modified after FromEnv returns.
type Config struct {
	RPCURL          string
	InitCheckAddr   common.Address
	PrivateKey      string
	DeploymentsPath string
	ProxyOwner      string

	NoVerify    bool
	UploadVkeys bool
}

// FromEnv loads the given dotenv files, if any, then builds and validates a
// Config from the process environment. Variables already present in the
// environment take precedence over values from the files.
func FromEnv(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files %q: %w", envFiles, err)
		}
	}

	v := viper.New()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	noVerify, err := parseFlag(EnvNoVerify, v.GetString("no_verify"))
	if err != nil {
		return nil, err
	}

	uploadVkeys, err := parseFlag(EnvUploadVkeys, v.GetString("upload_vkeys"))
	if err != nil {
		return nil, err
	}

	initCheckAddr := strings.TrimSpace(v.GetString("init_check_addr"))
	if len(initCheckAddr) > 0 && !common.IsHexAddress(initCheckAddr) {
		return nil, fmt.Errorf("%s is not a hex address: %q", EnvInitCheckAddr, initCheckAddr)
	}
	if len(initCheckAddr) > 0 && common.HexToAddress(initCheckAddr) == (common.Address{}) {
		return nil, fmt.Errorf("%s must not be the zero address", EnvInitCheckAddr)
	}

	config := &Config{
		RPCURL:          strings.TrimSpace(v.GetString("rpc_url")),
		InitCheckAddr:   common.HexToAddress(initCheckAddr),
		PrivateKey:      strings.TrimSpace(v.GetString("private_key")),
		DeploymentsPath: strings.TrimSpace(v.GetString("deployments_path")),
		ProxyOwner:      strings.TrimSpace(v.GetString("proxy_owner")),
		NoVerify:        noVerify,
		UploadVkeys:     uploadVkeys,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate ensures every field the base sequence depends on is present and
// well formed.
func (c *Config) Validate() error {
	var missing []string
	if len(c.RPCURL) == 0 {
		missing = append(missing, EnvRPCURL)
	}
	if c.InitCheckAddr == (common.Address{}) {
		missing = append(missing, EnvInitCheckAddr)
	}
	if len(c.PrivateKey) == 0 {
		missing = append(missing, EnvPrivateKey)
	}
	if len(c.DeploymentsPath) == 0 {
		missing = append(missing, EnvDeploymentsPath)
	}
	if len(c.ProxyOwner) == 0 {
		missing = append(missing, EnvProxyOwner)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if !common.IsHexAddress(c.ProxyOwner) {
		return fmt.Errorf("%s is not a hex address: %q", EnvProxyOwner, c.ProxyOwner)
	}

	if _, err := c.SignerAddress(); err != nil {
		return err
	}

	return nil
}

// SignerAddress derives the address that signs every deployment transaction.
func (c *Config) SignerAddress() (common.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("%s is not a valid secp256k1 private key: %w", EnvPrivateKey, err)
	}

	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// RedactURL strips the credentials and query string that hosted RPC
// providers embed in endpoint URLs, so the result is safe to log.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}

	if u.User != nil {
		u.User = url.User("redacted")
	}
	if len(u.RawQuery) > 0 {
		u.RawQuery = "redacted"
	}
	u.Fragment = ""

	return u.String()
}

// parseFlag treats an unset or empty variable as false. Anything else must be
// a boolean literal.
func parseFlag(env, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q: %w", env, value, errors.Unwrap(err))
	}

	return b, nil
}
