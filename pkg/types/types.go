package types

const (
	CommandDeployStylus = "deploy-stylus"
	CommandDeployProxy  = "deploy-proxy"
	CommandUploadVkey   = "upload-vkey"

	ContractVerifier = "verifier"
	ContractMerkle   = "merkle"
	ContractDarkpool = "darkpool"
	ContractProxy    = "proxy"

	CircuitValidWalletCreate = "valid-wallet-create"
	CircuitValidWalletUpdate = "valid-wallet-update"
	CircuitValidCommitments  = "valid-commitments"
	CircuitValidReblind      = "valid-reblind"
	CircuitValidMatchSettle  = "valid-match-settle"

	FlagContract        = "--contract"
	FlagCircuit         = "--circuit"
	FlagOwner           = "--owner"
	FlagNoVerify        = "--no-verify"
	FlagPrivKey         = "--priv-key"
	FlagRPCURL          = "--rpc-url"
	FlagDeploymentsPath = "--deployments-path"

	// Keys of the deployments file written by the deploy tool.
	DeploymentsKey           = "deployments"
	DarkpoolProxyContractKey = "darkpool_proxy_contract"

	DefaultDevnetRPCURL   = "http://sequencer:8547"
	DefaultDeployerBinary = "scripts"
)

var (
	// VkeyCircuits is the fixed upload order of the verification keys.
	VkeyCircuits = []string{
		CircuitValidWalletCreate,
		CircuitValidWalletUpdate,
		CircuitValidCommitments,
		CircuitValidReblind,
		CircuitValidMatchSettle,
	}

	// SecretFlags have their values redacted whenever a command line is logged.
	SecretFlags = map[string]bool{
		FlagPrivKey: true,
	}
)
