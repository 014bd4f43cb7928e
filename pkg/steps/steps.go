// Package steps builds the ordered list of deploy tool invocations that make
// up a devnet deployment.
package steps

import (
	"fmt"
	"strings"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
	"github.com/renegade-fi/devnet-deployer/pkg/types"
)

// Step is one invocation of the deploy tool.
type Step struct {
	// Name labels the step in logs and errors.
	Name    string
	Command string
	Args    []string
	// Include is decided once, when the sequence is built.
	Include bool
}

// Sequence is the ordered list of included steps for a single run.
type Sequence []Step

// String renders the command line with secret values redacted.
func (s Step) String() string {
	parts := append([]string{s.Command}, s.Args...)
	for i := 1; i < len(parts); i++ {
		switch {
		case types.SecretFlags[parts[i-1]]:
			parts[i] = "<redacted>"
		case parts[i-1] == types.FlagRPCURL:
			parts[i] = config.RedactURL(parts[i])
		}
	}
	return strings.Join(parts, " ")
}

// Names returns the step names in execution order.
func (s Sequence) Names() []string {
	names := make([]string, 0, len(s))
	for _, step := range s {
		names = append(names, step.Name)
	}
	return names
}

// Build returns the deployment sequence for config: the verifier, merkle,
// darkpool and proxy deployments, followed by the verification key uploads
// when config.UploadVkeys is set. Contracts are deployed before anything
// that references them, so the order is fixed.
func Build(config *config.Config) Sequence {
	candidates := []Step{
		deployStylus(config, types.ContractVerifier, true),
		deployStylus(config, types.ContractMerkle, true),
		deployStylus(config, types.ContractDarkpool, true, darkpoolArgs(config)...),
		deployProxy(config),
	}

	for _, circuit := range types.VkeyCircuits {
		candidates = append(candidates, uploadVkey(config, circuit))
	}

	seq := make(Sequence, 0, len(candidates))
	for _, step := range candidates {
		if step.Include {
			seq = append(seq, step)
		}
	}

	return seq
}

func deployStylus(config *config.Config, contract string, include bool, extra ...string) Step {
	args := append([]string{types.FlagContract, contract}, sharedArgs(config)...)
	return Step{
		Name:    fmt.Sprintf("deploy-%s", contract),
		Command: types.CommandDeployStylus,
		Args:    append(args, extra...),
		Include: include,
	}
}

func deployProxy(config *config.Config) Step {
	return Step{
		Name:    fmt.Sprintf("deploy-%s", types.ContractProxy),
		Command: types.CommandDeployProxy,
		Args:    append([]string{types.FlagOwner, config.ProxyOwner}, sharedArgs(config)...),
		Include: true,
	}
}

func uploadVkey(config *config.Config, circuit string) Step {
	return Step{
		Name:    fmt.Sprintf("upload-vkey-%s", circuit),
		Command: types.CommandUploadVkey,
		Args:    append([]string{types.FlagCircuit, circuit}, sharedArgs(config)...),
		Include: config.UploadVkeys,
	}
}

func darkpoolArgs(config *config.Config) []string {
	if config.NoVerify {
		return []string{types.FlagNoVerify}
	}
	return nil
}

// sharedArgs returns a fresh slice on every call so no two steps share
// backing storage.
func sharedArgs(config *config.Config) []string {
	return []string{
		types.FlagPrivKey, config.PrivateKey,
		types.FlagRPCURL, config.RPCURL,
		types.FlagDeploymentsPath, config.DeploymentsPath,
	}
}
