package deployments

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/renegade-fi/devnet-deployer/pkg/types"
)

// Deployments are the contract addresses the deploy tool records in its
// deployments file, keyed by contract name.
type Deployments map[string]common.Address

// Load reads the deployments file at path. Entries that are not addresses
// are skipped.
func Load(path string) (Deployments, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments file %q: %w", path, err)
	}

	var file map[string]json.RawMessage
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deployments file %q: %w", path, err)
	}

	section, ok := file[types.DeploymentsKey]
	if !ok {
		return nil, fmt.Errorf("deployments file %q has no %q key", path, types.DeploymentsKey)
	}

	var entries map[string]interface{}
	if err := json.Unmarshal(section, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %q in %q: %w", types.DeploymentsKey, path, err)
	}

	d := make(Deployments, len(entries))
	for name, v := range entries {
		s, ok := v.(string)
		if !ok || !common.IsHexAddress(s) {
			continue
		}
		d[name] = common.HexToAddress(s)
	}

	return d, nil
}

// Proxy returns the darkpool proxy address, the entrypoint for clients.
func (d Deployments) Proxy() (common.Address, bool) {
	addr, ok := d[types.DarkpoolProxyContractKey]
	return addr, ok
}

// Names returns the recorded contract names in sorted order.
func (d Deployments) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report logs every address recorded at path. A file that cannot be read is
// logged as a warning; the deployment itself has already succeeded.
func Report(log *logrus.Entry, path string) {
	d, err := Load(path)
	if err != nil {
		log.Warnf("unable to report deployed contracts: %s", err)
		return
	}

	for _, name := range d.Names() {
		log.WithField("contract", name).Infof("deployed at %s", d[name].Hex())
	}

	if proxy, ok := d.Proxy(); ok {
		log.Infof("darkpool entrypoint is %s", proxy.Hex())
	} else {
		log.Warnf("deployments file %q has no %s entry", path, types.DarkpoolProxyContractKey)
	}
}
