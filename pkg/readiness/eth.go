package readiness

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var _ CodeFetcher = &EthCodeFetcher{}

// EthCodeFetcher queries eth_getCode over JSON-RPC. The connection is dialled
// on first use and re-dialled after a failed dial, so an endpoint that is not
// listening yet only fails individual queries.
type EthCodeFetcher struct {
	url    string
	client *ethclient.Client
}

func NewEthCodeFetcher(url string) *EthCodeFetcher {
	return &EthCodeFetcher{
		url: url,
	}
}

func (e *EthCodeFetcher) CodeAt(ctx context.Context, addr common.Address) ([]byte, error) {
	if e.client == nil {
		client, err := ethclient.DialContext(ctx, e.url)
		if err != nil {
			return nil, err
		}
		e.client = client
	}

	// A nil block number selects the latest state.
	return e.client.CodeAt(ctx, addr, nil)
}

func (e *EthCodeFetcher) Close() {
	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
}
