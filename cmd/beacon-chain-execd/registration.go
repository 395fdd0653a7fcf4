package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/sentineld/beacon-execd/config/params"
)

// endpointsFromContext builds the ordered endpoint list: the preferred
// primary provider first (if set), followed by every fallback in flag
// order, matching prysm's PowchainPreregistration idiom of combining
// http-web3provider with fallback-web3provider. Each flag value is passed
// through verbatim, so a per-endpoint static auth suffix ("url,Basic
// user:pass" / "url,Bearer token") survives into client.New, which parses
// it via network/authorization.HTTPEndpoint.
func endpointsFromContext(ctx *cli.Context) []string {
	var endpoints []string
	if primary := ctx.String(httpWeb3ProviderFlag.Name); primary != "" {
		endpoints = append(endpoints, primary)
	}
	endpoints = append(endpoints, ctx.StringSlice(fallbackWeb3ProviderFlag.Name)...)
	return endpoints
}

// chainConfigFromContext resolves the --network flag into a Config,
// optionally overriding the deposit contract address from --deposit-contract.
func chainConfigFromContext(ctx *cli.Context) (*params.Config, error) {
	var config *params.Config
	switch ctx.String(networkFlag.Name) {
	case "", "mainnet":
		config = params.Mainnet()
	case "minimal":
		config = params.Minimal()
	default:
		return nil, errors.Errorf("unrecognized --network value %q", ctx.String(networkFlag.Name))
	}

	if raw := ctx.String(depositContractFlag.Name); raw != "" {
		if !common.IsHexAddress(raw) {
			return nil, errors.Errorf("--deposit-contract %q is not a valid hex address", raw)
		}
		config = config.Copy()
		config.DepositContractAddress = common.HexToAddress(raw)
	}

	return config, nil
}
