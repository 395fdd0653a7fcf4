package main

import "github.com/urfave/cli/v2"

var (
	httpWeb3ProviderFlag = &cli.StringFlag{
		Name:  "http-web3provider",
		Usage: "A mainnet endpoint URL for a web3 provider, preferred over fallback-web3provider. May carry a static auth suffix: \"url,Basic user:pass\" or \"url,Bearer token\"",
	}
	fallbackWeb3ProviderFlag = &cli.StringSliceFlag{
		Name:  "fallback-web3provider",
		Usage: "A mainnet web3 provider URL. May be repeated to provide ordered fallback endpoints, each optionally suffixed with \",Basic user:pass\" or \",Bearer token\"",
	}
	jwtSecretFileFlag = &cli.StringFlag{
		Name:  "jwt-secret",
		Usage: "Path to a file holding the shared secret used to authenticate Engine API requests",
	}
	depositContractFlag = &cli.StringFlag{
		Name:  "deposit-contract",
		Usage: "Override the deposit contract address; defaults to the mainnet address",
	}
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "Chain configuration to use: mainnet or minimal",
		Value: "mainnet",
	}
)

var appFlags = []cli.Flag{
	httpWeb3ProviderFlag,
	fallbackWeb3ProviderFlag,
	jwtSecretFileFlag,
	depositContractFlag,
	networkFlag,
}
