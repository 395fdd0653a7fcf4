// Command beacon-chain-execd is a thin wiring entrypoint: it parses the
// execution-endpoint and authentication flags, builds an Execution API
// Client, and reports the execution chain's current head and deposit
// history starting point. The fork-choice driver that would actually
// consume this client in a running beacon node is out of scope (spec.md
// §1, "CLI and configuration loading" is the only concern this command
// carries).
package main

import (
	"context"
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/sentineld/beacon-execd/execution/auth"
	"github.com/sentineld/beacon-execd/execution/client"
)

var log = logrus.WithField("prefix", "beacon-chain-execd")

func main() {
	app := &cli.App{
		Name:  "beacon-chain-execd",
		Usage: "Reports execution-layer chain state through the Execution API Client",
		Flags: appFlags,
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("beacon-chain-execd exited with an error")
	}
}

func run(ctx *cli.Context) error {
	config, err := chainConfigFromContext(ctx)
	if err != nil {
		return errors.Wrap(err, "resolve chain configuration")
	}

	endpoints := endpointsFromContext(ctx)
	if len(endpoints) == 0 {
		log.Warn("no execution endpoints configured; calls will fail until one is provided")
	}

	headerSource, err := headerSourceFromContext(ctx)
	if err != nil {
		return errors.Wrap(err, "build authorization header source")
	}

	c := client.New(config, endpoints, headerSource)

	head, err := c.CurrentHeadNumber(context.Background())
	if err != nil {
		return errors.Wrap(err, "fetch current execution head number")
	}
	log.WithField("headBlockNumber", head).Info("connected to execution endpoint")

	firstDeposit, err := c.GetFirstDepositContractBlockNumber(context.Background())
	if err != nil {
		return errors.Wrap(err, "fetch first deposit contract block number")
	}
	if firstDeposit != nil {
		log.WithField("blockNumber", *firstDeposit).Info("deposit contract history starts at")
	} else {
		log.Info("no deposit contract history found yet")
	}

	return nil
}

// headerSourceFromContext builds a JWT-authenticated header source from
// the --jwt-secret file, or NoAuth if the flag is unset.
func headerSourceFromContext(ctx *cli.Context) (auth.HeaderSource, error) {
	path := ctx.String(jwtSecretFileFlag.Name)
	if path == "" {
		return auth.NoAuth{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read jwt secret file %s", path)
	}

	secretHex := strings.TrimSpace(string(raw))
	secretHex = strings.TrimPrefix(secretHex, "0x")
	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, errors.Wrap(err, "decode jwt secret as hex")
	}

	return auth.NewJWTHeaderSource(secret), nil
}
