package authorization

import (
	"encoding/base64"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "authorization")

// Endpoint is a parsed "url[,Method value]" specification for a single
// execution-node endpoint.
type Endpoint struct {
	Url  string
	Auth Data
}

// HTTPEndpoint parses raw into an Endpoint. The accepted shapes are:
//
//	http://host:port
//	http://host:port,Basic username:password
//	http://host:port,Bearer token
//
// Whitespace around the URL and around the auth method/value is trimmed.
// Anything that doesn't parse cleanly into exactly zero or one auth
// component is logged and treated as unauthorized, matching
// beacon-chain/execution's tolerant parsing.
func HTTPEndpoint(raw string) Endpoint {
	parts := strings.Split(raw, ",")
	url := strings.TrimSpace(parts[0])

	if len(parts) == 1 {
		return Endpoint{Url: url}
	}

	if len(parts) > 2 {
		log.WithField("endpoint", url).Warn("Skipping authorization: too many comma-separated segments")
		return Endpoint{Url: url}
	}

	authSpec := strings.TrimSpace(parts[1])
	fields := strings.Fields(authSpec)
	if len(fields) != 2 {
		log.WithField("endpoint", url).Warn("Skipping authorization: malformed auth specification")
		return Endpoint{Url: url}
	}

	method := fields[0]
	value := fields[1]

	switch method {
	case "Basic":
		return Endpoint{Url: url, Auth: Data{Method: Basic, Value: base64.StdEncoding.EncodeToString([]byte(value))}}
	case "Bearer":
		return Endpoint{Url: url, Auth: Data{Method: Bearer, Value: value}}
	default:
		log.WithField("endpoint", url).Warn("Skipping authorization: unrecognized method")
		return Endpoint{Url: url}
	}
}
