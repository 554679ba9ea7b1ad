// Package soap provides the RPC endpoint the fax client speaks through: an
// Endpoint interface, a live implementation backed by the SRFax SOAP web
// service, and a scenario driven mock for tests and development.
package soap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultURL is the WSDL location of the production fax web service.
const DefaultURL = "https://www.srfax.com/SRF_UserFaxWebSrv.php?wsdl"

// Remote method names exposed by the fax web service.
const (
	MethodQueueFax     = "Queue_Fax"
	MethodGetFaxStatus = "Get_FaxStatus"
	MethodGetFaxInbox  = "Get_Fax_Inbox"
	MethodGetFaxOutbox = "Get_Fax_Outbox"
	MethodRetrieveFax  = "Retrieve_Fax"
	MethodDeleteFax    = "Delete_Fax"
)

// RawReply is the loosely typed reply an endpoint hands back: a status
// indicator plus a result payload whose shape varies by method (absent,
// scalar text, or a sequence of records and scalars).
type RawReply map[string]any

// Endpoint abstracts the remote RPC interface: one method name, one flat
// parameter mapping, one raw reply. Implementations must be safe for
// concurrent use.
type Endpoint interface {
	Invoke(ctx context.Context, method string, params map[string]any) (RawReply, error)
}

// Backends selectable through Config.
const (
	BackendSOAP = "soap"
	BackendMock = "mock"
)

// Config selects and configures an endpoint backend.
type Config struct {
	// Backend picks the implementation, BackendSOAP when empty.
	Backend string
	// URL is the WSDL location, DefaultURL when empty. Only the soap
	// backend uses it.
	URL string
	// Timeout bounds one round trip, including the WSDL fetch. Zero keeps
	// the client default.
	Timeout time.Duration
}

// NewEndpoint constructs the endpoint selected by cfg.Backend.
func NewEndpoint(cfg Config, logger zerolog.Logger) (Endpoint, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendSOAP
	}

	switch backend {
	case BackendSOAP:
		var opts []ClientOption
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		client, err := NewClient(cfg.URL, logger, opts...)
		if err != nil {
			return nil, fmt.Errorf("endpoint factory: %w", err)
		}
		logger.Info().Str("backend", BackendSOAP).Str("url", client.URL()).Msg("fax endpoint initialised")
		return client, nil
	case BackendMock:
		logger.Info().Str("backend", BackendMock).Msg("fax endpoint initialised")
		return NewMock(logger), nil
	default:
		return nil, fmt.Errorf("endpoint factory: unsupported backend %q", cfg.Backend)
	}
}
