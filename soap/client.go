package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/tiaguinho/gosoap"
)

// defaultHTTPTimeout bounds a single SOAP round trip, including the WSDL
// fetch on first use. Fax documents can run to several megabytes.
const defaultHTTPTimeout = 30 * time.Second

// Client is the live Endpoint implementation. It speaks to the fax web
// service described by the WSDL at its configured URL. The underlying SOAP
// library keeps per call state on its handle, so Client serialises calls
// and is safe for concurrent use.
type Client struct {
	logger     zerolog.Logger
	url        string
	httpClient *http.Client

	mu   sync.Mutex
	conn *gosoap.Client
}

// ClientOption configures optional Client behaviour.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for SOAP round trips.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient builds a live endpoint for the service at rawURL, or DefaultURL
// when rawURL is empty. The WSDL is fetched lazily on the first call, not at
// construction.
func NewClient(rawURL string, logger zerolog.Logger, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(rawURL) == "" {
		rawURL = DefaultURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("soap client: invalid service url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("soap client: invalid service url %q", rawURL)
	}

	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	client := &Client{
		logger:     logger.With().Str("component", "soap_endpoint").Logger(),
		url:        rawURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// URL reports the WSDL location the client talks to.
func (c *Client) URL() string { return c.url }

// Invoke performs one SOAP call and decodes the reply body into a RawReply.
// The SOAP library has no context support of its own, so cancellation is
// honoured before the call and deadlines are enforced by the HTTP client
// timeout.
func (c *Client) Invoke(ctx context.Context, method string, params map[string]any) (RawReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, err := gosoap.SoapClient(c.url, c.httpClient)
		if err != nil {
			return nil, fmt.Errorf("soap client: connect %s: %w", c.url, err)
		}
		c.conn = conn
	}

	started := time.Now()
	res, err := c.conn.Call(method, gosoap.Params(params))
	if err != nil {
		return nil, fmt.Errorf("soap client: call %s: %w", method, err)
	}

	reply, err := decodeReply(res.Body)
	if err != nil {
		return nil, fmt.Errorf("soap client: decode %s reply: %w", method, err)
	}

	c.logger.Debug().
		Str("method", method).
		Dur("duration", time.Since(started)).
		Msg("soap call completed")
	return reply, nil
}

// decodeReply maps the reply body XML onto a RawReply. The reply container
// is located by its Status child; all sibling fields are carried over, with
// Result decoded into nil, scalar text, or a slice of records and scalars.
func decodeReply(body []byte) (RawReply, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty reply body")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("malformed reply xml: %w", err)
	}

	statusEl := findByTag(doc.Root(), "Status")
	if statusEl == nil {
		return RawReply{}, nil
	}
	container := statusEl.Parent()
	if container == nil {
		return RawReply{"Status": strings.TrimSpace(statusEl.Text())}, nil
	}

	reply := RawReply{}
	for _, field := range container.ChildElements() {
		if field.Tag == "Result" {
			reply["Result"] = decodeResult(field)
			continue
		}
		reply[field.Tag] = strings.TrimSpace(field.Text())
	}
	return reply, nil
}

// findByTag walks the element tree depth first and returns the first element
// whose local name matches tag, ignoring namespace prefixes.
func findByTag(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == tag {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findByTag(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// decodeResult converts a Result element: no content means nil, bare text is
// a scalar, child elements form a list whose items are either scalar text or
// a flat field record.
func decodeResult(el *etree.Element) any {
	children := el.ChildElements()
	if len(children) == 0 {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			return nil
		}
		return text
	}

	items := make([]any, 0, len(children))
	for _, item := range children {
		fields := item.ChildElements()
		if len(fields) == 0 {
			items = append(items, strings.TrimSpace(item.Text()))
			continue
		}
		record := make(map[string]any, len(fields))
		for _, field := range fields {
			record[field.Tag] = strings.TrimSpace(field.Text())
		}
		items = append(items, record)
	}
	return items
}
