package srfax

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vingd/srfax-go/config"
	"github.com/vingd/srfax-go/soap"
)

// Client submits fax operations to the service on behalf of one account.
// Methods are safe for concurrent use.
type Client struct {
	logger   zerolog.Logger
	endpoint soap.Endpoint

	accessID    string
	accessPwd   string
	callerID    string
	senderEmail string
	accountCode string
}

// Option configures optional Client behaviour.
type Option func(*Client)

// WithEndpoint injects the RPC endpoint, bypassing the config selected
// backend. Used to wire a mock in tests.
func WithEndpoint(ep soap.Endpoint) Option {
	return func(c *Client) {
		if ep != nil {
			c.endpoint = ep
		}
	}
}

// New builds a fax client from account credentials and defaults. AccessID
// and AccessPwd are required; CallerID, SenderEmail and AccountCode are
// account wide defaults that individual requests may override.
func New(cfg config.ClientConfig, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.AccessID) == "" {
		return nil, configErr("access id is required")
	}
	if cfg.AccessPwd == "" {
		return nil, configErr("access password is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	client := &Client{
		logger:      logger.With().Str("component", "fax_client").Logger(),
		accessID:    strings.TrimSpace(cfg.AccessID),
		accessPwd:   cfg.AccessPwd,
		callerID:    strings.TrimSpace(cfg.CallerID),
		senderEmail: strings.TrimSpace(cfg.SenderEmail),
		accountCode: strings.TrimSpace(cfg.AccountCode),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.endpoint == nil {
		ep, err := soap.NewEndpoint(soap.Config{
			Backend: cfg.Endpoint,
			URL:     cfg.URL,
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}, logger)
		if err != nil {
			return nil, &Error{Code: CodeConfiguration, Message: "endpoint setup failed", Cause: err}
		}
		client.endpoint = ep
	}
	return client, nil
}

// QueueFax submits documents for delivery to one or more destinations. A
// single destination queues a plain fax, several queue a broadcast.
func (c *Client) QueueFax(ctx context.Context, req QueueFaxRequest) (*Result, error) {
	params, err := c.queueFaxParams(req)
	if err != nil {
		return nil, c.reject(soap.MethodQueueFax, err)
	}
	return c.invoke(ctx, soap.MethodQueueFax, params)
}

// GetFaxStatus reports the delivery state of a queued fax by the id
// QueueFax returned.
func (c *Client) GetFaxStatus(ctx context.Context, faxDetailID string) (*Result, error) {
	params, err := c.faxStatusParams(faxDetailID)
	if err != nil {
		return nil, c.reject(soap.MethodGetFaxStatus, err)
	}
	res, err := c.invoke(ctx, soap.MethodGetFaxStatus, params)
	if err != nil {
		return nil, err
	}
	return singleItem(res), nil
}

// GetFaxInbox lists received faxes. An empty period lists everything.
func (c *Client) GetFaxInbox(ctx context.Context, period string) (*Result, error) {
	params, err := c.folderParams(period)
	if err != nil {
		return nil, c.reject(soap.MethodGetFaxInbox, err)
	}
	return c.invoke(ctx, soap.MethodGetFaxInbox, params)
}

// GetFaxOutbox lists sent faxes. An empty period lists everything.
func (c *Client) GetFaxOutbox(ctx context.Context, period string) (*Result, error) {
	params, err := c.folderParams(period)
	if err != nil {
		return nil, c.reject(soap.MethodGetFaxOutbox, err)
	}
	return c.invoke(ctx, soap.MethodGetFaxOutbox, params)
}

// RetrieveFax fetches the content of a stored fax by its filename, base64
// encoded in the result text.
func (c *Client) RetrieveFax(ctx context.Context, filename string, dir Direction) (*Result, error) {
	params, err := c.retrieveFaxParams(filename, dir)
	if err != nil {
		return nil, c.reject(soap.MethodRetrieveFax, err)
	}
	res, err := c.invoke(ctx, soap.MethodRetrieveFax, params)
	if err != nil {
		return nil, err
	}
	return singleItem(res), nil
}

// DeleteFax removes up to five stored faxes from a folder by filename.
func (c *Client) DeleteFax(ctx context.Context, dir Direction, filenames ...string) (*Result, error) {
	params, err := c.deleteFaxParams(dir, filenames)
	if err != nil {
		return nil, c.reject(soap.MethodDeleteFax, err)
	}
	return c.invoke(ctx, soap.MethodDeleteFax, params)
}

// invoke performs one endpoint call and normalizes the outcome. Endpoint
// failures are wrapped as retryable request errors; the reply itself decides
// the rest.
func (c *Client) invoke(ctx context.Context, method string, params map[string]any) (*Result, error) {
	log := c.logger.With().
		Str("method", method).
		Str("request_id", uuid.NewString()).
		Logger()

	reply, err := c.endpoint.Invoke(ctx, method, params)
	if err != nil {
		ferr := &Error{Code: CodeRequestFailed, Message: "soap request failed", Cause: err, Retryable: true}
		log.Warn().Err(ferr).Msg("fax request failed")
		return nil, ferr
	}

	res, err := normalizeReply(reply)
	if err != nil {
		log.Warn().Err(err).Msg("fax reply rejected")
		return nil, err
	}

	log.Debug().Str("result_kind", string(res.Kind())).Msg("fax request succeeded")
	return res, nil
}

// reject logs a request that never left the client.
func (c *Client) reject(method string, err error) error {
	c.logger.Warn().Str("method", method).Err(err).Msg("fax request rejected")
	return err
}
