// Package questdb is a client library for a columnar query database reached
// over an HTTP query endpoint. The hard core lives in the subpackages:
// queryenc encodes parameter records into percent-encoded query strings, and
// dynval + result decode columnar JSON responses into caller-chosen record
// types. This package composes the two pipelines around an injected
// transport collaborator; it performs no network I/O of its own.
package questdb

import (
	"context"
	"fmt"

	"github.com/gopsql/logger"

	"github.com/swift-glide/questdb-go/queryenc"
	"github.com/swift-glide/questdb-go/result"
)

// RoundTripper is the transport collaborator boundary. Implementations own
// everything this library does not: connections, retries, authentication,
// timeouts. Exec sends the assembled query string to the query endpoint and
// returns the raw response payload.
type RoundTripper interface {
	Exec(ctx context.Context, rawQuery string) ([]byte, error)
}

// RoundTripperFunc adapts a function to the RoundTripper interface.
type RoundTripperFunc func(ctx context.Context, rawQuery string) ([]byte, error)

// Exec implements RoundTripper.
func (f RoundTripperFunc) Exec(ctx context.Context, rawQuery string) ([]byte, error) {
	return f(ctx, rawQuery)
}

// Client runs statements through an injected transport. Both codec pipelines
// are pure and share no state across calls, so a Client is safe for
// concurrent use.
type Client struct {
	transport RoundTripper
	logger    logger.Logger
	encoder   *queryenc.Encoder
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the client logger. Use logger.StandardLogger to print
// statements to the console; by default nothing is logged.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithEncoderOptions configures the parameter encoder (array strategy,
// separator, date encoding).
func WithEncoderOptions(opts ...queryenc.Option) ClientOption {
	return func(c *Client) { c.encoder = queryenc.NewEncoder(opts...) }
}

// NewClient creates a Client around the given transport.
func NewClient(rt RoundTripper, opts ...ClientOption) *Client {
	c := &Client{
		transport: rt,
		logger:    logger.NoopLogger,
		encoder:   queryenc.NewEncoder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query encodes params, appends them to the statement, delegates to the
// transport, and decodes the columnar envelope. A server-reported error
// surfaces as *ServerError alongside the decoded response.
func (c *Client) Query(ctx context.Context, stmt string, params queryenc.Encodable) (*result.Response, error) {
	rawQuery := "query=" + queryenc.Escape(stmt)
	if params != nil {
		encoded, err := c.encoder.Encode(params)
		if err != nil {
			return nil, err
		}
		if encoded != "" {
			rawQuery += "&" + encoded
		}
	}

	c.logger.Debug("exec", rawQuery)
	payload, err := c.transport.Exec(ctx, rawQuery)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}

	resp, err := result.Parse(payload)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		serr := &ServerError{Query: resp.Query, Message: resp.Error, Position: resp.Position}
		c.logger.Error(serr.Error())
		return resp, serr
	}
	return resp, nil
}

// QueryAs runs Query and projects the dataset into records of type T. Rows
// that do not match the column count or that T fails to decode are dropped
// silently, per the projection contract.
func QueryAs[T any, PT result.RecordPtr[T]](ctx context.Context, c *Client, stmt string, params queryenc.Encodable) ([]T, error) {
	resp, err := c.Query(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	return result.Project[T, PT](resp.Columns, resp.Dataset), nil
}
