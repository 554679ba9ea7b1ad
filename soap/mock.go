package soap

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scenario drives the behaviour of the mock endpoint.
type Scenario string

const (
	// ScenarioSuccess returns a fabricated successful reply per method.
	ScenarioSuccess Scenario = "success"
	// ScenarioFailure returns a reply the service rejected with an error code.
	ScenarioFailure Scenario = "failure"
	// ScenarioInvalid returns a reply without status or result fields.
	ScenarioInvalid Scenario = "invalid"
	// ScenarioTransport fails the call before any reply is produced.
	ScenarioTransport Scenario = "transport"
	// ScenarioTimeout blocks until the context is cancelled.
	ScenarioTimeout Scenario = "timeout"
)

// Call records one Invoke on the mock endpoint.
type Call struct {
	Method string
	Params map[string]any
}

// MockOption configures the mock endpoint.
type MockOption func(*MockEndpoint)

// WithScenario selects the behaviour of calls without a canned reply.
func WithScenario(s Scenario) MockOption {
	return func(m *MockEndpoint) { m.scenario = s }
}

// WithLatency makes every call wait before completing.
func WithLatency(d time.Duration) MockOption {
	return func(m *MockEndpoint) { m.latency = d }
}

// WithClock overrides the time source used for fabricated reply fields.
func WithClock(now func() time.Time) MockOption {
	return func(m *MockEndpoint) {
		if now != nil {
			m.now = now
		}
	}
}

// WithReply pins the reply returned for one method, regardless of scenario.
func WithReply(method string, reply RawReply) MockOption {
	return func(m *MockEndpoint) { m.replies[method] = reply }
}

// WithError overrides the transport error used by ScenarioTransport.
func WithError(err error) MockOption {
	return func(m *MockEndpoint) {
		if err != nil {
			m.transportErr = err
		}
	}
}

// MockEndpoint is an in-memory Endpoint for tests and development. It
// records every call and replies according to canned replies and the
// configured scenario. Safe for concurrent use.
type MockEndpoint struct {
	logger       zerolog.Logger
	scenario     Scenario
	latency      time.Duration
	now          func() time.Time
	transportErr error
	replies      map[string]RawReply

	mu    sync.Mutex
	rng   *rand.Rand
	calls []Call
}

// NewMock builds a mock endpoint, ScenarioSuccess by default.
func NewMock(logger zerolog.Logger, opts ...MockOption) *MockEndpoint {
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	m := &MockEndpoint{
		logger:       logger.With().Str("component", "mock_endpoint").Logger(),
		scenario:     ScenarioSuccess,
		now:          time.Now,
		transportErr: errors.New("mock endpoint: connection refused"),
		replies:      make(map[string]RawReply),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Invoke implements Endpoint.
func (m *MockEndpoint) Invoke(ctx context.Context, method string, params map[string]any) (RawReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	m.record(method, params)
	m.logger.Debug().Str("method", method).Str("scenario", string(m.scenario)).Msg("mock call")

	if reply, ok := m.replies[method]; ok {
		return reply, nil
	}

	switch m.scenario {
	case ScenarioFailure:
		return RawReply{
			"Status": "Failed",
			"Result": []any{map[string]any{"ErrorCode": "Invalid Access Code / Password"}},
		}, nil
	case ScenarioInvalid:
		return RawReply{"Outcome": "ok"}, nil
	case ScenarioTransport:
		return nil, m.transportErr
	case ScenarioTimeout:
		<-ctx.Done()
		return nil, ctx.Err()
	default:
		return m.successReply(method), nil
	}
}

// Calls returns a copy of every recorded call in order.
func (m *MockEndpoint) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent recorded call.
func (m *MockEndpoint) LastCall() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// Reset clears the recorded calls.
func (m *MockEndpoint) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockEndpoint) record(method string, params map[string]any) {
	copied := make(map[string]any, len(params))
	for key, value := range params {
		copied[key] = value
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: method, Params: copied})
}

func (m *MockEndpoint) successReply(method string) RawReply {
	now := m.now().UTC()
	switch method {
	case MethodQueueFax:
		m.mu.Lock()
		id := 700000000 + m.rng.Int63n(100000000)
		m.mu.Unlock()
		return RawReply{"Status": "Success", "Result": strconv.FormatInt(id, 10)}
	case MethodGetFaxStatus:
		return RawReply{"Status": "Success", "Result": []any{m.outboxRecord(now, 1)}}
	case MethodGetFaxInbox:
		return RawReply{"Status": "Success", "Result": []any{
			m.inboxRecord(now.Add(-2*time.Hour), 1),
			m.inboxRecord(now.Add(-30*time.Minute), 2),
		}}
	case MethodGetFaxOutbox:
		return RawReply{"Status": "Success", "Result": []any{
			m.outboxRecord(now.Add(-time.Hour), 1),
			m.outboxRecord(now.Add(-10*time.Minute), 2),
		}}
	case MethodRetrieveFax:
		return RawReply{"Status": "Success", "Result": []any{mockDocument}}
	case MethodDeleteFax:
		return RawReply{"Status": "Success", "Result": nil}
	default:
		return RawReply{"Status": "Success", "Result": nil}
	}
}

// mockDocument is "mock fax document" in base64, standing in for retrieved
// fax content.
const mockDocument = "bW9jayBmYXggZG9jdW1lbnQ="

func (m *MockEndpoint) inboxRecord(received time.Time, seq int) map[string]any {
	return map[string]any{
		"FileName":      fmt.Sprintf("%s-%04d_%d", received.Format("20060102150405"), 1100+seq, seq),
		"ReceiveStatus": "Ok",
		"Date":          received.Format("Jan 02/06 03:04 PM"),
		"EpochTime":     strconv.FormatInt(received.Unix(), 10),
		"CallerID":      "14165551234",
		"RemoteID":      "Mock Sender",
		"Pages":         "2",
		"Size":          "14580",
		"ViewedStatus":  "N",
	}
}

func (m *MockEndpoint) outboxRecord(sent time.Time, seq int) map[string]any {
	return map[string]any{
		"FileName":    fmt.Sprintf("%s-%04d_%d", sent.Format("20060102150405"), 2200+seq, seq),
		"SentStatus":  "Sent",
		"DateQueued":  sent.Add(-time.Minute).Format("Jan 02/06 03:04 PM"),
		"DateSent":    sent.Format("Jan 02/06 03:04 PM"),
		"EpochTime":   strconv.FormatInt(sent.Unix(), 10),
		"ToFaxNumber": "12125556789",
		"Pages":       "1",
		"Duration":    "38",
		"RemoteID":    "Mock Receiver",
		"ErrorCode":   "",
		"AccountCode": "",
		"Size":        "10240",
	}
}
