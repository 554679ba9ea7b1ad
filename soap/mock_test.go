package soap_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vingd/srfax-go/soap"
)

func TestMockSuccessQueueFax(t *testing.T) {
	mock := soap.NewMock(zerolog.Nop())

	reply, err := mock.Invoke(context.Background(), soap.MethodQueueFax, map[string]any{"access_id": "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply["Status"] != "Success" {
		t.Fatalf("expected success status, got %v", reply["Status"])
	}
	id, ok := reply["Result"].(string)
	if !ok || id == "" {
		t.Fatalf("expected fax detail id text, got %v", reply["Result"])
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		t.Fatalf("expected numeric detail id, got %q", id)
	}
}

func TestMockSuccessFolders(t *testing.T) {
	fixed := time.Date(2026, time.May, 1, 12, 30, 0, 0, time.UTC)
	mock := soap.NewMock(zerolog.Nop(), soap.WithClock(func() time.Time { return fixed }))

	reply, err := mock.Invoke(context.Background(), soap.MethodGetFaxInbox, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := reply["Result"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected two inbox entries, got %v", reply["Result"])
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		t.Fatalf("expected record entries, got %T", list[0])
	}
	if first["ReceiveStatus"] != "Ok" {
		t.Fatalf("unexpected record: %v", first)
	}
	wantEpoch := strconv.FormatInt(fixed.Add(-2*time.Hour).Unix(), 10)
	if first["EpochTime"] != wantEpoch {
		t.Fatalf("expected clock driven epoch %s, got %v", wantEpoch, first["EpochTime"])
	}

	reply, err = mock.Invoke(context.Background(), soap.MethodGetFaxOutbox, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list, ok := reply["Result"].([]any); !ok || len(list) != 2 {
		t.Fatalf("expected two outbox entries, got %v", reply["Result"])
	}
}

func TestMockSuccessDeleteHasNoPayload(t *testing.T) {
	mock := soap.NewMock(zerolog.Nop())

	reply, err := mock.Invoke(context.Background(), soap.MethodDeleteFax, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, present := reply["Result"]
	if !present {
		t.Fatalf("expected result key to be present")
	}
	if result != nil {
		t.Fatalf("expected nil result, got %v", result)
	}
}

func TestMockFailureScenario(t *testing.T) {
	mock := soap.NewMock(zerolog.Nop(), soap.WithScenario(soap.ScenarioFailure))

	reply, err := mock.Invoke(context.Background(), soap.MethodQueueFax, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply["Status"] != "Failed" {
		t.Fatalf("expected failed status, got %v", reply["Status"])
	}
	list, ok := reply["Result"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected single error record, got %v", reply["Result"])
	}
	record, ok := list[0].(map[string]any)
	if !ok || record["ErrorCode"] == "" {
		t.Fatalf("expected error code record, got %v", list[0])
	}
}

func TestMockInvalidScenario(t *testing.T) {
	mock := soap.NewMock(zerolog.Nop(), soap.WithScenario(soap.ScenarioInvalid))

	reply, err := mock.Invoke(context.Background(), soap.MethodQueueFax, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reply["Status"]; ok {
		t.Fatalf("expected reply without status, got %v", reply)
	}
}

func TestMockTransportScenario(t *testing.T) {
	cause := errors.New("boom")
	mock := soap.NewMock(zerolog.Nop(), soap.WithScenario(soap.ScenarioTransport), soap.WithError(cause))

	_, err := mock.Invoke(context.Background(), soap.MethodQueueFax, nil)
	if !errors.Is(err, cause) {
		t.Fatalf("expected configured transport error, got %v", err)
	}
}

func TestMockCannedReplyWinsOverScenario(t *testing.T) {
	canned := soap.RawReply{"Status": "Success", "Result": "42"}
	mock := soap.NewMock(zerolog.Nop(), soap.WithScenario(soap.ScenarioFailure), soap.WithReply(soap.MethodQueueFax, canned))

	reply, err := mock.Invoke(context.Background(), soap.MethodQueueFax, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply["Result"] != "42" {
		t.Fatalf("expected canned reply, got %v", reply)
	}

	reply, err = mock.Invoke(context.Background(), soap.MethodDeleteFax, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply["Status"] != "Failed" {
		t.Fatalf("expected scenario reply for other methods, got %v", reply)
	}
}

func TestMockRecordsCalls(t *testing.T) {
	mock := soap.NewMock(zerolog.Nop())

	params := map[string]any{"access_id": "1", "sPeriod": "ALL"}
	if _, err := mock.Invoke(context.Background(), soap.MethodGetFaxInbox, params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params["sPeriod"] = "MUTATED"

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one call, got %d", len(calls))
	}
	if calls[0].Method != soap.MethodGetFaxInbox {
		t.Fatalf("unexpected method: %s", calls[0].Method)
	}
	if calls[0].Params["sPeriod"] != "ALL" {
		t.Fatalf("expected recorded params isolated from caller mutation, got %v", calls[0].Params["sPeriod"])
	}

	mock.Reset()
	if len(mock.Calls()) != 0 {
		t.Fatalf("expected no calls after reset")
	}

	if _, ok := mock.LastCall(); ok {
		t.Fatalf("expected no last call after reset")
	}
}

func TestMockLatencyRespectsCancellation(t *testing.T) {
	mock := soap.NewMock(zerolog.Nop(), soap.WithLatency(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mock.Invoke(ctx, soap.MethodQueueFax, nil); err == nil {
		t.Fatalf("expected context cancellation error")
	}
}

func TestMockTimeoutScenarioWaitsForContext(t *testing.T) {
	mock := soap.NewMock(zerolog.Nop(), soap.WithScenario(soap.ScenarioTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := mock.Invoke(ctx, soap.MethodQueueFax, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if time.Since(start) < 15*time.Millisecond {
		t.Fatalf("expected call to block until deadline")
	}
}
