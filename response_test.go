package srfax

import (
	"strings"
	"testing"

	"github.com/vingd/srfax-go/soap"
)

func TestNormalizeReplyEmptyReply(t *testing.T) {
	_, err := normalizeReply(soap.RawReply{})
	if err == nil {
		t.Fatalf("expected error for empty reply")
	}
	if !IsCode(err, CodeInvalidResponse) {
		t.Fatalf("expected invalid response error, got %v", err)
	}
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error")
	}
}

func TestNormalizeReplyMissingFields(t *testing.T) {
	cases := map[string]soap.RawReply{
		"no_status": {"Result": "678812512"},
		"no_result": {"Status": "Success"},
		"neither":   {"Outcome": "ok"},
	}

	for name, reply := range cases {
		reply := reply
		t.Run(name, func(t *testing.T) {
			_, err := normalizeReply(reply)
			if err == nil {
				t.Fatalf("expected error for incomplete reply")
			}
			if !IsCode(err, CodeInvalidResponse) {
				t.Fatalf("expected invalid response error, got %v", err)
			}
			if !IsRetryable(err) {
				t.Fatalf("expected retryable error")
			}
		})
	}
}

func TestNormalizeReplyFailureWithErrorCode(t *testing.T) {
	_, err := normalizeReply(soap.RawReply{
		"Status": "Failed",
		"Result": []any{map[string]any{"ErrorCode": "Invalid Access Code / Password"}},
	})
	if err == nil {
		t.Fatalf("expected error for failed status")
	}

	fe, ok := AsError(err)
	if !ok {
		t.Fatalf("expected classified error, got %T", err)
	}
	if fe.Code != CodeRequestFailed {
		t.Fatalf("expected request failed code, got %s", fe.Code)
	}
	if fe.Message != "Invalid Access Code / Password" {
		t.Fatalf("expected bare error code message, got %q", fe.Message)
	}
	if fe.Retryable {
		t.Fatalf("expected explicit rejection to be non retryable")
	}
}

func TestNormalizeReplyFailureWithoutErrorCode(t *testing.T) {
	_, err := normalizeReply(soap.RawReply{
		"Status": "Failed",
		"Result": "access denied",
	})
	if err == nil {
		t.Fatalf("expected error for failed status")
	}
	fe, ok := AsError(err)
	if !ok || fe.Code != CodeRequestFailed {
		t.Fatalf("expected request failed error, got %v", err)
	}
	if !strings.Contains(fe.Message, "access denied") {
		t.Fatalf("expected whole payload in message, got %q", fe.Message)
	}
}

func TestNormalizeReplyFailureWithMultipleRecords(t *testing.T) {
	_, err := normalizeReply(soap.RawReply{
		"Status": "Failed",
		"Result": []any{
			map[string]any{"ErrorCode": "E001"},
			map[string]any{"ErrorCode": "E002"},
		},
	})
	if err == nil {
		t.Fatalf("expected error for failed status")
	}
	fe, _ := AsError(err)
	if fe.Message == "E001" {
		t.Fatalf("expected whole payload for multi record failures, got %q", fe.Message)
	}
}

func TestNormalizeReplyNullResultMeansAccepted(t *testing.T) {
	res, err := normalizeReply(soap.RawReply{"Status": "Success", "Result": nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Empty() {
		t.Fatalf("expected empty result, got kind %s", res.Kind())
	}
}

func TestNormalizeReplyTextResult(t *testing.T) {
	res, err := normalizeReply(soap.RawReply{"Status": "Success", "Result": "678812512"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind() != KindText || res.Text() != "678812512" {
		t.Fatalf("expected text result, got kind %s text %q", res.Kind(), res.Text())
	}
}

func TestNormalizeReplyStringListPreserved(t *testing.T) {
	res, err := normalizeReply(soap.RawReply{"Status": "Success", "Result": []any{"a", "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind() != KindList {
		t.Fatalf("expected list result, got %s", res.Kind())
	}
	list := res.List()
	if len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Fatalf("expected string elements preserved, got %v", list)
	}
}

func TestNormalizeReplyListSkipsEmptyElements(t *testing.T) {
	res, err := normalizeReply(soap.RawReply{
		"Status": "Success",
		"Result": []any{nil, "", map[string]any{"FileName": "a.pdf"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := res.List()
	if len(list) != 3 {
		t.Fatalf("expected placeholders kept, got %v", list)
	}
	if list[0] != nil {
		t.Fatalf("expected nil placeholder preserved, got %v", list[0])
	}
	if list[1] != "" {
		t.Fatalf("expected empty string preserved, got %v", list[1])
	}
	rec, ok := list[2].(Record)
	if !ok || rec["FileName"] != "a.pdf" {
		t.Fatalf("expected coerced record, got %v", list[2])
	}
}

func TestNormalizeReplyListRecordCoercion(t *testing.T) {
	type entry struct {
		FileName string `json:"FileName"`
		Pages    int    `json:"Pages"`
	}

	res, err := normalizeReply(soap.RawReply{
		"Status": "Success",
		"Result": []any{entry{FileName: "a.pdf", Pages: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := res.Records()
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0]["FileName"] != "a.pdf" {
		t.Fatalf("expected struct coerced to record, got %v", records[0])
	}
}

func TestNormalizeReplyUncoercibleElement(t *testing.T) {
	_, err := normalizeReply(soap.RawReply{
		"Status": "Success",
		"Result": []any{42},
	})
	if err == nil {
		t.Fatalf("expected error for uncoercible element")
	}
	fe, ok := AsError(err)
	if !ok || fe.Code != CodeInvalidResponse {
		t.Fatalf("expected invalid response error, got %v", err)
	}
	if !fe.Retryable {
		t.Fatalf("expected retryable error")
	}
	if fe.Cause == nil {
		t.Fatalf("expected conversion cause to be attached")
	}
}

func TestNormalizeReplyNonSuccessStatusValues(t *testing.T) {
	for _, status := range []string{"Failed", "failed", "SUCCESS", "Error"} {
		_, err := normalizeReply(soap.RawReply{"Status": status, "Result": "nope"})
		if err == nil {
			t.Fatalf("expected status %q to be rejected", status)
		}
		if !IsCode(err, CodeRequestFailed) {
			t.Fatalf("expected request failed for %q, got %v", status, err)
		}
	}
}

func TestSingleItemUnwrapsOneElementList(t *testing.T) {
	res := resultOf([]any{Record{"SentStatus": "Sent"}})
	unwrapped := singleItem(res)
	if unwrapped.Kind() != KindRecord {
		t.Fatalf("expected record after unwrap, got %s", unwrapped.Kind())
	}
	if unwrapped.Record()["SentStatus"] != "Sent" {
		t.Fatalf("unexpected record: %v", unwrapped.Record())
	}
}

func TestSingleItemLeavesOtherShapesAlone(t *testing.T) {
	list := resultOf([]any{"a", "b"})
	if got := singleItem(list); got.Kind() != KindList || len(got.List()) != 2 {
		t.Fatalf("expected two element list untouched, got %s", got.Kind())
	}

	text := resultOf("678812512")
	if got := singleItem(text); got.Kind() != KindText {
		t.Fatalf("expected text untouched, got %s", got.Kind())
	}

	empty := resultOf(nil)
	if got := singleItem(empty); !got.Empty() {
		t.Fatalf("expected empty untouched, got %s", got.Kind())
	}
}

func TestSingleItemUnwrapsToEmpty(t *testing.T) {
	res := singleItem(resultOf([]any{nil}))
	if !res.Empty() {
		t.Fatalf("expected nil element to unwrap to empty, got %s", res.Kind())
	}
}

func TestResultRecords(t *testing.T) {
	res := resultOf([]any{Record{"FileName": "a.pdf"}, "stray", Record{"FileName": "b.pdf"}})
	records := res.Records()
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	if records[0]["FileName"] != "a.pdf" || records[1]["FileName"] != "b.pdf" {
		t.Fatalf("unexpected records: %v", records)
	}

	if resultOf(nil).Records() != nil {
		t.Fatalf("expected no records for empty result")
	}
}

func TestResultDecode(t *testing.T) {
	res := resultOf([]any{
		Record{"FileName": "a.pdf", "Pages": "2", "EpochTime": "1767225600"},
		Record{"FileName": "b.pdf", "Pages": 3, "EpochTime": 1767312000},
	})

	var faxes []InboxFax
	if err := res.Decode(&faxes); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(faxes) != 2 {
		t.Fatalf("expected two faxes, got %d", len(faxes))
	}
	if faxes[0].FileName != "a.pdf" || faxes[0].Pages.Int64() != 2 {
		t.Fatalf("unexpected first fax: %+v", faxes[0])
	}
	if faxes[1].Pages.Int64() != 3 {
		t.Fatalf("expected numeric pages decoded, got %+v", faxes[1])
	}
}

func TestResultBytes(t *testing.T) {
	res := resultOf("aGVsbG8gZmF4")
	data, err := res.Bytes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello fax" {
		t.Fatalf("unexpected content: %q", data)
	}

	if _, err := resultOf(nil).Bytes(); err == nil {
		t.Fatalf("expected error for non text result")
	}
	if _, err := resultOf("not base64!").Bytes(); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}
