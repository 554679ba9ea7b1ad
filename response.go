package srfax

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/vingd/srfax-go/soap"
)

// StatusSuccess is the status value the service reports on accepted requests.
const StatusSuccess = "Success"

// Kind discriminates the shapes a normalized result can take.
type Kind string

const (
	// KindEmpty is a success that carried no payload, such as a delete.
	KindEmpty Kind = "empty"
	// KindText is a scalar payload, such as a queued fax id or document
	// content.
	KindText Kind = "text"
	// KindRecord is a single structured entry.
	KindRecord Kind = "record"
	// KindList is a sequence of records and scalars.
	KindList Kind = "list"
)

// Record is one structured reply entry with its field values.
type Record map[string]any

// Result is the normalized payload of a successful call. Exactly one of the
// shape accessors carries data, according to Kind.
type Result struct {
	kind   Kind
	text   string
	record Record
	list   []any
}

// Kind reports the shape of the result.
func (r *Result) Kind() Kind { return r.kind }

// Empty reports whether the call succeeded without a payload.
func (r *Result) Empty() bool { return r.kind == KindEmpty }

// Text returns the scalar payload, or "" for other kinds.
func (r *Result) Text() string { return r.text }

// Record returns the structured payload, or nil for other kinds.
func (r *Result) Record() Record { return r.record }

// List returns the sequence payload, or nil for other kinds. Elements are
// strings, Records, or the unconverted placeholders the service sent.
func (r *Result) List() []any { return r.list }

// Records collects the structured entries of the result: the record itself
// for KindRecord, every Record element for KindList, nil otherwise.
func (r *Result) Records() []Record {
	switch r.kind {
	case KindRecord:
		return []Record{r.record}
	case KindList:
		out := make([]Record, 0, len(r.list))
		for _, item := range r.list {
			if rec, ok := item.(Record); ok {
				out = append(out, rec)
			}
		}
		return out
	default:
		return nil
	}
}

// Decode round trips the payload through JSON into v, letting callers map
// records onto typed structs such as []InboxFax.
func (r *Result) Decode(v any) error {
	data, err := json.Marshal(r.payload())
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

// Bytes decodes a text result from base64, as returned by fax retrieval.
func (r *Result) Bytes() ([]byte, error) {
	if r.kind != KindText {
		return nil, fmt.Errorf("result holds %s, not text", r.kind)
	}
	data, err := base64.StdEncoding.DecodeString(r.text)
	if err != nil {
		return nil, fmt.Errorf("decode result content: %w", err)
	}
	return data, nil
}

// normalizeReply validates the raw reply shape and converts it into a
// Result, or a classified error. An unusable reply is retryable on the
// assumption the service hiccuped; an explicit non success status is not.
func normalizeReply(reply soap.RawReply) (*Result, error) {
	if len(reply) == 0 {
		return nil, invalidResponse("empty reply from service", nil)
	}
	status, hasStatus := reply["Status"]
	rawResult, hasResult := reply["Result"]
	if !hasStatus || !hasResult {
		return nil, invalidResponse(fmt.Sprintf("reply is missing status and/or result: %v", reply), nil)
	}

	payload, err := coerceResult(rawResult)
	if err != nil {
		return nil, invalidResponse("could not convert result payload", err)
	}

	if fmt.Sprint(status) != StatusSuccess {
		return nil, &Error{Code: CodeRequestFailed, Message: failureMessage(payload)}
	}
	return resultOf(payload), nil
}

// failureMessage extracts the service error from a rejected reply: the
// ErrorCode value when the payload is a single record carrying one, the
// whole payload otherwise.
func failureMessage(payload any) string {
	if list, ok := payload.([]any); ok && len(list) == 1 {
		if rec, ok := list[0].(Record); ok {
			if code, ok := rec["ErrorCode"]; ok {
				return fmt.Sprint(code)
			}
		}
	}
	return fmt.Sprint(payload)
}

// coerceResult reduces the arbitrarily typed result payload to the closed
// set nil, string, Record, or []any of those.
func coerceResult(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case []any:
		return coerceList(v)
	}

	// Anything else round trips through JSON once and is rerouted by its
	// generic shape.
	var generic any
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("serialize result: %w", err)
	}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("deserialize result: %w", err)
	}
	switch v := generic.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case []any:
		return coerceList(v)
	case map[string]any:
		return Record(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// coerceList converts list elements in place order: empty placeholders stay
// untouched, strings stay strings, everything else must convert to a Record.
func coerceList(list []any) ([]any, error) {
	out := make([]any, len(list))
	for i, el := range list {
		if isEmptyValue(el) {
			out[i] = el
			continue
		}
		if s, ok := el.(string); ok {
			out[i] = s
			continue
		}
		rec, err := coerceRecord(el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = rec
	}
	return out, nil
}

func coerceRecord(el any) (Record, error) {
	data, err := json.Marshal(el)
	if err != nil {
		return nil, fmt.Errorf("serialize record: %w", err)
	}
	rec := Record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("value %v is not a record: %w", el, err)
	}
	return rec, nil
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

func resultOf(payload any) *Result {
	switch v := payload.(type) {
	case nil:
		return &Result{kind: KindEmpty}
	case string:
		return &Result{kind: KindText, text: v}
	case Record:
		return &Result{kind: KindRecord, record: v}
	case map[string]any:
		return &Result{kind: KindRecord, record: Record(v)}
	case []any:
		return &Result{kind: KindList, list: v}
	default:
		return &Result{kind: KindText, text: fmt.Sprint(v)}
	}
}

// singleItem unwraps a one element list to its sole entry. Status and
// retrieval replies arrive as single item sequences.
func singleItem(res *Result) *Result {
	if res.kind != KindList || len(res.list) != 1 {
		return res
	}
	return resultOf(res.list[0])
}

// payload reverses the shape split for JSON decoding.
func (r *Result) payload() any {
	switch r.kind {
	case KindText:
		return r.text
	case KindRecord:
		return r.record
	case KindList:
		return r.list
	default:
		return nil
	}
}
