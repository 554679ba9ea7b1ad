// Package srfax is a client for the SRFax SOAP fax web service. It queues
// outbound faxes with up to five attached documents, reports delivery
// status, lists the inbox and outbox folders, retrieves stored fax content
// and deletes stored faxes.
//
// The client validates destination numbers as E.164 and rewrites them into
// the dialing form the service expects, encodes attachments as base64, and
// normalizes the service's loosely shaped replies into a small closed set of
// result kinds (empty, text, record, list). Every failure is returned as a
// classified *Error carrying an advisory Retryable flag; the client itself
// never retries.
//
// The RPC transport is pluggable through the soap package: the default
// backend speaks to the production service, while soap.NewMock provides a
// scenario driven stand-in for tests and development.
package srfax
