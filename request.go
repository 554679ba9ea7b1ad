package srfax

import (
	"fmt"
	"sort"
	"strings"
)

// Direction selects which fax folder an operation addresses.
type Direction string

const (
	// DirectionInbound addresses received faxes.
	DirectionInbound Direction = "IN"
	// DirectionOutbound addresses sent faxes.
	DirectionOutbound Direction = "OUT"
)

// PeriodAll lists a folder without a time bound.
const PeriodAll = "ALL"

// maxFilesPerRequest is the service limit on attached documents per queued
// fax, and on filenames per delete.
const maxFilesPerRequest = 5

// QueueFaxRequest describes one outbound fax job.
type QueueFaxRequest struct {
	// To lists destination numbers in E.164 form. More than one makes the
	// job a broadcast.
	To []string
	// Files are local paths of the documents to send, between one and five.
	Files []string
	// CallerID overrides the client default fax number shown to receivers.
	CallerID string
	// SenderEmail overrides the client default notification address.
	SenderEmail string
	// AccountCode overrides the client default billing code.
	AccountCode string
}

func (c *Client) baseParams() map[string]any {
	return map[string]any{
		"access_id":  c.accessID,
		"access_pwd": c.accessPwd,
	}
}

// resolve picks the per call override, then the client default, then the
// fallback.
func resolve(override, clientDefault, fallback string) string {
	if override != "" {
		return override
	}
	if clientDefault != "" {
		return clientDefault
	}
	return fallback
}

// stringOrNil maps an unset value to nil so verifyParams can report the
// parameter by name.
func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// verifyParams rejects a parameter set containing nil values. A nil here is
// missing caller configuration; nothing has been sent yet. Keys are checked
// in sorted order so the reported parameter is deterministic.
func verifyParams(params map[string]any) error {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if params[key] == nil {
			return configErr("%s not set", key)
		}
	}
	return nil
}

func (c *Client) queueFaxParams(req QueueFaxRequest) (map[string]any, error) {
	numbers, err := normalizeDialable(req.To)
	if err != nil {
		return nil, err
	}
	faxType := "SINGLE"
	if len(numbers) > 1 {
		faxType = "BROADCAST"
	}

	if len(req.Files) == 0 {
		return nil, configErr("no files to fax given")
	}
	if len(req.Files) > maxFilesPerRequest {
		return nil, configErr("too many files to fax: %d given, at most %d allowed", len(req.Files), maxFilesPerRequest)
	}

	params := c.baseParams()
	params["sCallerID"] = stringOrNil(resolve(req.CallerID, c.callerID, ""))
	params["sSenderEmail"] = stringOrNil(resolve(req.SenderEmail, c.senderEmail, ""))
	params["sFaxType"] = faxType
	params["sToFaxNumber"] = strings.Join(numbers, numberSeparator)
	params["sAccountCode"] = resolve(req.AccountCode, c.accountCode, "")
	if err := verifyParams(params); err != nil {
		return nil, err
	}

	for i, path := range req.Files {
		name, content, err := encodeAttachment(path)
		if err != nil {
			return nil, err
		}
		params[fmt.Sprintf("sFileName_%d", i+1)] = name
		params[fmt.Sprintf("sFileContent_%d", i+1)] = content
	}
	return params, nil
}

func (c *Client) faxStatusParams(faxDetailID string) (map[string]any, error) {
	params := c.baseParams()
	params["sFaxDetailID"] = stringOrNil(faxDetailID)
	if err := verifyParams(params); err != nil {
		return nil, err
	}
	return params, nil
}

func (c *Client) folderParams(period string) (map[string]any, error) {
	if period == "" {
		period = PeriodAll
	}
	params := c.baseParams()
	params["sPeriod"] = period
	if err := verifyParams(params); err != nil {
		return nil, err
	}
	return params, nil
}

func (c *Client) retrieveFaxParams(filename string, dir Direction) (map[string]any, error) {
	params := c.baseParams()
	params["sFaxFileName"] = stringOrNil(filename)
	params["sDirection"] = stringOrNil(string(dir))
	if err := verifyParams(params); err != nil {
		return nil, err
	}
	return params, nil
}

func (c *Client) deleteFaxParams(dir Direction, filenames []string) (map[string]any, error) {
	if len(filenames) == 0 {
		return nil, configErr("no fax filenames to delete given")
	}
	if len(filenames) > maxFilesPerRequest {
		return nil, configErr("too many fax filenames to delete: %d given, at most %d allowed", len(filenames), maxFilesPerRequest)
	}
	params := c.baseParams()
	params["sDirection"] = stringOrNil(string(dir))
	if err := verifyParams(params); err != nil {
		return nil, err
	}
	for i, name := range filenames {
		params[fmt.Sprintf("sFileName_%d", i+1)] = name
	}
	return params, nil
}
