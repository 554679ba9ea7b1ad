package srfax

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// encodeAttachment reads the file at path and returns its base name together
// with the base64 encoding of its raw bytes. The read is binary safe; text
// and binary documents are treated alike.
func encodeAttachment(path string) (name, content string, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return "", "", validationErr("file does not exist: %s", path)
		}
		return "", "", &Error{
			Code:    CodeValidation,
			Message: fmt.Sprintf("file not accessible: %s", path),
			Cause:   statErr,
		}
	}
	if info.IsDir() {
		return "", "", validationErr("not a regular file: %s", path)
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return "", "", &Error{
			Code:    CodeValidation,
			Message: fmt.Sprintf("file not readable: %s", path),
			Cause:   readErr,
		}
	}
	if len(data) == 0 {
		return "", "", validationErr("file is empty: %s", path)
	}
	return filepath.Base(path), base64.StdEncoding.EncodeToString(data), nil
}
