package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteReport persists a batch result. The extension picks the encoding:
// .msgpack writes the compact binary form, anything else indented JSON.
// The file is written to a temp path and renamed so readers never observe
// a partial report.
func WriteReport(path string, res *Result) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".msgpack":
		data, err = msgpack.Marshal(res)
	default:
		data, err = json.MarshalIndent(res, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
