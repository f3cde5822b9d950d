package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/monoprop/types"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Marshal encodes v as indented JSON, or as YAML when path names a YAML file.
func Marshal(path string, v interface{}) (data []byte, err error) {
	if isYAML(path) {
		return yaml.Marshal(v)
	}
	if data, err = json.MarshalIndent(v, "", "  "); err != nil {
		return
	}
	data = append(data, '\n')
	return
}

/*
Write persists v at path, creating the parent directory. The record is staged in a temporary file
next to the target and renamed into place, so readers never see a partial record.
*/
func Write(path string, v interface{}) (err error) {
	var (
		data []byte
		tmp  *os.File
	)
	if data, err = Marshal(path, v); err != nil {
		return
	}
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	if tmp, err = os.CreateTemp(dir, "."+filepath.Base(path)+".*"); err != nil {
		return
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return
	}
	if err = tmp.Close(); err != nil {
		return
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a JSON or YAML record into its field view.
func Load(path string) (f Fields, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	return Parse(data)
}

func Parse(data []byte) (f Fields, err error) {
	if err = yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unreadable record: %v: %w", err, types.ErrConfiguration)
	}
	if f == nil {
		return nil, fmt.Errorf("empty record: %w", types.ErrConfiguration)
	}
	return
}
