package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	hjson "github.com/hjson/hjson-go/v4"
)

// LoadFromDirectory loads template override files from dir. Both .json and
// .hjson are accepted; HJSON exists so override files can carry comments.
// Files replace built-in templates with the same ID.
func LoadFromDirectory(dir string) error {
	registry := Get()

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("prompt directory not found: %s", dir)
	}

	loaded := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		ext := filepath.Ext(path)
		if info.IsDir() || (ext != ".json" && ext != ".hjson") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		if ext == ".hjson" {
			var v interface{}
			if err := hjson.Unmarshal(data, &v); err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			if data, err = json.Marshal(v); err != nil {
				return fmt.Errorf("failed to normalize %s: %w", path, err)
			}
		}

		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := registry.Register(&t); err != nil {
			return fmt.Errorf("failed to register %s: %w", path, err)
		}
		loaded++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("[prompt.Loader] Loaded %d template override(s) from %s\n", loaded, dir)
	return nil
}
