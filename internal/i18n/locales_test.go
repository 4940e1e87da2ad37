package i18n

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// messageCall matches T, Tf and Tn calls with a literal dotted ID.
var messageCall = regexp.MustCompile(`\bT[fn]?\("([a-zA-Z][a-zA-Z0-9]*(?:\.[a-zA-Z][a-zA-Z0-9]*)+)"`)

// sourceMessageIDs collects message IDs from the non-test sources of the module.
func sourceMessageIDs(t *testing.T) map[string]bool {
	t.Helper()
	// Tests run in internal/i18n.
	root := filepath.Join("..", "..")
	ids := make(map[string]bool)
	for _, dir := range []string{"internal", "cmd"} {
		err := filepath.WalkDir(filepath.Join(root, dir), func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			for _, m := range messageCall.FindAllSubmatch(data, -1) {
				ids[string(m[1])] = true
			}
			return nil
		})
		if err != nil {
			t.Fatalf("walking %s: %v", dir, err)
		}
	}
	return ids
}

// flattenKeys returns the dotted IDs of the message tables in a decoded locale.
func flattenKeys(prefix string, m map[string]any, out map[string]bool) {
	for k, v := range m {
		sub, ok := v.(map[string]any)
		if !ok {
			continue
		}
		id := k
		if prefix != "" {
			id = prefix + "." + k
		}
		if _, leaf := sub["other"]; leaf {
			out[id] = true
			continue
		}
		flattenKeys(id, sub, out)
	}
}

func TestLocales(t *testing.T) {
	ids := sourceMessageIDs(t)
	if len(ids) == 0 {
		t.Fatal("no message IDs found in source")
	}

	for _, tag := range Languages() {
		t.Run(tag, func(t *testing.T) {
			data, err := localeFS.ReadFile("locales/" + tag + ".toml")
			if err != nil {
				t.Fatal(err)
			}
			var decoded map[string]any
			if _, err := toml.Decode(string(data), &decoded); err != nil {
				t.Fatalf("invalid TOML: %v", err)
			}
			keys := make(map[string]bool)
			flattenKeys("", decoded, keys)

			for id := range ids {
				if !keys[id] {
					t.Errorf("missing %s", id)
				}
			}
			for id := range keys {
				if !ids[id] {
					t.Errorf("unused %s", id)
				}
			}
		})
	}
}
