package psr4

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// ManifestName is the package manifest file name.
const ManifestName = "composer.json"

// Entry maps a namespace prefix to a base directory.
type Entry struct {
	// Prefix is the namespace prefix, for example "App\".
	Prefix string
	// Dir is the base directory relative to the manifest, without a
	// trailing slash; "" is the manifest directory itself.
	Dir string
}

// AutoloadMap is the ordered psr-4 table of a manifest.
type AutoloadMap struct {
	Entries []Entry
}

// FindManifest walks up from the directory of file to the root of fsys and
// returns the path of the nearest manifest.
func FindManifest(fsys fs.FS, file string) (string, error) {
	dir := path.Dir(file)
	for {
		candidate := path.Join(dir, ManifestName)
		if info, err := fs.Stat(fsys, candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		if dir == "." || dir == "/" {
			return "", ErrManifestMissing
		}
		dir = path.Dir(dir)
	}
}

// ReadAutoloadMap reads and decodes a manifest.
func ReadAutoloadMap(fsys fs.FS, manifest string) (*AutoloadMap, error) {
	data, err := fs.ReadFile(fsys, manifest)
	if err != nil {
		return nil, &ManifestError{Path: manifest, Reason: err.Error()}
	}
	return LoadAutoloadMap(manifest, data)
}

// LoadAutoloadMap decodes the "autoload" (required) and "autoload-dev"
// (optional) psr-4 tables, keeping document order.  A dev entry replaces a
// primary entry with the same prefix.
func LoadAutoloadMap(name string, data []byte) (*AutoloadMap, error) {
	var manifest struct {
		Autoload    map[string]json.RawMessage `json:"autoload"`
		AutoloadDev map[string]json.RawMessage `json:"autoload-dev"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &ManifestError{Path: name, Reason: err.Error()}
	}

	primary, ok := manifest.Autoload["psr-4"]
	if !ok {
		return nil, &ManifestError{Path: name, Reason: "no psr-4 key in autoload object"}
	}
	m := &AutoloadMap{}
	if err := m.add(primary); err != nil {
		return nil, &ManifestError{Path: name, Reason: fmt.Sprintf("autoload.psr-4: %v", err)}
	}
	if dev, ok := manifest.AutoloadDev["psr-4"]; ok {
		if err := m.add(dev); err != nil {
			return nil, &ManifestError{Path: name, Reason: fmt.Sprintf("autoload-dev.psr-4: %v", err)}
		}
	}
	return m, nil
}

// add appends the entries of a psr-4 object.  encoding/json maps are
// unordered, so the object is read token by token.
func (m *AutoloadMap) add(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("expected an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		prefix := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		dirs, err := directories(value)
		if err != nil {
			return fmt.Errorf("%q: %w", prefix, err)
		}
		m.put(prefix, dirs)
	}
	return nil
}

func directories(value json.RawMessage) ([]string, error) {
	var one string
	if err := json.Unmarshal(value, &one); err == nil {
		return []string{one}, nil
	}
	var many []string
	if err := json.Unmarshal(value, &many); err != nil {
		return nil, errors.New("directory must be a string or a list of strings")
	}
	return many, nil
}

// put sets the directories of prefix, keeping the position of an existing
// prefix.
func (m *AutoloadMap) put(prefix string, dirs []string) {
	at := len(m.Entries)
	kept := make([]Entry, 0, len(m.Entries)+len(dirs))
	for _, e := range m.Entries {
		if e.Prefix == prefix {
			if at == len(m.Entries) {
				at = len(kept)
			}
			continue
		}
		kept = append(kept, e)
	}
	if at > len(kept) {
		at = len(kept)
	}
	entries := make([]Entry, len(dirs))
	for i, dir := range dirs {
		entries[i] = Entry{Prefix: prefix, Dir: cleanDir(dir)}
	}
	m.Entries = append(kept[:at], append(entries, kept[at:]...)...)
}

func cleanDir(dir string) string {
	dir = path.Clean(strings.ReplaceAll(dir, `\`, "/"))
	if dir == "." || dir == "/" {
		return ""
	}
	return strings.TrimPrefix(dir, "./")
}
