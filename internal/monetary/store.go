package monetary

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajustes-contables/rt6/internal/model"
)

type overrideFile struct {
	Accounts map[string]overrideRecord `yaml:"accounts"`
}

type overrideRecord struct {
	Classification string `yaml:"classification,omitempty"`
	Excluded       bool   `yaml:"excluded,omitempty"`
	Validated      bool   `yaml:"validated,omitempty"`
}

// ReadOverrides decodes an overrides.yaml document.
func ReadOverrides(r io.Reader) (Overrides, error) {
	var f overrideFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Overrides{}, fmt.Errorf("parsing overrides: %w", err)
	}

	m := make(map[string]model.AccountOverride, len(f.Accounts))
	for accID, rec := range f.Accounts {
		class := model.MonetaryClass(rec.Classification)
		if class != model.ClassUnknown && !class.Valid() {
			return Overrides{}, fmt.Errorf("account %s: invalid classification %q", accID, rec.Classification)
		}
		m[accID] = model.AccountOverride{
			Classification: class,
			Excluded:       rec.Excluded,
			Validated:      rec.Validated,
		}
	}
	return NewOverrides(m), nil
}

// WriteOverrides encodes o as YAML. Keys are written sorted.
func WriteOverrides(w io.Writer, o Overrides) error {
	f := overrideFile{Accounts: make(map[string]overrideRecord, o.Len())}
	for accID, ov := range o.m {
		f.Accounts[accID] = overrideRecord{
			Classification: string(ov.Classification),
			Excluded:       ov.Excluded,
			Validated:      ov.Validated,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding overrides: %w", err)
	}
	return enc.Close()
}

// OverridesPath is where the override snapshot lives inside a workspace.
func OverridesPath(repoRoot string) string {
	return filepath.Join(repoRoot, "rt6", "overrides.yaml")
}

// LoadOverrides reads the workspace snapshot. A missing file is an empty snapshot.
func LoadOverrides(repoRoot string) (Overrides, error) {
	f, err := os.Open(OverridesPath(repoRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return NewOverrides(nil), nil
	}
	if err != nil {
		return Overrides{}, fmt.Errorf("opening overrides: %w", err)
	}
	defer f.Close()
	return ReadOverrides(f)
}

// SaveOverrides replaces the workspace snapshot.
func SaveOverrides(repoRoot string, o Overrides) error {
	path := OverridesPath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rt6 dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating overrides: %w", err)
	}
	defer f.Close()
	return WriteOverrides(f, o)
}
