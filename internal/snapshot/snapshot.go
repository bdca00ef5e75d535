// Package snapshot loads a dictionary snapshot from a JSON file into an
// in-memory dictionary the CLI can stream blocks from. A snapshot carries
// the descriptor set (id or composite key, plus attributes) and the
// entries.
package snapshot

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/ajitpratap0/dictstream/pkg/dictionary"
	"github.com/ajitpratap0/dictstream/pkg/errors"
	"github.com/ajitpratap0/dictstream/pkg/schema"
)

// fileAttribute is the JSON shape of one descriptor.
type fileAttribute struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Logical string `json:"logical,omitempty"`
}

// fileEntry is the JSON shape of one dictionary entry. Exactly one of ID or
// Key is set, matching the snapshot's addressing mode.
type fileEntry struct {
	ID     *uint64                `json:"id,omitempty"`
	Key    []interface{}          `json:"key,omitempty"`
	Values map[string]interface{} `json:"values"`
}

// fileSnapshot is the JSON shape of a whole snapshot.
type fileSnapshot struct {
	Name       string          `json:"name"`
	ID         *fileAttribute  `json:"id,omitempty"`
	Key        []fileAttribute `json:"key,omitempty"`
	Attributes []fileAttribute `json:"attributes"`
	Entries    []fileEntry     `json:"entries"`
}

// Snapshot is a loaded dictionary ready for streaming. Exactly one of Flat
// and Complex is non-nil.
type Snapshot struct {
	Name      string
	Structure schema.Structure
	Flat      *dictionary.MemDictionary
	Complex   *dictionary.MemComplexDictionary
}

// TotalRows returns the entry count.
func (s *Snapshot) TotalRows() int {
	if s.Flat != nil {
		return len(s.Flat.IDs())
	}
	return len(s.Complex.Keys())
}

// AllColumnNames returns every name in the id/key/attribute namespace, in
// output order.
func (s *Snapshot) AllColumnNames() []string {
	var names []string
	if s.Structure.ID != nil {
		names = append(names, s.Structure.ID.Name)
	}
	for _, k := range s.Structure.Key {
		names = append(names, k.Name)
	}
	for _, a := range s.Structure.Attributes {
		names = append(names, a.Name)
	}
	return names
}

// Load reads and parses a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from CLI flags
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read snapshot file")
	}

	var fs fileSnapshot
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse snapshot JSON")
	}

	if (fs.ID == nil) == (len(fs.Key) == 0) {
		return nil, errors.New(errors.ErrorTypeValidation,
			"snapshot must declare exactly one of id or key")
	}

	structure, err := buildStructure(fs)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Name: fs.Name, Structure: structure}
	if structure.ID != nil {
		return loadFlat(snap, fs)
	}
	return loadComplex(snap, fs)
}

func buildStructure(fs fileSnapshot) (schema.Structure, error) {
	var structure schema.Structure

	if fs.ID != nil {
		structure.ID = &schema.Attribute{Name: fs.ID.Name, Underlying: schema.UInt64, Logical: fs.ID.Logical}
	}
	for _, k := range fs.Key {
		attr, err := parseAttribute(k)
		if err != nil {
			return schema.Structure{}, err
		}
		structure.Key = append(structure.Key, attr)
	}
	for _, a := range fs.Attributes {
		attr, err := parseAttribute(a)
		if err != nil {
			return schema.Structure{}, err
		}
		structure.Attributes = append(structure.Attributes, attr)
	}
	return structure, nil
}

func parseAttribute(fa fileAttribute) (schema.Attribute, error) {
	tag, err := schema.ParseUnderlying(fa.Type)
	if err != nil {
		return schema.Attribute{}, errors.Wrap(err, errors.ErrorTypeConfig, "invalid attribute type").
			WithDetail("attribute", fa.Name)
	}
	return schema.Attribute{Name: fa.Name, Underlying: tag, Logical: fa.Logical}, nil
}

func loadFlat(snap *Snapshot, fs fileSnapshot) (*Snapshot, error) {
	dict, err := dictionary.NewMemDictionary(fs.Name, snap.Structure)
	if err != nil {
		return nil, err
	}
	for i, e := range fs.Entries {
		if e.ID == nil {
			return nil, errors.Newf(errors.ErrorTypeValidation, "entry %d has no id", i)
		}
		if err := dict.Add(*e.ID, e.Values); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "bad snapshot entry").
				WithDetail("entry", i)
		}
	}
	snap.Flat = dict
	return snap, nil
}

func loadComplex(snap *Snapshot, fs fileSnapshot) (*Snapshot, error) {
	dict, err := dictionary.NewMemComplexDictionary(fs.Name, snap.Structure)
	if err != nil {
		return nil, err
	}
	for i, e := range fs.Entries {
		if len(e.Key) == 0 {
			return nil, errors.Newf(errors.ErrorTypeValidation, "entry %d has no key", i)
		}
		if err := dict.Add(e.Key, e.Values); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "bad snapshot entry").
				WithDetail("entry", i)
		}
	}
	snap.Complex = dict
	return snap, nil
}
