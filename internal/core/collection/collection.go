// Package collection reads the mod collection document and exposes it as an
// ordered list of mod sources.
//
// The document is the JSON export of a Nexus Mods collection:
//
//	{"mods": [{"source": {"modId": 123, "fileId": 456}}, ...]}
//
// Decoding is strict: every entry must carry both identifiers. A malformed
// document fails before any processing starts, with one field error per
// offending entry, never a nil identifier discovered mid-run.
package collection

import (
	"fmt"

	"github.com/hay-kot/criterio"
)

// ModSource identifies one unit of work: a specific file of a specific mod.
// Immutable once read from the collection.
type ModSource struct {
	ModID  int
	FileID int
}

// Key is the ledger identity for the mod source. Two sources with the same
// (modId, fileId) are indistinguishable by design.
func (m ModSource) Key() string {
	return fmt.Sprintf("%d:%d", m.ModID, m.FileID)
}

func (m ModSource) String() string {
	return m.Key()
}

// File is the raw JSON schema of a collection export. Identifier fields are
// pointers so that absent and zero can be told apart during validation.
type File struct {
	Mods []Mod `json:"mods"`
}

// Mod is one entry in the collection export.
type Mod struct {
	Source Source `json:"source"`
}

// Source carries the identifier pair for a mod entry.
type Source struct {
	ModID  *int `json:"modId"`
	FileID *int `json:"fileId"`
}

// Validate checks that every entry carries both identifiers.
func (f File) Validate() error {
	if len(f.Mods) == 0 {
		return criterio.NewFieldErrors("mods", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	for i, mod := range f.Mods {
		field := fmt.Sprintf("mods[%d].source", i)
		if mod.Source.ModID == nil {
			errs = errs.Append(field+".modId", fmt.Errorf("is missing"))
		}
		if mod.Source.FileID == nil {
			errs = errs.Append(field+".fileId", fmt.Errorf("is missing"))
		}
	}

	return errs.ToError()
}

// Sources returns the mod sources in document order. Validate must have
// passed; a nil identifier here is a programmer error.
func (f File) Sources() []ModSource {
	sources := make([]ModSource, 0, len(f.Mods))
	for _, mod := range f.Mods {
		sources = append(sources, ModSource{
			ModID:  *mod.Source.ModID,
			FileID: *mod.Source.FileID,
		})
	}
	return sources
}
