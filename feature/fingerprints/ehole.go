package fingerprints

import (
	"strings"

	"github.com/Spritualkb/xingrin/core/utils"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"
)

// eholeAdapter handles the EHole rule format: a flat array of
// {"name": ..., "rule": ...} records, usually wrapped in a document under a
// top-level "fingerprint" key.
type eholeAdapter struct{}

func (eholeAdapter) Variant() Variant { return VariantEhole }

func (eholeAdapter) Validate(raw RawRecord) bool {
	name := strings.TrimSpace(utils.ToString(raw["name"]))
	rule, ok := raw["rule"].(string)
	return name != "" && ok && strings.TrimSpace(rule) != ""
}

func (eholeAdapter) ToNormalized(raw RawRecord) models.Record {
	return models.EholeFingerprint{
		Name: strings.TrimSpace(utils.ToString(raw["name"])),
		Rule: raw["rule"].(string),
	}
}

func (eholeAdapter) ToRaw(rec models.Record) RawRecord {
	f := rec.(models.EholeFingerprint)
	return RawRecord{
		"name": f.Name,
		"rule": f.Rule,
	}
}

// Flatten accepts either a bare array or the distributed file shape
// {"fingerprint": [...]}.
func (eholeAdapter) Flatten(doc any) ([]RawRecord, error) {
	if wrapper, ok := doc.(map[string]any); ok {
		inner, ok := wrapper["fingerprint"]
		if !ok {
			return nil, structuralErr(`ehole document must be an array or contain a "fingerprint" array`, nil)
		}
		doc = inner
	}
	return flattenList(doc)
}

func (eholeAdapter) Collapse(list []RawRecord) any {
	return collapseList(list)
}
