package fingerprints

import (
	"strings"

	"github.com/Spritualkb/xingrin/core/utils"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"
)

// arlAdapter handles the ARL rule format: a flat array of
// {"name": ..., "rule": ...} records. ARL is the only variant whose
// canonical encoding is YAML rather than JSON.
type arlAdapter struct{}

func (arlAdapter) Variant() Variant { return VariantARL }

func (arlAdapter) Validate(raw RawRecord) bool {
	name := strings.TrimSpace(utils.ToString(raw["name"]))
	rule, ok := raw["rule"].(string)
	return name != "" && ok && strings.TrimSpace(rule) != ""
}

func (arlAdapter) ToNormalized(raw RawRecord) models.Record {
	return models.ARLFingerprint{
		Name: strings.TrimSpace(utils.ToString(raw["name"])),
		Rule: raw["rule"].(string),
	}
}

func (arlAdapter) ToRaw(rec models.Record) RawRecord {
	f := rec.(models.ARLFingerprint)
	return RawRecord{
		"name": f.Name,
		"rule": f.Rule,
	}
}

func (arlAdapter) Flatten(doc any) ([]RawRecord, error) {
	return flattenList(doc)
}

func (arlAdapter) Collapse(list []RawRecord) any {
	return collapseList(list)
}
