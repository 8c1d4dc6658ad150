package fingerprints

import (
	"strings"

	"github.com/Spritualkb/xingrin/core/utils"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"
)

// gobyAdapter handles the Goby rule format: a flat array of
// {"name": ..., "logic": ..., "rule": [...]} records.
type gobyAdapter struct{}

func (gobyAdapter) Variant() Variant { return VariantGoby }

func (gobyAdapter) Validate(raw RawRecord) bool {
	name := strings.TrimSpace(utils.ToString(raw["name"]))
	logic := utils.ToString(raw["logic"])
	return name != "" && logic != "" && isArray(raw["rule"])
}

func (gobyAdapter) ToNormalized(raw RawRecord) models.Record {
	return models.GobyFingerprint{
		Name:  strings.TrimSpace(utils.ToString(raw["name"])),
		Logic: utils.ToString(raw["logic"]),
		Rule:  jsonColumn(raw, "rule"),
	}
}

func (gobyAdapter) ToRaw(rec models.Record) RawRecord {
	f := rec.(models.GobyFingerprint)
	out := RawRecord{
		"name":  f.Name,
		"logic": f.Logic,
		"rule":  jsonValue(f.Rule),
	}
	if out["rule"] == nil {
		out["rule"] = []any{}
	}
	return out
}

func (gobyAdapter) Flatten(doc any) ([]RawRecord, error) {
	return flattenList(doc)
}

func (gobyAdapter) Collapse(list []RawRecord) any {
	return collapseList(list)
}
