package fingerprints

import (
	"strings"

	"github.com/Spritualkb/xingrin/core/utils"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"
)

// fingersAdapter handles the Fingers rule format: a flat array of records
// with a required "rule" array and optional link/tag/focus/default_port
// fields. Upstream files only write the optional fields when set, so exports
// apply the same omission.
type fingersAdapter struct{}

func (fingersAdapter) Variant() Variant { return VariantFingers }

func (fingersAdapter) Validate(raw RawRecord) bool {
	name := strings.TrimSpace(utils.ToString(raw["name"]))
	return name != "" && isArray(raw["rule"])
}

func (fingersAdapter) ToNormalized(raw RawRecord) models.Record {
	return models.FingersFingerprint{
		Name:        strings.TrimSpace(utils.ToString(raw["name"])),
		Link:        utils.ToString(raw["link"]),
		Rule:        jsonColumn(raw, "rule"),
		Tag:         jsonColumn(raw, "tag"),
		Focus:       utils.ToBool(raw["focus"]),
		DefaultPort: jsonColumn(raw, "default_port"),
	}
}

func (fingersAdapter) ToRaw(rec models.Record) RawRecord {
	f := rec.(models.FingersFingerprint)
	out := RawRecord{
		"name": f.Name,
		"rule": jsonValue(f.Rule),
	}
	if out["rule"] == nil {
		out["rule"] = []any{}
	}
	putString(out, "link", f.Link, "")
	putJSON(out, "tag", f.Tag)
	if f.Focus {
		out["focus"] = true
	}
	putJSON(out, "default_port", f.DefaultPort)
	return out
}

func (fingersAdapter) Flatten(doc any) ([]RawRecord, error) {
	return flattenList(doc)
}

func (fingersAdapter) Collapse(list []RawRecord) any {
	return collapseList(list)
}
