package fingerprints

import (
	"strings"

	"github.com/Spritualkb/xingrin/core/utils"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"
)

// defaultSeverity is applied when a FingerPrintHub template omits
// info.severity, and omitted again on export.
const defaultSeverity = "info"

// fingerprinthubAdapter handles the FingerPrintHub template format: a flat
// array of {"id": ..., "info": {...}, "http": [...]} records. The nested
// info object is flattened into the row and rebuilt on export.
type fingerprinthubAdapter struct{}

func (fingerprinthubAdapter) Variant() Variant { return VariantFingerPrintHub }

func (fingerprinthubAdapter) Validate(raw RawRecord) bool {
	if strings.TrimSpace(utils.ToString(raw["id"])) == "" {
		return false
	}
	info, ok := raw["info"].(map[string]any)
	if !ok || utils.ToString(info["name"]) == "" {
		return false
	}
	return isArray(raw["http"])
}

func (fingerprinthubAdapter) ToNormalized(raw RawRecord) models.Record {
	info := raw["info"].(map[string]any)

	severity := defaultSeverity
	if v, ok := info["severity"]; ok {
		severity = utils.ToString(v)
	}

	return models.FingerPrintHubFingerprint{
		FpID:       strings.TrimSpace(utils.ToString(raw["id"])),
		Name:       utils.ToString(info["name"]),
		Author:     utils.ToString(info["author"]),
		Tags:       utils.ToString(info["tags"]),
		Severity:   severity,
		Metadata:   jsonColumn(RawRecord(info), "metadata"),
		HTTP:       jsonColumn(raw, "http"),
		SourceFile: utils.ToString(raw["_source_file"]),
	}
}

func (fingerprinthubAdapter) ToRaw(rec models.Record) RawRecord {
	f := rec.(models.FingerPrintHubFingerprint)

	info := RawRecord{"name": f.Name}
	putString(info, "author", f.Author, "")
	putString(info, "tags", f.Tags, "")
	putString(info, "severity", f.Severity, defaultSeverity)
	putJSON(info, "metadata", f.Metadata)

	out := RawRecord{
		"id":   f.FpID,
		"info": map[string]any(info),
		"http": jsonValue(f.HTTP),
	}
	if out["http"] == nil {
		out["http"] = []any{}
	}
	putString(out, "_source_file", f.SourceFile, "")
	return out
}

func (fingerprinthubAdapter) Flatten(doc any) ([]RawRecord, error) {
	return flattenList(doc)
}

func (fingerprinthubAdapter) Collapse(list []RawRecord) any {
	return collapseList(list)
}
