package fingerprints

import (
	"sort"
	"strings"

	"github.com/Spritualkb/xingrin/core/utils"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"
)

// wappalyzerAdapter handles the Wappalyzer technology format. The wire
// document is an object keyed by technology name ({"apps": {"WordPress":
// {...}}}); newer releases renamed the container key to "technologies", so
// both aliases are accepted. Flatten folds the container key into each
// record's "name" field and Collapse restores it.
type wappalyzerAdapter struct{}

func (wappalyzerAdapter) Variant() Variant { return VariantWappalyzer }

func (wappalyzerAdapter) Validate(raw RawRecord) bool {
	return strings.TrimSpace(utils.ToString(raw["name"])) != ""
}

func (wappalyzerAdapter) ToNormalized(raw RawRecord) models.Record {
	return models.WappalyzerFingerprint{
		Name:      strings.TrimSpace(utils.ToString(raw["name"])),
		Cats:      jsonColumn(raw, "cats"),
		Cookies:   jsonColumn(raw, "cookies"),
		Headers:   jsonColumn(raw, "headers"),
		ScriptSrc: jsonColumn(raw, "scriptSrc"),
		JS:        jsonColumn(raw, "js"),
		Implies:   jsonColumn(raw, "implies"),
		Meta:      jsonColumn(raw, "meta"),
		HTML:      jsonColumn(raw, "html"),
		Description: utils.ToString(raw["description"]),
		Website:     utils.ToString(raw["website"]),
		CPE:         utils.ToString(raw["cpe"]),
	}
}

func (wappalyzerAdapter) ToRaw(rec models.Record) RawRecord {
	f := rec.(models.WappalyzerFingerprint)
	out := RawRecord{"name": f.Name}
	putJSON(out, "cats", f.Cats)
	putJSON(out, "cookies", f.Cookies)
	putJSON(out, "headers", f.Headers)
	putJSON(out, "scriptSrc", f.ScriptSrc)
	putJSON(out, "js", f.JS)
	putJSON(out, "implies", f.Implies)
	putJSON(out, "meta", f.Meta)
	putJSON(out, "html", f.HTML)
	putString(out, "description", f.Description, "")
	putString(out, "website", f.Website, "")
	putString(out, "cpe", f.CPE, "")
	return out
}

func (wappalyzerAdapter) Flatten(doc any) ([]RawRecord, error) {
	// Already-flat arrays are accepted as-is (batch create payloads).
	if _, ok := doc.([]any); ok {
		return flattenList(doc)
	}

	wrapper, ok := doc.(map[string]any)
	if !ok {
		return nil, structuralErr(`wappalyzer document must be an object with an "apps" or "technologies" key`, nil)
	}

	container, ok := wrapper["apps"].(map[string]any)
	if !ok {
		if container, ok = wrapper["technologies"].(map[string]any); !ok {
			return nil, structuralErr(`wappalyzer document must be an object with an "apps" or "technologies" key`, nil)
		}
	}

	// Sort names so imports process records in a deterministic order.
	names := make([]string, 0, len(container))
	for name := range container {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]RawRecord, 0, len(names))
	for _, name := range names {
		record := RawRecord{"name": name}
		if attrs, ok := container[name].(map[string]any); ok {
			for k, v := range attrs {
				record[k] = v
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (wappalyzerAdapter) Collapse(list []RawRecord) any {
	apps := make(map[string]any, len(list))
	for _, record := range list {
		name := utils.ToString(record["name"])
		attrs := make(map[string]any, len(record))
		for k, v := range record {
			if k == "name" {
				continue
			}
			attrs[k] = v
		}
		apps[name] = attrs
	}
	return map[string]any{"apps": apps}
}
