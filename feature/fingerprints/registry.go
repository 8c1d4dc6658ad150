package fingerprints

import (
	"fmt"

	"github.com/Spritualkb/xingrin/feature/fingerprints/models"
)

// entry bundles everything variant-specific: the format adapter, the typed
// table operations, and the column mapping for the list filter syntax.
// Components look variants up here and nowhere else.
type entry struct {
	adapter FormatAdapter
	ops     storeOps
	filters map[string]string
}

var registry = map[Variant]entry{
	VariantEhole: {
		adapter: eholeAdapter{},
		ops:     tableOps[models.EholeFingerprint]{keyColumn: "name"},
		filters: map[string]string{"name": "name", "rule": "rule"},
	},
	VariantGoby: {
		adapter: gobyAdapter{},
		ops:     tableOps[models.GobyFingerprint]{keyColumn: "name"},
		filters: map[string]string{"name": "name", "logic": "logic", "rule": "rule"},
	},
	VariantWappalyzer: {
		adapter: wappalyzerAdapter{},
		ops:     tableOps[models.WappalyzerFingerprint]{keyColumn: "name"},
		filters: map[string]string{"name": "name", "description": "description", "website": "website", "html": "html", "implies": "implies"},
	},
	VariantFingers: {
		adapter: fingersAdapter{},
		ops:     tableOps[models.FingersFingerprint]{keyColumn: "name"},
		filters: map[string]string{"name": "name", "link": "link", "rule": "rule", "tag": "tag"},
	},
	VariantFingerPrintHub: {
		adapter: fingerprinthubAdapter{},
		ops:     tableOps[models.FingerPrintHubFingerprint]{keyColumn: "fp_id"},
		filters: map[string]string{"fp_id": "fp_id", "name": "name", "author": "author", "tags": "tags", "severity": "severity"},
	},
	VariantARL: {
		adapter: arlAdapter{},
		ops:     tableOps[models.ARLFingerprint]{keyColumn: "name"},
		filters: map[string]string{"name": "name", "rule": "rule"},
	},
}

func entryFor(v Variant) (entry, error) {
	e, ok := registry[v]
	if !ok {
		return entry{}, fmt.Errorf("unsupported fingerprint variant: %q", v)
	}
	return e, nil
}

// AdapterFor returns the format adapter registered for the variant.
func AdapterFor(v Variant) (FormatAdapter, error) {
	e, err := entryFor(v)
	if err != nil {
		return nil, err
	}
	return e.adapter, nil
}
