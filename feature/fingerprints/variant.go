package fingerprints

import "fmt"

// Variant identifies one of the supported fingerprint library ecosystems.
type Variant string

const (
	VariantEhole          Variant = "ehole"
	VariantGoby           Variant = "goby"
	VariantWappalyzer     Variant = "wappalyzer"
	VariantFingers        Variant = "fingers"
	VariantFingerPrintHub Variant = "fingerprinthub"
	VariantARL            Variant = "arl"
)

// Encoding is the canonical file encoding of a variant's wire format.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// AllVariants lists every supported variant in a stable order.
func AllVariants() []Variant {
	return []Variant{
		VariantEhole,
		VariantGoby,
		VariantWappalyzer,
		VariantFingers,
		VariantFingerPrintHub,
		VariantARL,
	}
}

// ParseVariant converts a string (e.g. a URL path segment) into a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if _, ok := registry[v]; !ok {
		return "", fmt.Errorf("unsupported fingerprint variant: %q", s)
	}
	return v, nil
}

// Encoding returns the canonical encoding of the variant's ecosystem.
// ARL libraries ship as YAML, every other variant as JSON.
func (v Variant) Encoding() Encoding {
	if v == VariantARL {
		return EncodingYAML
	}
	return EncodingJSON
}

// ExportFilename is the canonical download filename of the variant.
func (v Variant) ExportFilename() string {
	switch v {
	case VariantEhole:
		return "ehole.json"
	case VariantGoby:
		return "goby.json"
	case VariantWappalyzer:
		return "wappalyzer.json"
	case VariantFingers:
		return "fingers_http.json"
	case VariantFingerPrintHub:
		return "fingerprinthub_web.json"
	case VariantARL:
		return "ARL.yaml"
	default:
		return string(v) + ".json"
	}
}

// CacheFilename is the name of the worker-side local cache data file.
func (v Variant) CacheFilename() string {
	return fmt.Sprintf("%s.%s", v, v.Encoding())
}

// MarkerFilename is the name of the worker-side version marker file.
func (v Variant) MarkerFilename() string {
	return string(v) + ".version"
}
