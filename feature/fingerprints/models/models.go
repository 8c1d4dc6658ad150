package models

import (
	"time"

	"gorm.io/datatypes"
)

// Record is the common contract of all normalized fingerprint rows.
// UniqueKey returns the value of the variant's identifying field, which is
// the upsert conflict target and the stable export ordering key.
type Record interface {
	UniqueKey() string
}

// EholeFingerprint is one normalized EHole rule.
type EholeFingerprint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex" json:"name"`
	Rule      string    `gorm:"type:text" json:"rule"`
	CreatedAt time.Time `json:"created_at"`
}

func (EholeFingerprint) TableName() string { return "ehole_fingerprints" }

func (f EholeFingerprint) UniqueKey() string { return f.Name }

// GobyFingerprint is one normalized Goby rule. Rule keeps the original JSON
// array verbatim so exports reproduce it exactly.
type GobyFingerprint struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;uniqueIndex" json:"name"`
	Logic     string         `gorm:"type:text" json:"logic"`
	Rule      datatypes.JSON `json:"rule"`
	CreatedAt time.Time      `json:"created_at"`
}

func (GobyFingerprint) TableName() string { return "goby_fingerprints" }

func (f GobyFingerprint) UniqueKey() string { return f.Name }

// WappalyzerFingerprint is one normalized Wappalyzer technology entry.
// The name comes from the key of the external apps object; every attribute
// field is stored as raw JSON because the upstream schema mixes strings,
// arrays and objects freely between releases.
type WappalyzerFingerprint struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;uniqueIndex" json:"name"`
	Cats        datatypes.JSON `json:"cats"`
	Cookies     datatypes.JSON `json:"cookies"`
	Headers     datatypes.JSON `json:"headers"`
	ScriptSrc   datatypes.JSON `gorm:"column:script_src" json:"script_src"`
	JS          datatypes.JSON `gorm:"column:js" json:"js"`
	Implies     datatypes.JSON `json:"implies"`
	Meta        datatypes.JSON `json:"meta"`
	HTML        datatypes.JSON `gorm:"column:html" json:"html"`
	Description string         `gorm:"type:text" json:"description"`
	Website     string         `gorm:"size:512" json:"website"`
	CPE         string         `gorm:"column:cpe;size:255" json:"cpe"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (WappalyzerFingerprint) TableName() string { return "wappalyzer_fingerprints" }

func (f WappalyzerFingerprint) UniqueKey() string { return f.Name }

// FingersFingerprint is one normalized Fingers rule.
type FingersFingerprint struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;uniqueIndex" json:"name"`
	Link        string         `gorm:"size:512" json:"link"`
	Rule        datatypes.JSON `json:"rule"`
	Tag         datatypes.JSON `json:"tag"`
	Focus       bool           `json:"focus"`
	DefaultPort datatypes.JSON `gorm:"column:default_port" json:"default_port"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (FingersFingerprint) TableName() string { return "fingers_fingerprints" }

func (f FingersFingerprint) UniqueKey() string { return f.Name }

// FingerPrintHubFingerprint is one normalized FingerPrintHub template.
// The external wire format nests name/author/tags/severity/metadata under an
// "info" object; the store keeps them flat.
type FingerPrintHubFingerprint struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FpID       string         `gorm:"column:fp_id;size:255;uniqueIndex" json:"fp_id"`
	Name       string         `gorm:"size:255" json:"name"`
	Author     string         `gorm:"size:255" json:"author"`
	Tags       string         `gorm:"size:512" json:"tags"`
	Severity   string         `gorm:"size:32" json:"severity"`
	Metadata   datatypes.JSON `json:"metadata"`
	HTTP       datatypes.JSON `gorm:"column:http" json:"http"`
	SourceFile string         `gorm:"size:512" json:"source_file"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (FingerPrintHubFingerprint) TableName() string { return "fingerprinthub_fingerprints" }

func (f FingerPrintHubFingerprint) UniqueKey() string { return f.FpID }

// ARLFingerprint is one normalized ARL rule.
type ARLFingerprint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex" json:"name"`
	Rule      string    `gorm:"type:text" json:"rule"`
	CreatedAt time.Time `json:"created_at"`
}

func (ARLFingerprint) TableName() string { return "arl_fingerprints" }

func (f ARLFingerprint) UniqueKey() string { return f.Name }

// All returns a zero value of every fingerprint model, in migration order.
func All() []any {
	return []any{
		&EholeFingerprint{},
		&GobyFingerprint{},
		&WappalyzerFingerprint{},
		&FingersFingerprint{},
		&FingerPrintHubFingerprint{},
		&ARLFingerprint{},
	}
}
