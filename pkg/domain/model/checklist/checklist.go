// Package checklist parses and re-serializes the structured checklist
// document stored in an artifact's RawChecklist field. Only the ASSET block
// is modeled field by field; the STIG body is carried through verbatim so a
// parse/serialize cycle never touches findings.
package checklist

import (
	"encoding/xml"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Document is a parsed checklist.
type Document struct {
	XMLName xml.Name `xml:"CHECKLIST"`
	Asset   Asset    `xml:"ASSET"`
	Stigs   Stigs    `xml:"STIGS"`
}

// Stigs holds the raw STIG body. The innerxml passthrough keeps it
// byte-identical across a parse/serialize round trip.
type Stigs struct {
	Raw string `xml:",innerxml"`
}

// Asset mirrors the checklist ASSET element. Field order defines the
// canonical element order of the serialized output. Elements outside the
// modeled set land in Extra and survive a parse/serialize cycle untouched.
type Asset struct {
	Role          string `xml:"ROLE"`
	AssetType     string `xml:"ASSET_TYPE"`
	Marking       string `xml:"MARKING"`
	HostName      string `xml:"HOST_NAME"`
	HostIP        string `xml:"HOST_IP"`
	HostMAC       string `xml:"HOST_MAC"`
	HostFQDN      string `xml:"HOST_FQDN"`
	TargetComment string `xml:"TARGET_COMMENT"`
	TechArea      string `xml:"TECH_AREA"`
	TargetKey     string `xml:"TARGET_KEY"`
	WebOrDatabase string `xml:"WEB_OR_DATABASE"`
	WebDBSite     string `xml:"WEB_DB_SITE"`
	WebDBInstance string `xml:"WEB_DB_INSTANCE"`

	Extra []AssetField `xml:",any"`
}

// AssetField is an asset element this package does not model. The name and
// raw content are carried through so serialization never drops it.
type AssetField struct {
	XMLName xml.Name
	Value   string `xml:",innerxml"`
}

// Parse reads raw checklist text into a Document.
func Parse(raw string) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse checklist")
	}
	return &doc, nil
}

// Serialize writes a Document back to canonical checklist text.
func Serialize(doc *Document) (string, error) {
	out, err := xml.Marshal(doc)
	if err != nil {
		return "", goerr.Wrap(err, "failed to serialize checklist")
	}
	return Sanitize(string(out)), nil
}

// Sanitize normalizes checklist text to canonical form: no tab characters,
// no newline between adjacent tag boundaries. Applied to every uploaded
// document before storage and to every re-serialized document.
func Sanitize(raw string) string {
	return strings.ReplaceAll(strings.ReplaceAll(raw, "\t", ""), ">\n<", "><")
}
