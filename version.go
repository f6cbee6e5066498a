package dwgbits

import (
	"strings"

	"github.com/pkg/errors"
)

// Version identifies a DWG release. The order is chronological so versions
// compare with < and >=.
type Version uint8

const (
	VersionInvalid Version = iota
	R1_1
	R1_2
	R1_4
	R2_0
	R2_1
	R2_5
	R2_6
	R9
	R10
	R11
	R13
	R14
	R2000
	R2004
	R2007
	R2010
	R2013
	R2018
)

type versionInfo struct {
	name  string
	magic string
}

var versions = [...]versionInfo{
	VersionInvalid: {"INVALID", ""},
	R1_1:           {"R1.1", "MC0.0"},
	R1_2:           {"R1.2", "AC1.2"},
	R1_4:           {"R1.4", "AC1.40"},
	R2_0:           {"R2.0", "AC1.50"},
	R2_1:           {"R2.1", "AC2.10"},
	R2_5:           {"R2.5", "AC1002"},
	R2_6:           {"R2.6", "AC1003"},
	R9:             {"R9", "AC1004"},
	R10:            {"R10", "AC1006"},
	R11:            {"R11", "AC1009"},
	R13:            {"R13", "AC1012"},
	R14:            {"R14", "AC1014"},
	R2000:          {"R2000", "AC1015"},
	R2004:          {"R2004", "AC1018"},
	R2007:          {"R2007", "AC1021"},
	R2010:          {"R2010", "AC1024"},
	R2013:          {"R2013", "AC1027"},
	R2018:          {"R2018", "AC1032"},
}

// ErrUnknownVersion is returned when a version name or magic is not recognized.
var ErrUnknownVersion = errors.New("dwgbits: unknown version")

func (v Version) String() string {
	if int(v) < len(versions) {
		return versions[v].name
	}
	return versions[VersionInvalid].name
}

// Magic returns the six-byte file signature of v, e.g. "AC1015".
func (v Version) Magic() string {
	if int(v) < len(versions) {
		return versions[v].magic
	}
	return ""
}

// ParseVersion accepts a release name ("R2000", "r14", "2004") or a file
// signature ("AC1015").
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	for i := R1_1; int(i) < len(versions); i++ {
		vi := versions[i]
		if strings.EqualFold(s, vi.name) || strings.EqualFold("R"+s, vi.name) || s == vi.magic {
			return i, nil
		}
	}
	return VersionInvalid, errors.Wrapf(ErrUnknownVersion, "%q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(b []byte) error {
	p, err := ParseVersion(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Variant lists the encoding choices that depend on the release. Every
// version-conditional primitive asks VariantOf instead of comparing versions
// itself.
type Variant struct {
	// ShortLengths: TV lengths are raw RS instead of BS (before R13).
	ShortLengths bool
	// KindNibble: the handle code byte is kind<<4|size (R13 and later).
	KindNibble bool
	// DefaultFlags: BT thickness and BE extrusion carry a "default" bit (R2000+).
	DefaultFlags bool
	// Truecolor: CMC colors carry rgb, method and names (R2004+).
	Truecolor bool
	// Wide: T strings are UCS-2 (R2007+).
	Wide bool
	// CountedNul: TV lengths count the trailing NUL written after the text.
	CountedNul bool
}

// VariantOf resolves the encoding variant for v.
func VariantOf(v Version) Variant {
	return Variant{
		ShortLengths: v < R13,
		KindNibble:   v >= R13,
		DefaultFlags: v >= R2000,
		Truecolor:    v >= R2004,
		Wide:         v >= R2007,
		CountedNul:   v >= R13 && v < R2004,
	}
}
