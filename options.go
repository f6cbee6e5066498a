package dwgbits

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/svanichkin/dwgbits/codepage"
)

// Options configure a cursor session.
type Options struct {
	// Version is the release written. Zero means R2000.
	Version Version
	// FromVersion is the release the data came from. Zero means Version.
	FromVersion Version
	// Codepage of narrow strings. The zero value is UTF8.
	Codepage codepage.Codepage
	// Strictness defaults to Lenient.
	Strictness Strictness
	// Recorder receives diagnostics. Nil discards them.
	Recorder Recorder
	// Tables converts legacy codepages. Nil means codepage.Default.
	Tables codepage.Table
}

type optionsFile struct {
	Version     string `yaml:"version"`
	FromVersion string `yaml:"from_version"`
	Codepage    string `yaml:"codepage"`
	AbortAfter  *int   `yaml:"abort_after"`
}

// LoadOptions reads a YAML session profile:
//
//	version: R2000
//	from_version: R2004
//	codepage: ANSI_1252
//	abort_after: 50
//
// Omitted keys keep their zero value; abort_after: 0 selects
// DefaultAbortLimit, an absent abort_after stays lenient.
func LoadOptions(r io.Reader) (Options, error) {
	var f optionsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Options{}, errors.Wrap(err, "dwgbits: decode options")
	}

	var (
		o   Options
		err error
	)
	if f.Version != "" {
		if o.Version, err = ParseVersion(f.Version); err != nil {
			return Options{}, errors.Wrap(err, "version")
		}
	}
	if f.FromVersion != "" {
		if o.FromVersion, err = ParseVersion(f.FromVersion); err != nil {
			return Options{}, errors.Wrap(err, "from_version")
		}
	}
	if f.Codepage != "" {
		if o.Codepage, err = codepage.Parse(f.Codepage); err != nil {
			return Options{}, errors.Wrap(err, "codepage")
		}
	}
	if f.AbortAfter != nil {
		o.Strictness = AbortAfter(*f.AbortAfter)
	}
	return o, nil
}

func (o Options) cursor() *Cursor {
	if o.Version == VersionInvalid {
		o.Version = R2000
	}
	if o.FromVersion == VersionInvalid {
		o.FromVersion = o.Version
	}
	return &Cursor{
		Version:     o.Version,
		FromVersion: o.FromVersion,
		Codepage:    o.Codepage,
		Tables:      o.Tables,
		rec:         o.Recorder,
		strict:      o.Strictness,
	}
}

// Options returns the settings c was created with, for spawning related
// cursors (string or handle streams).
func (c *Cursor) Options() Options {
	return Options{
		Version:     c.Version,
		FromVersion: c.FromVersion,
		Codepage:    c.Codepage,
		Strictness:  c.strict,
		Recorder:    c.rec,
		Tables:      c.Tables,
	}
}
