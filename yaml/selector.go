// Package yaml loads selector sets from YAML files.
//
// A selector file lists fields in evaluation order, each with exactly one
// of xpath or css:
//
//	fields:
//	  - name: title
//	    xpath: //span[@class='mw-page-title-main']
//	  - name: infobox
//	    css: aside.portable-infobox
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/wikiextract"
	"gopkg.in/yaml.v3"
)

type file struct {
	Fields []field `yaml:"fields"`
}

type field struct {
	Name  string `yaml:"name"`
	XPath string `yaml:"xpath"`
	CSS   string `yaml:"css"`
}

// LoadSelectorSet reads and validates the selector set at path.
func LoadSelectorSet(path string) (wikiextract.SelectorSet, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wikiextract.Errorf(wikiextract.ENOTFOUND, "selector file %s not found", path)
	} else if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EINVALID, err, "opening selector file %s", path)
	}
	defer f.Close()

	set, err := DecodeSelectorSet(f)
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.EINVALID, err, "loading %s", path)
	}
	return set, nil
}

// DecodeSelectorSet decodes and validates a selector set. Unknown keys are
// rejected.
func DecodeSelectorSet(r io.Reader) (wikiextract.SelectorSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, wikiextract.Errorf(wikiextract.EINVALID, "selector file is empty")
		}
		return nil, wikiextract.Wrap(wikiextract.EINVALID, err, "decoding selector file")
	}

	set := make(wikiextract.SelectorSet, 0, len(doc.Fields))
	for i, f := range doc.Fields {
		switch {
		case f.XPath != "" && f.CSS != "":
			return nil, wikiextract.Errorf(wikiextract.EINVALID, "field %d (%q) sets both xpath and css", i, f.Name)
		case f.XPath != "":
			set = append(set, wikiextract.XPath(f.Name, f.XPath))
		case f.CSS != "":
			set = append(set, wikiextract.CSS(f.Name, f.CSS))
		default:
			return nil, wikiextract.Errorf(wikiextract.EINVALID, "field %d (%q) needs xpath or css", i, f.Name)
		}
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
