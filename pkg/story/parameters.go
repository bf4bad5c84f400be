package story

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Known parameter keys.
const (
	ParamCodeCoverage = "codeCoverage"
	ParamOverview     = "overview"
)

// OverviewFunc renders a story's overview document.
type OverviewFunc func() (content string, err error)

// Parameters is the free-form parameter object attached to a story.
// Overview is bound by the catalog loader and is not part of the JSON.
type Parameters struct {
	raw      []byte
	Overview OverviewFunc
}

// keyPath turns a top-level key into a gjson/sjson path that matches it
// literally. A leading ':' would force sjson into string-key mode, so it is
// escaped as well.
func keyPath(key string) (path string) {
	path = gjson.Escape(key)
	if strings.HasPrefix(path, ":") {
		path = `\` + path
	}
	return path
}

// NewParameters wraps a raw JSON object. Empty input is an empty object.
func NewParameters(raw []byte) (p Parameters, err error) {
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" {
		p.raw = []byte("{}")
		return p, err
	}

	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		err = errors.New("parameters must be a JSON object")
		return p, err
	}

	p.raw = append([]byte(nil), raw...)
	return p, err
}

// Raw returns the JSON object.
func (p Parameters) Raw() (raw []byte) {
	raw = p.raw
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	return raw
}

// Get looks up a top-level key.
func (p Parameters) Get(key string) (result gjson.Result) {
	result = gjson.GetBytes(p.Raw(), keyPath(key))
	return result
}

// CodeCoverage returns the coverage percentage, nil when absent or not a number.
func (p Parameters) CodeCoverage() (pct *float64) {
	result := p.Get(ParamCodeCoverage)
	if result.Type != gjson.Number {
		return pct
	}
	v := result.Float()
	pct = &v
	return pct
}

// HasOverview reports whether an overview renderer is bound.
func (p Parameters) HasOverview() (ok bool) {
	ok = p.Overview != nil
	return ok
}

// MarshalJSON implements json.Marshaler.
func (p Parameters) MarshalJSON() (data []byte, err error) {
	data = p.Raw()
	return data, err
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var parsed Parameters
	parsed, err = NewParameters(data)
	if err != nil {
		return err
	}
	p.raw = parsed.raw
	return err
}

// Merge overlays story-level parameters on component-level ones. Keys are
// replaced whole, the way stories override their component's parameters.
func Merge(base, over Parameters) (merged Parameters, err error) {
	out := append([]byte(nil), base.Raw()...)

	gjson.ParseBytes(over.Raw()).ForEach(func(key, value gjson.Result) (next bool) {
		path := keyPath(key.String())
		out, err = sjson.SetRawBytes(out, path, []byte(value.Raw))
		if err == nil && !gjson.GetBytes(out, path).Exists() {
			err = errors.Errorf("parameter key %q cannot be merged", key.String())
		}
		next = err == nil
		return next
	})
	if err != nil {
		err = errors.Wrap(err, "failed to merge story parameters")
		return merged, err
	}

	merged.raw = out
	merged.Overview = base.Overview
	if over.Overview != nil {
		merged.Overview = over.Overview
	}

	return merged, err
}

var _ json.Marshaler = Parameters{}
