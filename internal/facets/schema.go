// Package facets checks and compares the counts returned by FACET queries.
package facets

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// payload describes the part of an Insights response that count comparison
// relies on. It exists only to be reflected into a JSON Schema.
type payload struct {
	Facets []facet `json:"facets"`
}

type facet struct {
	Name    any        `json:"name"`
	Results []countRow `json:"results" jsonschema:"minItems=1"`
}

type countRow struct {
	Count float64 `json:"count" jsonschema:"minimum=0"`
}

// ValidationError lists every way a payload departs from the facet shape.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "unexpected facet payload: " + strings.Join(e.Problems, "; ")
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// printer renders validator messages in English.
var printer = message.NewPrinter(language.English)

// Schema returns the JSON Schema the payload is validated against.
func Schema() (map[string]any, error) {
	r := &invopop.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(&payload{})
	s.ID = ""

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling facet schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling facet schema: %w", err)
	}
	return out, nil
}

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := Schema()
		if err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("facets.json", doc); err != nil {
			compileErr = fmt.Errorf("adding facet schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("facets.json")
	})
	return compiledSchema, compileErr
}

// Validate checks that v, a decoded JSON value, carries a facets array whose
// entries each have a name and at least one result with a numeric count.
func Validate(v any) error {
	s, err := compiled()
	if err != nil {
		return err
	}
	err = s.Validate(v)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return &ValidationError{Problems: problems(verr)}
}

func problems(err *jsonschema.ValidationError) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if e.ErrorKind != nil && len(e.Causes) == 0 {
			msg := e.ErrorKind.LocalizedString(printer)
			if len(e.InstanceLocation) > 0 {
				msg = "/" + strings.Join(e.InstanceLocation, "/") + ": " + msg
			}
			if !seen[msg] {
				seen[msg] = true
				out = append(out, msg)
			}
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	sort.Strings(out)
	return out
}
