package synth

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Shape schemas are fixed per archetype, so compiled forms are cached
// by name for the life of the process and never invalidated.
var compiledShapes sync.Map // schema name -> *jsonschema.Schema

// validateResponse checks a synthesizer payload against the rubric's
// shape schema. A nil schema accepts anything. Failures come back as
// *ErrInvalidResponse carrying the offending payload.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("payload is not JSON: %w", err),
		}
	}

	compiled, err := shapeSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}

	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("payload does not match shape %s: %w", schema.Name, err),
		}
	}

	return nil
}

// shapeSchema returns the compiled form of a shape schema, compiling it
// on first use.
func shapeSchema(s *Schema) (*jsonschema.Schema, error) {
	if hit, ok := compiledShapes.Load(s.Name); ok {
		return hit.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values rather than Go maps that
	// may hold typed ints, so round-trip the definition.
	buf, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode shape %s: %w", s.Name, err)
	}
	var def any
	if err := json.Unmarshal(buf, &def); err != nil {
		return nil, fmt.Errorf("decode shape %s: %w", s.Name, err)
	}

	c := jsonschema.NewCompiler()
	loc := "shape://" + s.Name + ".json"
	if err := c.AddResource(loc, def); err != nil {
		return nil, fmt.Errorf("register shape %s: %w", s.Name, err)
	}
	compiled, err := c.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("compile shape %s: %w", s.Name, err)
	}

	compiledShapes.Store(s.Name, compiled)
	return compiled, nil
}
