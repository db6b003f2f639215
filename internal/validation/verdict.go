// Package validation checks verdict payloads against a JSON schema before
// they are persisted or cached. A payload that fails validation is still
// renderable; validation gates the persistence sink, not the display path.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/verdicthq/verdict/internal/api"
)

// defaultPrinter formats schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// verdictSchema is the compiled JSON Schema for VerdictRecord payloads.
var verdictSchema *jsonschema.Schema

// verdictSchemaJSON mirrors the backend's published verdict contract.
const verdictSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["decision", "scorecard"],
  "properties": {
    "decision": {
      "type": "string",
      "minLength": 1
    },
    "scorecard": {
      "type": "object",
      "additionalProperties": {
        "type": "integer",
        "minimum": 0,
        "maximum": 100
      }
    },
    "killShots": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "severity": {"type": "string"},
          "sourceAgent": {"type": "string"}
        }
      }
    },
    "assumptions": {"type": "array", "items": {"type": "string"}},
    "testPlan": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "day": {"type": "integer", "minimum": 0},
          "task": {"type": "string"},
          "successCriteria": {"type": "string"}
        }
      }
    },
    "pivotIdeas": {"type": "array", "items": {"type": "string"}},
    "investorReadiness": {
      "type": "object",
      "properties": {
        "score": {"type": "integer", "minimum": 0, "maximum": 100},
        "verdictLabel": {"type": "string"},
        "reasons": {"type": "array", "items": {"type": "string"}}
      }
    },
    "reasoning": {"type": "string"},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`

func init() {
	verdictSchema = mustCompileSchema(verdictSchemaJSON, "verdict.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateVerdict validates a verdict record against the schema, returning
// one message per violation.
func ValidateVerdict(v *api.VerdictRecord) []string {
	// Round-trip through JSON so the instance carries JSON-compatible types.
	data, err := json.Marshal(v)
	if err != nil {
		return []string{fmt.Sprintf("encoding verdict: %v", err)}
	}
	return ValidateVerdictBytes(data)
}

// ValidateVerdictBytes validates raw JSON bytes against the verdict schema.
func ValidateVerdictBytes(data []byte) []string {
	instance, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}
	return validateAgainstSchema(verdictSchema, instance)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
