// Where: internal/issues/schema.go
// What: JSON schema validation for incoming issues.
// Why: Reject malformed findings before they reach the store.
package issues

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "issue.schema.json"

//go:embed schema/issue.schema.json
var schemaFS embed.FS

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// ErrInvalidIssue wraps every decode or validation failure.
var ErrInvalidIssue = errors.New("invalid issue")

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := schemaFS.ReadFile("schema/" + schemaResource)
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, schemaErr
}

// Decode validates raw against the issue schema and returns the issue with
// defaults applied: a generated ID and the "general" category.
func Decode(raw []byte) (Issue, error) {
	sch, err := loadSchema()
	if err != nil {
		return Issue{}, fmt.Errorf("load issue schema: %w", err)
	}

	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return Issue{}, fmt.Errorf("%w: %v", ErrInvalidIssue, err)
	}
	if err := sch.Validate(document); err != nil {
		return Issue{}, fmt.Errorf("%w: %v", ErrInvalidIssue, err)
	}

	var issue Issue
	if err := json.Unmarshal(raw, &issue); err != nil {
		return Issue{}, fmt.Errorf("%w: %v", ErrInvalidIssue, err)
	}
	return withDefaults(issue), nil
}

func withDefaults(issue Issue) Issue {
	if strings.TrimSpace(issue.ID) == "" {
		issue.ID = uuid.NewString()
	}
	if strings.TrimSpace(issue.Category) == "" {
		issue.Category = DefaultCategory
	}
	return issue
}
