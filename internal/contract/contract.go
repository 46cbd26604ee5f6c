// Package contract checks outbound requests against the description of the
// remote API before they leave the process.
package contract

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

// selectFields are the LeadCreate properties restricted to a lead option set.
var selectFields = []string{"company_size", "team_size", "timeline"}

//go:embed openapi.yaml
var document []byte

// Document returns the embedded OpenAPI description.
func Document() []byte {
	return bytes.Clone(document)
}

// Validator validates requests against the embedded description.
type Validator struct {
	doc *openapi3.T
}

// NewValidator loads and validates the embedded description.
func NewValidator() (*Validator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI description: %w", err)
	}
	if err := applyLeadOptions(doc); err != nil {
		return nil, err
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI description: %w", err)
	}

	return &Validator{doc: doc}, nil
}

// applyLeadOptions sets the enum of every select field from the lead
// option sets, plus "" for "not selected".
func applyLeadOptions(doc *openapi3.T) error {
	if doc.Components == nil {
		return fmt.Errorf("OpenAPI description has no components")
	}
	create, ok := doc.Components.Schemas["LeadCreate"]
	if !ok || create.Value == nil {
		return fmt.Errorf("OpenAPI description has no LeadCreate schema")
	}
	for _, field := range selectFields {
		prop, ok := create.Value.Properties[field]
		if !ok || prop.Value == nil {
			return fmt.Errorf("LeadCreate has no %s property", field)
		}
		enum := []any{""}
		for _, option := range lead.Options(field) {
			enum = append(enum, option)
		}
		prop.Value.Enum = enum
	}
	return nil
}

// Operations lists "METHOD /path" for every described operation.
func (v *Validator) Operations() []string {
	var ops []string
	for path, item := range v.doc.Paths.Map() {
		for method := range item.Operations() {
			ops = append(ops, method+" "+path)
		}
	}
	return ops
}

// ValidateRequest checks a request for path (relative to the /api base)
// with the given body. A violation is an API-004 error.
func (v *Validator) ValidateRequest(ctx context.Context, method, path, contentType string, body []byte) error {
	method = strings.ToUpper(method)

	item := v.doc.Paths.Find(path)
	if item == nil {
		return errors.New(errors.ErrCodeAPIContract, fmt.Sprintf("%s %s is not part of the API", method, path))
	}
	op := item.GetOperation(method)
	if op == nil {
		return errors.New(errors.ErrCodeAPIContract, fmt.Sprintf("%s is not allowed on %s", method, path))
	}

	req, err := http.NewRequestWithContext(ctx, method, "http://contract.local/api"+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPIContract, "build request for validation", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	input := &openapi3filter.RequestValidationInput{
		Request: req,
		Route: &routers.Route{
			Spec:      v.doc,
			Path:      path,
			PathItem:  item,
			Method:    method,
			Operation: op,
		},
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	if err := openapi3filter.ValidateRequest(ctx, input); err != nil {
		return errors.Wrap(errors.ErrCodeAPIContract, fmt.Sprintf("%s %s violates the API contract", method, path), err)
	}
	return nil
}
