package graph

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

//go:embed schema.graphqls
var schemaSource string

// fieldResolver resolves one root field from its coerced arguments. The
// result is any value that encodes to JSON with the schema's field names.
type fieldResolver func(ctx context.Context, args map[string]any) (any, error)

// executableSchema runs root fields through fieldResolvers and shapes the
// JSON encoded results to the request selection set.
type executableSchema struct {
	schema    *ast.Schema
	queries   map[string]fieldResolver
	mutations map[string]fieldResolver
}

// NewExecutableSchema builds the storefront schema over r.
func NewExecutableSchema(r *Resolver) graphql.ExecutableSchema {
	return &executableSchema{
		schema:    gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource}),
		queries:   r.queryFields(),
		mutations: r.mutationFields(),
	}
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, args map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	var (
		fields   map[string]fieldResolver
		rootType string
	)
	switch opCtx.Operation.Operation {
	case ast.Query:
		fields, rootType = e.queries, "Query"
	case ast.Mutation:
		fields, rootType = e.mutations, "Mutation"
	default:
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported operation %s", opCtx.Operation.Operation))
	}

	var (
		buf      bytes.Buffer
		errs     gqlerror.List
		nullData bool
	)
	buf.WriteByte('{')
	for i, field := range graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{rootType}) {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, field.Alias)

		if field.Name == "__typename" {
			writeValue(&buf, rootType)
			continue
		}

		value, err := e.resolveRoot(ctx, opCtx, fields, field)
		if err != nil {
			errs = append(errs, fieldError(ctx, field, err))
			if field.Definition != nil && field.Definition.Type.NonNull {
				nullData = true
			}
			buf.WriteString("null")
			continue
		}
		e.project(&buf, opCtx, value, field.Definition.Type, field.Selections)
	}
	buf.WriteByte('}')

	resp := &graphql.Response{Data: buf.Bytes(), Errors: errs}
	if nullData {
		resp.Data = []byte("null")
	}
	return graphql.OneShot(resp)
}

func (e *executableSchema) resolveRoot(
	ctx context.Context,
	opCtx *graphql.OperationContext,
	fields map[string]fieldResolver,
	field graphql.CollectedField,
) (any, error) {
	resolve, ok := fields[field.Name]
	if !ok || field.Definition == nil {
		return nil, fmt.Errorf("%w: %s", errUnknownField, field.Name)
	}
	if err := authorize(ctx, field.Definition); err != nil {
		return nil, err
	}

	out, err := resolve(ctx, field.ArgumentMap(opCtx.Variables))
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// project writes value as typ, keeping only the selected fields. Missing
// non-null leaves are written as their zero value.
func (e *executableSchema) project(buf *bytes.Buffer, opCtx *graphql.OperationContext, value any, typ *ast.Type, sel ast.SelectionSet) {
	if value == nil {
		if typ.NonNull {
			buf.WriteString(zeroValue(e.schema, typ))
			return
		}
		buf.WriteString("null")
		return
	}

	if typ.Elem != nil {
		list, ok := value.([]any)
		if !ok {
			buf.WriteString("null")
			return
		}
		buf.WriteByte('[')
		for i, item := range list {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.project(buf, opCtx, item, typ.Elem, sel)
		}
		buf.WriteByte(']')
		return
	}

	if len(sel) == 0 {
		writeValue(buf, value)
		return
	}

	obj, ok := value.(map[string]any)
	if !ok {
		buf.WriteString("null")
		return
	}
	buf.WriteByte('{')
	for i, field := range graphql.CollectFields(opCtx, sel, []string{typ.Name()}) {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, field.Alias)
		if field.Name == "__typename" {
			writeValue(buf, typ.Name())
			continue
		}
		e.project(buf, opCtx, obj[field.Name], field.Definition.Type, field.Selections)
	}
	buf.WriteByte('}')
}

func zeroValue(schema *ast.Schema, typ *ast.Type) string {
	if typ.Elem != nil {
		return "[]"
	}
	switch typ.Name() {
	case "Boolean":
		return "false"
	case "Int", "Float":
		return "0"
	case "String", "ID":
		return `""`
	}
	if def := schema.Types[typ.Name()]; def != nil && def.Kind == ast.Enum {
		return `""`
	}
	return "null"
}

func writeKey(buf *bytes.Buffer, key string) {
	writeValue(buf, key)
	buf.WriteByte(':')
}

func writeValue(buf *bytes.Buffer, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(raw)
}
