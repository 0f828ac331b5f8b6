package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"graphblog/internal/middleware"
	"graphblog/internal/service"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/klauspost/compress/gzhttp"
)

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Errors     []interface{}          `json:"errors,omitempty"`
	Data       json.RawMessage        `json:"data,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// GraphQLHandler executes queries and mutations against the schema. Responses
// are gzip-compressed for clients that accept it.
func (h *Handlers) GraphQLHandler() http.Handler {
	return gzhttp.GzipHandler(http.HandlerFunc(h.serveGraphQL))
}

func (h *Handlers) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, ErrorResponse{
			Message: "GraphQL only supports GET and POST requests.",
			Status:  http.StatusMethodNotAllowed,
		}, http.StatusMethodNotAllowed)
		return
	}

	req, err := parseGraphQLRequest(r)
	if err != nil {
		writeJSON(w, ErrorResponse{Message: err.Error(), Status: http.StatusBadRequest}, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, ErrorResponse{Message: "Must provide query string.", Status: http.StatusBadRequest}, http.StatusBadRequest)
		return
	}

	if r.Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
		w.Header().Set("Allow", "POST")
		writeJSON(w, ErrorResponse{
			Message: "Can only perform a mutation operation from a POST request.",
			Status:  http.StatusMethodNotAllowed,
		}, http.StatusMethodNotAllowed)
		return
	}

	resp := h.Schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	writeJSON(w, graphQLResponse{
		Errors:     h.formatErrors(r, resp.Errors),
		Data:       resp.Data,
		Extensions: resp.Extensions,
	}, http.StatusOK)
}

func parseGraphQLRequest(r *http.Request) (*graphQLRequest, error) {
	req := &graphQLRequest{}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if variables := query.Get("variables"); variables != "" {
			if err := json.Unmarshal([]byte(variables), &req.Variables); err != nil {
				return nil, errors.New("Variables are invalid JSON.")
			}
		}
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return nil, errors.New("Unrecognised Content-Type. Please use application/json for GraphQL requests.")
		}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return nil, errors.New("POST body sent invalid JSON.")
		}
	}

	return req, nil
}

// isMutation reports whether the operation to be executed is a mutation.
// Documents that fail to parse are left to Exec to report.
func isMutation(query, operationName string) bool {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: query})
	if gqlErr != nil {
		return false
	}

	for _, op := range doc.Operations {
		if op.Operation != ast.Mutation {
			continue
		}
		if operationName == "" || op.Name == operationName {
			return true
		}
	}
	return false
}

// formatErrors rewrites resolver errors into {message, status, data}. Errors
// in the query document itself keep their GraphQL shape.
func (h *Handlers) formatErrors(r *http.Request, errs []*gqlerrors.QueryError) []interface{} {
	if len(errs) == 0 {
		return nil
	}

	formatted := make([]interface{}, 0, len(errs))
	for _, qe := range errs {
		if qe.ResolverError == nil {
			formatted = append(formatted, qe)
			continue
		}

		appErr := service.AsError(qe.ResolverError)
		if appErr.Status >= http.StatusInternalServerError {
			h.Log.Errorw("Ошибка резолвера",
				"requestID", middleware.RequestIDFromContext(r.Context()),
				"field", qe.Path,
				"error", resolverCause(qe.ResolverError),
			)
		}
		formatted = append(formatted, newErrorResponse(appErr))
	}

	return formatted
}

func resolverCause(err error) error {
	var appErr *service.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err
	}
	return err
}
