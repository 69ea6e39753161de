package graph

import (
	"context"
	"errors"
	"net/http"

	"sutra-be/internal/api"
	"sutra-be/internal/logger"
	"sutra-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var (
	ErrAdminRequired    = errors.New("admin access required")
	ErrInvalidArguments = errors.New("invalid arguments")
	errUnknownField     = errors.New("unknown field")
)

var codes = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusUnauthorized:        "UNAUTHENTICATED",
	http.StatusForbidden:           "FORBIDDEN",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusConflict:            "CONFLICT",
	http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
}

// fieldError renders err for the root field it failed. Internal errors are
// logged and reported without detail.
func fieldError(ctx context.Context, field graphql.CollectedField, err error) *gqlerror.Error {
	status := api.StatusFor(err)
	switch {
	case errors.Is(err, ErrAdminRequired):
		status = http.StatusForbidden
	case errors.Is(err, ErrInvalidArguments):
		status = http.StatusBadRequest
	}

	gqlErr := &gqlerror.Error{
		Message:    err.Error(),
		Path:       ast.Path{ast.PathName(field.Alias)},
		Extensions: map[string]any{"code": codes[status]},
	}

	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		gqlErr.Message = "validation failed"
		gqlErr.Extensions["fields"] = verr.Fields
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(ctx).Error("graphql field failed",
			zap.String("layer", "graph"),
			zap.String("field", field.Name),
			zap.Error(err),
		)
		gqlErr.Message = "internal server error"
	}
	return gqlErr
}
