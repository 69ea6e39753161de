package graph

import (
	"context"

	"sutra-be/internal/user"
	"sutra-be/internal/utils"

	"github.com/vektah/gqlparser/v2/ast"
)

// authorize enforces @auth on a field definition. SESSION needs any session
// token, USER a signed-in shopper and ADMIN an admin session.
func authorize(ctx context.Context, def *ast.FieldDefinition) error {
	d := def.Directives.ForName("auth")
	if d == nil {
		return nil
	}

	role := "SESSION"
	if v, ok := d.ArgumentMap(nil)["role"].(string); ok && v != "" {
		role = v
	}

	if _, ok := utils.GetSessionIDFromContext(ctx); !ok {
		return user.ErrSessionRequired
	}
	switch role {
	case "USER":
		if _, ok := utils.GetUserIDFromContext(ctx); !ok {
			return user.ErrNotSignedIn
		}
	case "ADMIN":
		if !utils.IsAdmin(ctx) {
			return ErrAdminRequired
		}
	}
	return nil
}
