package test_utils

import (
	"context"

	"github.com/pixeltruth/mis-backend/pkg/user"
)

// TestUser returns a plain SEO employee, good enough for most tests.
func TestUser() user.User {
	return user.User{
		Id:         123,
		Name:       "Test User",
		Mail:       "test.user@pixeltruth.com",
		Role:       user.RoleEmployee,
		Department: "SEO",
	}
}

// ContextWithUser puts the given user into the context the same way the
// session middleware does.
func ContextWithUser(ctx context.Context, u user.User) context.Context {
	return user.WithUser(ctx, u)
}

// TestContext returns a context carrying the default test user.
func TestContext() context.Context {
	return ContextWithUser(context.Background(), TestUser())
}
