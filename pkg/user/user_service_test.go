package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var repoStub = NewStubUserRepo()
var service Service

func setup(t *testing.T) func() {
	service = NewUserService(repoStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func ctxAs(u User) context.Context {
	return WithUser(context.Background(), u)
}

func hrUser() User {
	return User{Id: 1, Name: "HR Person", Mail: "hr@pixeltruth.com", Role: RoleHR, Department: "SEO"}
}

func directorUser() User {
	return User{Id: 2, Name: "The Director", Mail: "director@pixeltruth.com", Role: RoleDirector, Department: "Management"}
}

func seedUser(t *testing.T, u User, password string) User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u.PasswordHash = string(hash)
	id, err := repoStub.CreateUser(context.Background(), u)
	require.NoError(t, err)
	u.Id = id
	return u
}

func TestServiceImpl_Authenticate(t *testing.T) {
	t.Run("returns the user when all credentials match", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seeded := seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		u, err := service.Authenticate(context.Background(), "jane@pixeltruth.com", "secret", RoleEmployee, "SEO")

		require.NoError(t, err)
		assert.Equal(t, seeded.Id, u.Id)
		assert.Equal(t, "Jane", u.Name)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		_, err := service.Authenticate(context.Background(), "jane@pixeltruth.com", "wrong", RoleEmployee, "SEO")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects a role mismatch even with the right password", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		_, err := service.Authenticate(context.Background(), "jane@pixeltruth.com", "secret", RoleTeamLead, "SEO")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects a department mismatch", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		_, err := service.Authenticate(context.Background(), "jane@pixeltruth.com", "secret", RoleEmployee, "Content")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects an unknown mail", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Authenticate(context.Background(), "nobody@pixeltruth.com", "secret", RoleEmployee, "SEO")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("hashes the password and stores the user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctxAs(hrUser()),
			User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEqual(t, "secret", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret")))
	})

	t.Run("refuses creation by a plain employee", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		employee := User{Id: 5, Role: RoleEmployee, Department: "SEO"}

		_, err := service.Create(ctxAs(employee),
			User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("refuses a duplicate mail", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		_, err := service.Create(ctxAs(hrUser()),
			User{Name: "Other Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "secret")

		assert.ErrorIs(t, err, ErrMailTaken)
	})

	t.Run("refuses an unknown role", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctxAs(hrUser()),
			User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: "Intern", Department: "SEO"}, "secret")

		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("directors see every department", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "x")
		seedUser(t, User{Name: "Tom", Mail: "tom@pixeltruth.com", Role: RoleEmployee, Department: "Content"}, "x")

		users, err := service.List(ctxAs(directorUser()))

		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("HR sees only their own department", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "x")
		seedUser(t, User{Name: "Tom", Mail: "tom@pixeltruth.com", Role: RoleEmployee, Department: "Content"}, "x")

		users, err := service.List(ctxAs(hrUser()))

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Jane", users[0].Name)
	})

	t.Run("employees may not list accounts", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.List(ctxAs(User{Id: 5, Role: RoleEmployee, Department: "SEO"}))

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("deletes an existing user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		seeded := seedUser(t, User{Name: "Jane", Mail: "jane@pixeltruth.com", Role: RoleEmployee, Department: "SEO"}, "x")

		deleted, err := service.Delete(ctxAs(hrUser()), seeded.Id)

		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("reports false for a missing user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		deleted, err := service.Delete(ctxAs(hrUser()), 999)

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
