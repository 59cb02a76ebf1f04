package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

func TestUser_CreateHashesPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.users.Create(ctx, usecase.CreateUserInput{
		Username: "johndoe", Email: " John@Example.com ", Password: "password123", FirstName: "John", LastName: "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", u.Email)
	assert.Equal(t, "customer", u.Role)

	stored, err := e.repos.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))

	got, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "johndoe", got.Username)
}

func TestUser_CreateRejectsDuplicates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Create(ctx, usecase.CreateUserInput{Username: "a", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = e.users.Create(ctx, usecase.CreateUserInput{Username: "a", Email: "b@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, usecase.ErrConflict))

	_, err = e.users.Create(ctx, usecase.CreateUserInput{Username: "b", Email: "A@EXAMPLE.COM", Password: "password123"})
	assert.True(t, errors.Is(err, usecase.ErrConflict))
}

func TestUser_CreateValidation(t *testing.T) {
	e := newEnv(t)

	_, err := e.users.Create(context.Background(), usecase.CreateUserInput{
		Username: " ", Email: "nope", Password: "short", Role: "root",
	})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Len(t, he.Details, 4)

	_, err = e.users.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, usecase.ErrNotFound))
}

func TestUser_CreateRejectsLongPassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Create(ctx, usecase.CreateUserInput{
		Username: "long", Email: "long@example.com", Password: strings.Repeat("x", 80),
	})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.True(t, errors.Is(err, usecase.ErrValidation))
	require.Len(t, he.Details, 1)
	assert.Equal(t, "password", he.Details[0].Field)

	//72バイトちょうどは通る
	_, err = e.users.Create(ctx, usecase.CreateUserInput{
		Username: "edge", Email: "edge@example.com", Password: strings.Repeat("x", 72),
	})
	assert.NoError(t, err)
}
