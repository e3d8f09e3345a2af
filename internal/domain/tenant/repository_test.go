package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theroom/internal/database/dbtest"
)

func newTenant(email, domain string) *Tenant {
	t := &Tenant{Name: "Otel", AdminEmail: email, PasswordHash: "x"}
	if domain != "" {
		t.CustomDomain = &domain
	}
	return t
}

func TestRepositoryCreate_ReportsTakenField(t *testing.T) {
	repo := NewRepository(dbtest.Open(t, &Tenant{}))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newTenant("a@example.com", "a.example.com")))

	err := repo.Create(ctx, newTenant("b@example.com", "a.example.com"))
	assert.ErrorIs(t, err, ErrDomainTaken)

	err = repo.Create(ctx, newTenant("a@example.com", "b.example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	err = repo.Create(ctx, newTenant("a@example.com", "a.example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	err = repo.Create(ctx, newTenant("a@example.com", ""))
	assert.ErrorIs(t, err, ErrEmailTaken)
}
