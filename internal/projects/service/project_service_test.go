package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vv-pms/pms-backend/internal/projects/domain"
)

// Validation runs before any repository access, so a nil repo is fine here.
func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(nil)

	t.Run("title required", func(t *testing.T) {
		_, err := svc.Add(ctx, "  ", "desc", nil, 3, 10)
		require.ErrorIs(t, err, domain.ErrInvalidProject)
	})

	t.Run("description required", func(t *testing.T) {
		_, err := svc.Add(ctx, "Compilers", "", nil, 3, 10)
		require.ErrorIs(t, err, domain.ErrInvalidProject)
	})

	t.Run("negative required students", func(t *testing.T) {
		_, err := svc.Add(ctx, "Compilers", "desc", nil, -1, 10)
		require.ErrorIs(t, err, domain.ErrInvalidProject)
	})

	t.Run("unknown program in restrictions", func(t *testing.T) {
		_, err := svc.Add(ctx, "Compilers", "desc", []domain.Program{"BASKET_WEAVING"}, 3, 10)
		require.ErrorIs(t, err, domain.ErrInvalidProject)
	})
}
