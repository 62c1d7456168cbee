package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/storeadm/backend/internal/domain"
	"github.com/storeadm/backend/pkg/ctxutil"
)

// Import creates a category from an external import run. The import hash is
// mandatory and acts as the idempotency key: a hash already present in the
// tenant rejects the row instead of duplicating it. The existence check is
// advisory; the unique index on (tenant_id, import_hash) is what actually
// guarantees no duplicate lands under concurrent imports.
func (s *Service) Import(ctx context.Context, in CreateInput) (*domain.Category, error) {
	if in.ImportHash == nil || *in.ImportHash == "" {
		return nil, domain.NewLocalizedError("importer.errors.importHashRequired")
	}

	tenantID, ok := ctxutil.TenantIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("import category: %w", domain.ErrConfiguration)
	}

	exists, err := s.repo.ExistsByImportHash(ctx, tenantID, *in.ImportHash)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewLocalizedError("importer.errors.importHashExistent")
	}

	created, err := s.Create(ctx, in)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) && conflict.Field == "import_hash" {
			return nil, domain.NewLocalizedError("importer.errors.importHashExistent")
		}
		return nil, err
	}
	return created, nil
}
