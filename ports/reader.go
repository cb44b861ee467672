package ports

import (
	"context"

	"healthlab/domain/health"
)

// DatasetReader loads a validated health dataset from an external source
type DatasetReader interface {
	ReadDataset(ctx context.Context) (*health.Dataset, error)
}
