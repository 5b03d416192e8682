package di

import (
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/majidmanzarpour/workspace-cli/internal/batch"
)

// BatchService holds the batch clients for the families that expose a
// batch endpoint.
type BatchService struct {
	Gmail    *batch.Client
	Drive    *batch.Client
	Calendar *batch.Client
	Chat     *batch.Client
}

// NewBatch builds the batch clients with a generous shared timeout.
// Batch exchanges carry up to a hundred requests, so the per-request
// HTTP timeout from config is too tight here.
func NewBatch(i do.Injector) (*BatchService, error) {
	logSvc := do.MustInvoke[*LoggerService](i)

	httpClient := &http.Client{Timeout: 120 * time.Second}

	logger := *logSvc.Logger

	return &BatchService{
		Gmail:    batch.Gmail().WithHTTPClient(httpClient).WithLogger(logger),
		Drive:    batch.Drive().WithHTTPClient(httpClient).WithLogger(logger),
		Calendar: batch.Calendar().WithHTTPClient(httpClient).WithLogger(logger),
		Chat:     batch.Chat().WithHTTPClient(httpClient).WithLogger(logger),
	}, nil
}
