package admin

import (
	"io"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/unitofwork"
)

const (
	defaultIngestBatchSize = 500
	defaultSearchLimit     = 20
	recentTransactions     = 50
	keyGenerationAttempts  = 3
)

// Config tunes administrative operations
type Config struct {
	IngestBatchSize int
}

// Service implements usecase.AdminUseCase. Every operation is its own unit of work.
type Service struct {
	runner       *unitofwork.Runner
	reports      persistence.ReportRepository
	cache        coreport.StateStore
	config       Config
	random       io.Reader
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAdminService creates the Administrative Adjustment Engine.
// random feeds key generation; nil uses crypto/rand.
func NewAdminService(
	runner *unitofwork.Runner,
	reports persistence.ReportRepository,
	cache coreport.StateStore,
	config Config,
	random io.Reader,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.AdminUseCase {
	if config.IngestBatchSize <= 0 {
		config.IngestBatchSize = defaultIngestBatchSize
	}
	return &Service{
		runner:       runner,
		reports:      reports,
		cache:        cache,
		config:       config,
		random:       random,
		timeProvider: timeProvider,
		logger:       logger,
	}
}
