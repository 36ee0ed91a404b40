package account

import (
	"time"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/unitofwork"
)

const (
	dashboardTransactions = 50
	dashboardTokens       = 50
	defaultDailyCodeTTL   = time.Minute
)

// Config tunes account-holder reads
type Config struct {
	// DailyCodeTTL is how long the daily code stays cached; zero disables caching
	DailyCodeTTL time.Duration
}

// AccountUseCase implements usecase.AccountUseCase
type AccountUseCase struct {
	runner       *unitofwork.Runner
	reports      persistence.ReportRepository
	cache        coreport.StateStore
	config       Config
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAccountUseCase creates a new account use case
func NewAccountUseCase(
	runner *unitofwork.Runner,
	reports persistence.ReportRepository,
	cache coreport.StateStore,
	config Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.AccountUseCase {
	if config.DailyCodeTTL < 0 {
		config.DailyCodeTTL = defaultDailyCodeTTL
	}
	return &AccountUseCase{
		runner:       runner,
		reports:      reports,
		cache:        cache,
		config:       config,
		timeProvider: timeProvider,
		logger:       logger,
	}
}
