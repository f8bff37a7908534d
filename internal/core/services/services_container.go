package services

import (
	"github.com/SscSPs/spend_tracker_app/internal/core/ports"
	portsrepo "github.com/SscSPs/spend_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spend_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/spend_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, llm ports.LLMClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The parser is shared: entries call it, and nothing else talks to the LLM.
	container.Parser = NewParserService(llm, WithParserVersion(cfg.ParserVersion))
	container.Entry = NewEntryService(repos.EntryRepo, container.Parser)
	container.Transaction = NewTransactionService(repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
