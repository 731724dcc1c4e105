package services

import (
	"github.com/SAP-F-2025/proctoring-service/internal/cache"
	"github.com/SAP-F-2025/proctoring-service/internal/events"
	"github.com/SAP-F-2025/proctoring-service/internal/repositories"
	"github.com/SAP-F-2025/proctoring-service/internal/validator"
)

// ServiceManager aggregates all services behind one dependency for the
// handler layer.
type ServiceManager interface {
	Violation() ViolationService
	Export() ExportService
}

type serviceManager struct {
	violation ViolationService
	export    ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger Logger,
	v *validator.Validator,
) ServiceManager {
	return &serviceManager{
		violation: NewViolationService(repo, cacheService, publisher, logger, v),
		export:    NewExportService(repo, publisher, logger),
	}
}

func (m *serviceManager) Violation() ViolationService { return m.violation }
func (m *serviceManager) Export() ExportService       { return m.export }
