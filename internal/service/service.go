package service

import (
	"github.com/redis/go-redis/v9"

	"github.com/kleberrossi/procman/internal/config"
	"github.com/kleberrossi/procman/internal/repository"
)

// Services agrupa os serviços do módulo.
type Services struct {
	Auth       *AuthService
	Client     *ClientService
	Partner    *PartnerService
	Employee   *EmployeeService
	Packaging  *PackagingService
	Order      *OrderService
	Printing   *PrintingService
	Production *ProductionService
	QC         *QCService
	Shipment   *ShipmentService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		Client:    NewClientService(repos.Client, repos.Sequence),
		Partner:   NewPartnerService(repos.Partner, repos.Sequence),
		Employee:  NewEmployeeService(repos.Employee, repos.Partner),
		Packaging: NewPackagingService(repos.Packaging),
		Order: NewOrderService(repos.Order, repos.Packaging, repos.Sequence,
			repos.AuditLog, rdb, cfg.Workflow.OrderTransitions),
		Printing:   NewPrintingService(repos.Printing, repos.Order, repos.Sequence, repos.AuditLog),
		Production: NewProductionService(repos.Production, repos.Order, repos.Printing, repos.Sequence, repos.AuditLog),
		QC:         NewQCService(repos.QC, repos.Order, repos.AuditLog),
		Shipment:   NewShipmentService(repos.Shipment, repos.Order, repos.AuditLog),
	}
}
