package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories agrupa todos os repositórios do módulo.
type Repositories struct {
	User       *UserRepository
	Sequence   *SequenceRepository
	Client     *ClientRepository
	Partner    *PartnerRepository
	Employee   *EmployeeRepository
	Packaging  *PackagingRepository
	Order      *OrderRepository
	AuditLog   *AuditLogRepository
	Printing   *PrintingRepository
	Production *ProductionRepository
	QC         *QCRepository
	Shipment   *ShipmentRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Sequence:   NewSequenceRepository(db),
		Client:     NewClientRepository(db),
		Partner:    NewPartnerRepository(db),
		Employee:   NewEmployeeRepository(db),
		Packaging:  NewPackagingRepository(db),
		Order:      NewOrderRepository(db),
		AuditLog:   NewAuditLogRepository(db),
		Printing:   NewPrintingRepository(db),
		Production: NewProductionRepository(db),
		QC:         NewQCRepository(db),
		Shipment:   NewShipmentRepository(db),
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
