package cmd

import (
	"parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	metrics    *metrics.Metrics
	cascader   services.CommitCascader
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, notifier ports.Notifier, m *metrics.Metrics) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		metrics:    m,
		cascader:   services.NewCommitCascader(),
	}
}

func (c *CompositionRoot) CreateCreateTrackingItemCommandHandler() commands.CreateTrackingItemCommandHandler {
	return commands.NewCreateTrackingItemCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateUpdateTrackingStatusCommandHandler() commands.UpdateTrackingStatusCommandHandler {
	return commands.NewUpdateTrackingStatusCommandHandler(c.trackingOutboxUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateSplitPieceCommandHandler() commands.SplitPieceCommandHandler {
	return commands.NewSplitPieceCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateDeletePieceCommandHandler() commands.DeletePieceCommandHandler {
	return commands.NewDeletePieceCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateRequestReturnCommandHandler() commands.RequestReturnCommandHandler {
	return commands.NewRequestReturnCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateCancelReturnCommandHandler() commands.CancelReturnCommandHandler {
	return commands.NewCancelReturnCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateCreateBoxCommandHandler() commands.CreateBoxCommandHandler {
	return commands.NewCreateBoxCommandHandler(c.boxUoWFactory())
}

func (c *CompositionRoot) CreateAddPieceToBoxCommandHandler() commands.AddPieceToBoxCommandHandler {
	return commands.NewAddPieceToBoxCommandHandler(c.boxTrackingUoWFactory())
}

func (c *CompositionRoot) CreateRemovePieceFromBoxCommandHandler() commands.RemovePieceFromBoxCommandHandler {
	return commands.NewRemovePieceFromBoxCommandHandler(c.trackingAuditUoWFactory())
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateAddBoxToShipmentCommandHandler() commands.AddBoxToShipmentCommandHandler {
	return commands.NewAddBoxToShipmentCommandHandler(c.shipmentCascadeUoWFactory())
}

func (c *CompositionRoot) CreateRemoveBoxFromShipmentCommandHandler() commands.RemoveBoxFromShipmentCommandHandler {
	return commands.NewRemoveBoxFromShipmentCommandHandler(c.shipmentCascadeUoWFactory(), c.cascader)
}

func (c *CompositionRoot) CreateCommitShipmentCommandHandler() commands.CommitShipmentCommandHandler {
	return commands.NewCommitShipmentCommandHandler(c.shipmentCascadeUoWFactory(), c.cascader, c.metrics)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentCascadeUoWFactory())
}

func (c *CompositionRoot) CreateCreateLotCommandHandler() commands.CreateLotCommandHandler {
	return commands.NewCreateLotCommandHandler(c.lotUoWFactory())
}

func (c *CompositionRoot) CreateAssignBoxToLotCommandHandler() commands.AssignBoxToLotCommandHandler {
	return commands.NewAssignBoxToLotCommandHandler(c.boxLotUoWFactory())
}

func (c *CompositionRoot) CreateCreatePackBoxCommandHandler() commands.CreatePackBoxCommandHandler {
	return commands.NewCreatePackBoxCommandHandler(c.packBoxUoWFactory())
}

func (c *CompositionRoot) CreateAddItemToPackBoxCommandHandler() commands.AddItemToPackBoxCommandHandler {
	return commands.NewAddItemToPackBoxCommandHandler(c.packBoxTrackingUoWFactory())
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateAddPackBoxToDeliveryCommandHandler() commands.AddPackBoxToDeliveryCommandHandler {
	return commands.NewAddPackBoxToDeliveryCommandHandler(c.deliveryCascadeUoWFactory())
}

func (c *CompositionRoot) CreateCommitDeliveryCommandHandler() commands.CommitDeliveryCommandHandler {
	return commands.NewCommitDeliveryCommandHandler(c.deliveryCascadeUoWFactory(), c.cascader)
}

func (c *CompositionRoot) CreateRemovePackBoxFromDeliveryCommandHandler() commands.RemovePackBoxFromDeliveryCommandHandler {
	return commands.NewRemovePackBoxFromDeliveryCommandHandler(c.deliveryCascadeUoWFactory(), c.cascader)
}

func (c *CompositionRoot) CreateDeleteDeliveryCommandHandler() commands.DeleteDeliveryCommandHandler {
	return commands.NewDeleteDeliveryCommandHandler(c.deliveryCascadeUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	return commands.NewDispatchOutboxCommandHandler(c.outboxUoWFactory(), c.notifier, c.metrics)
}

func (c *CompositionRoot) CreatePurgeExpiredTrackingItemsCommandHandler() commands.PurgeExpiredTrackingItemsCommandHandler {
	return commands.NewPurgeExpiredTrackingItemsCommandHandler(c.trackingUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateGetTrackingItemByNumberQueryHandler() queries.GetTrackingItemByNumberQueryHandler {
	return queries.NewGetTrackingItemByNumberQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingItemsByStatusQueryHandler() queries.GetTrackingItemsByStatusQueryHandler {
	return queries.NewGetTrackingItemsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentManifestQueryHandler() queries.GetShipmentManifestQueryHandler {
	return queries.NewGetShipmentManifestQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLotWeightRollupQueryHandler() queries.GetLotWeightRollupQueryHandler {
	return queries.NewGetLotWeightRollupQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFailedJobsQueryHandler() queries.GetFailedJobsQueryHandler {
	return queries.NewGetFailedJobsQueryHandler(c.gormDB)
}

// CreateServer wires every use case handler into the HTTP server.
func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.ServerHandlers{
		CreateTrackingItem:        c.CreateCreateTrackingItemCommandHandler(),
		UpdateTrackingStatus:      c.CreateUpdateTrackingStatusCommandHandler(),
		SplitPiece:                c.CreateSplitPieceCommandHandler(),
		DeletePiece:               c.CreateDeletePieceCommandHandler(),
		RequestReturn:             c.CreateRequestReturnCommandHandler(),
		CancelReturn:              c.CreateCancelReturnCommandHandler(),
		CreateBox:                 c.CreateCreateBoxCommandHandler(),
		AddPieceToBox:             c.CreateAddPieceToBoxCommandHandler(),
		RemovePieceFromBox:        c.CreateRemovePieceFromBoxCommandHandler(),
		CreateShipment:            c.CreateCreateShipmentCommandHandler(),
		AddBoxToShipment:          c.CreateAddBoxToShipmentCommandHandler(),
		RemoveBoxFromShipment:     c.CreateRemoveBoxFromShipmentCommandHandler(),
		CommitShipment:            c.CreateCommitShipmentCommandHandler(),
		DeleteShipment:            c.CreateDeleteShipmentCommandHandler(),
		CreateLot:                 c.CreateCreateLotCommandHandler(),
		AssignBoxToLot:            c.CreateAssignBoxToLotCommandHandler(),
		CreatePackBox:             c.CreateCreatePackBoxCommandHandler(),
		AddItemToPackBox:          c.CreateAddItemToPackBoxCommandHandler(),
		CreateDelivery:            c.CreateCreateDeliveryCommandHandler(),
		AddPackBoxToDelivery:      c.CreateAddPackBoxToDeliveryCommandHandler(),
		CommitDelivery:            c.CreateCommitDeliveryCommandHandler(),
		RemovePackBoxFromDelivery: c.CreateRemovePackBoxFromDeliveryCommandHandler(),
		DeleteDelivery:            c.CreateDeleteDeliveryCommandHandler(),
		GetTrackingItem:           c.CreateGetTrackingItemByNumberQueryHandler(),
		ListTrackingItems:         c.CreateGetTrackingItemsByStatusQueryHandler(),
		ShipmentManifest:          c.CreateGetShipmentManifestQueryHandler(),
		LotWeightRollup:           c.CreateGetLotWeightRollupQueryHandler(),
		FailedJobs:                c.CreateGetFailedJobsQueryHandler(),
	})
}

// The GORM unit of work satisfies every narrow UoW interface; the Func
// factories below adapt it to the factory type each handler expects.

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingAuditUoWFactory() commands.TrackingAuditUoWFactory {
	return FuncTrackingAuditUoWFactory(func() commands.TrackingAuditUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingOutboxUoWFactory() commands.TrackingOutboxUoWFactory {
	return FuncTrackingOutboxUoWFactory(func() commands.TrackingOutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) boxUoWFactory() commands.BoxUoWFactory {
	return FuncBoxUoWFactory(func() commands.BoxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) boxTrackingUoWFactory() commands.BoxTrackingUoWFactory {
	return FuncBoxTrackingUoWFactory(func() commands.BoxTrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) boxLotUoWFactory() commands.BoxLotUoWFactory {
	return FuncBoxLotUoWFactory(func() commands.BoxLotUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentCascadeUoWFactory() commands.ShipmentCascadeUoWFactory {
	return FuncShipmentCascadeUoWFactory(func() commands.ShipmentCascadeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lotUoWFactory() commands.LotUoWFactory {
	return FuncLotUoWFactory(func() commands.LotUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) packBoxUoWFactory() commands.PackBoxUoWFactory {
	return FuncPackBoxUoWFactory(func() commands.PackBoxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) packBoxTrackingUoWFactory() commands.PackBoxTrackingUoWFactory {
	return FuncPackBoxTrackingUoWFactory(func() commands.PackBoxTrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryCascadeUoWFactory() commands.DeliveryCascadeUoWFactory {
	return FuncDeliveryCascadeUoWFactory(func() commands.DeliveryCascadeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncTrackingAuditUoWFactory func() commands.TrackingAuditUoW

func (f FuncTrackingAuditUoWFactory) Create() commands.TrackingAuditUoW {
	return f()
}

type FuncTrackingOutboxUoWFactory func() commands.TrackingOutboxUoW

func (f FuncTrackingOutboxUoWFactory) Create() commands.TrackingOutboxUoW {
	return f()
}

type FuncBoxUoWFactory func() commands.BoxUoW

func (f FuncBoxUoWFactory) Create() commands.BoxUoW {
	return f()
}

type FuncBoxTrackingUoWFactory func() commands.BoxTrackingUoW

func (f FuncBoxTrackingUoWFactory) Create() commands.BoxTrackingUoW {
	return f()
}

type FuncBoxLotUoWFactory func() commands.BoxLotUoW

func (f FuncBoxLotUoWFactory) Create() commands.BoxLotUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncShipmentCascadeUoWFactory func() commands.ShipmentCascadeUoW

func (f FuncShipmentCascadeUoWFactory) Create() commands.ShipmentCascadeUoW {
	return f()
}

type FuncLotUoWFactory func() commands.LotUoW

func (f FuncLotUoWFactory) Create() commands.LotUoW {
	return f()
}

type FuncPackBoxUoWFactory func() commands.PackBoxUoW

func (f FuncPackBoxUoWFactory) Create() commands.PackBoxUoW {
	return f()
}

type FuncPackBoxTrackingUoWFactory func() commands.PackBoxTrackingUoW

func (f FuncPackBoxTrackingUoWFactory) Create() commands.PackBoxTrackingUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncDeliveryCascadeUoWFactory func() commands.DeliveryCascadeUoW

func (f FuncDeliveryCascadeUoWFactory) Create() commands.DeliveryCascadeUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
