package handlers

import (
	"marrent/internal/repos"
	"marrent/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	DashboardHandler    *DashboardHandler
	EquipmentHandler    *EquipmentHandler
	CustomerHandler     *CustomerHandler
	RentalHandler       *RentalHandler
	AvailabilityHandler *AvailabilityHandler
	AdminHandler        *AdminHandler

	// TrackingSvc is exposed for the cron scheduler wired in main.
	TrackingSvc *services.TrackingService
}

func NewDeps(db *sqlx.DB, backup services.Backup) *Deps {
	equipRepo := repos.NewEquipmentRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	rentalRepo := repos.NewRentalRepo(db)
	userRepo := repos.NewUserRepo(db)

	invSvc := services.NewInventoryService(equipRepo)
	invSvc.Backup = backup
	custSvc := services.NewCustomerService(custRepo)
	custSvc.Backup = backup
	trackSvc := services.NewTrackingService(rentalRepo)
	rentalSvc := services.NewRentalService(rentalRepo, equipRepo, custRepo)
	rentalSvc.Backup = backup

	return &Deps{
		DashboardHandler:    &DashboardHandler{Inv: invSvc, Customers: custSvc, Tracking: trackSvc},
		EquipmentHandler:    &EquipmentHandler{Inv: invSvc},
		CustomerHandler:     &CustomerHandler{Customers: custSvc},
		RentalHandler:       &RentalHandler{Rental: rentalSvc, Tracking: trackSvc, Inv: invSvc, Customers: custSvc},
		AvailabilityHandler: &AvailabilityHandler{Inv: invSvc},
		AdminHandler:        &AdminHandler{Users: userRepo},
		TrackingSvc:         trackSvc,
	}
}
