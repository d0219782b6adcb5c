package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/executivemachines/rental-api/internal/config"
	"github.com/executivemachines/rental-api/internal/events"
	"github.com/executivemachines/rental-api/internal/gateway"
	"github.com/executivemachines/rental-api/internal/services"
)

// PaymentGateway is the slice of the gateway client the handlers use;
// tests substitute a fake.
type PaymentGateway interface {
	InitiateTransaction(ctx context.Context, r gateway.TransactionRequest) (*gateway.TransactionResponse, error)
}

// Handler carries everything a request needs: the database handle, the
// startup configuration, the payment gateway, and the optional event
// publisher and SMS notifier (both tolerate being nil).
type Handler struct {
	DB              *mongo.Database
	Cfg             *config.Config
	Gateway         PaymentGateway
	Events          *events.Publisher
	NotificationSvc *services.NotificationService
}

func NewHandler(db *mongo.Database, cfg *config.Config, gw PaymentGateway, pub *events.Publisher, notificationSvc *services.NotificationService) *Handler {
	return &Handler{
		DB:              db,
		Cfg:             cfg,
		Gateway:         gw,
		Events:          pub,
		NotificationSvc: notificationSvc,
	}
}
