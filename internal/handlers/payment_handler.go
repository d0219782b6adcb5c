package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/executivemachines/rental-api/internal/events"
	"github.com/executivemachines/rental-api/internal/gateway"
	"github.com/executivemachines/rental-api/internal/models"
)

// requiredBookingFields must all be present and truthy before a payment
// attempt starts. Checked in order; the first missing one fails the
// whole request.
var requiredBookingFields = []string{
	"totalPrice", "currency", "firstName", "email",
	"country", "city", "thana", "postCode", "number",
}

func missingBookingField(doc bson.M) string {
	for _, field := range requiredBookingFields {
		switch v := doc[field].(type) {
		case nil:
			return field
		case string:
			if v == "" {
				return field
			}
		case float64:
			if v == 0 {
				return field
			}
		case bool:
			if !v {
				return field
			}
		}
	}
	return ""
}

func docString(doc bson.M, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func docFloat(doc bson.M, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// StartPayment runs one booking attempt through the gateway.
//
// A pending booking (status false, fresh transitionId) is persisted
// BEFORE the gateway call so a crash mid-flow leaves a reconcilable
// record instead of a gateway-side orphan; if session creation fails
// the pending record is deleted again.
func (h *Handler) StartPayment(c *gin.Context) {
	var booking bson.M
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if field := missingBookingField(booking); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s is required", field)})
		return
	}

	transitionID := uuid.NewString()
	booking["status"] = false
	booking["transitionId"] = transitionID
	booking["createdAt"] = time.Now().UTC()

	collection := h.DB.Collection("booking")
	if _, err := collection.InsertOne(context.TODO(), booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your request"})
		return
	}

	successURL := fmt.Sprintf("%s/payment/success?transitionId=%s", h.Cfg.PublicBaseURL, transitionID)
	failURL := fmt.Sprintf("%s/payment/fail?transitionId=%s", h.Cfg.PublicBaseURL, transitionID)

	req := gateway.TransactionRequest{
		TotalAmount: docFloat(booking, "totalPrice"),
		Currency:    docString(booking, "currency"),
		TranID:      transitionID,
		SuccessURL:  successURL,
		FailURL:     failURL,
		CancelURL:   failURL,
		IPNURL:      failURL,

		CustomerName:     docString(booking, "firstName"),
		CustomerEmail:    docString(booking, "email"),
		CustomerAddress:  docString(booking, "country"),
		CustomerCity:     docString(booking, "city"),
		CustomerState:    docString(booking, "thana"),
		CustomerPostcode: docString(booking, "postCode"),
		CustomerCountry:  docString(booking, "country"),
		CustomerPhone:    docString(booking, "number"),

		ProductName:     "Rental Booking",
		ProductCategory: "Vehicle",
		ProductProfile:  "general",
		ShippingMethod:  "Courier",
	}

	resp, err := h.Gateway.InitiateTransaction(c.Request.Context(), req)
	if err != nil || resp.GatewayPageURL == "" {
		if err != nil {
			log.Printf("Payment init failed for %s: %v", transitionID, err)
		}
		// Compensate the write-ahead record; the attempt never reached
		// the gateway page.
		if _, derr := collection.DeleteOne(context.TODO(), bson.M{"transitionId": transitionID}); derr != nil {
			log.Printf("Failed to compensate pending booking %s: %v", transitionID, derr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": resp.GatewayPageURL})
}

// PaymentSuccess is the gateway's settlement callback. The transitionId
// query parameter is the only correlation we get; a callback without it
// is bounced to the failure page with no payment action taken.
func (h *Handler) PaymentSuccess(c *gin.Context) {
	transitionID := c.Query("transitionId")
	if transitionID == "" {
		c.Redirect(http.StatusFound, h.Cfg.FailRedirect)
		return
	}

	collection := h.DB.Collection("booking")

	var booking models.Booking
	if err := collection.FindOne(context.TODO(), bson.M{"transitionId": transitionID}).Decode(&booking); err != nil {
		c.Redirect(http.StatusFound, h.Cfg.FailRedirect)
		return
	}

	result, err := collection.UpdateOne(context.TODO(), bson.M{"transitionId": transitionID}, bson.M{"$set": bson.M{"status": true}})
	if err != nil || result.ModifiedCount == 0 {
		c.Redirect(http.StatusFound, h.Cfg.FailRedirect)
		return
	}

	evt := events.PaymentSettled{Event: events.RoutingSettled, Version: 1, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
	evt.Data.TransitionID = transitionID
	evt.Data.Email = booking.Email
	evt.Data.Amount = booking.TotalPrice
	evt.Data.Currency = booking.Currency
	if err := h.Events.PublishJSON(context.Background(), events.RoutingSettled, evt); err != nil {
		log.Printf("Failed to publish payment.settled for %s: %v", transitionID, err)
	}

	booking.Status = true
	h.NotificationSvc.SendPaymentConfirmationSMS(&booking)

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?transitionId=%s", h.Cfg.SuccessRedirect, transitionID))
}

// PaymentFail is the gateway's failure/cancel callback. The attempt is
// discarded outright rather than retained as failed.
func (h *Handler) PaymentFail(c *gin.Context) {
	transitionID := c.Query("transitionId")

	collection := h.DB.Collection("booking")
	result, err := collection.DeleteOne(context.TODO(), bson.M{"transitionId": transitionID})
	if err != nil {
		log.Printf("Failed to discard booking %s: %v", transitionID, err)
	}

	if err == nil && result.DeletedCount > 0 {
		evt := events.PaymentFailed{Event: events.RoutingFailed, Version: 1, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
		evt.Data.TransitionID = transitionID
		evt.Data.Reason = "gateway reported failure"
		if perr := h.Events.PublishJSON(context.Background(), events.RoutingFailed, evt); perr != nil {
			log.Printf("Failed to publish payment.failed for %s: %v", transitionID, perr)
		}
	}

	c.Redirect(http.StatusFound, h.Cfg.FailRedirect)
}
