package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/executivemachines/rental-api/internal/models"
)

// NotificationService sends settlement confirmations over SMS.
type NotificationService struct {
	textbeltKey string
}

func NewNotificationService(textbeltKey string) *NotificationService {
	return &NotificationService{textbeltKey: textbeltKey}
}

// SendPaymentConfirmationSMS texts the booking's contact number once
// the gateway confirms settlement.
func (s *NotificationService) SendPaymentConfirmationSMS(booking *models.Booking) {
	if s == nil || s.textbeltKey == "" {
		return
	}
	if booking.Number == "" {
		log.Println("SMS not sent: booking has no contact number.")
		return
	}

	smsBody := fmt.Sprintf(
		"Payment received: %.2f %s for booking %s. Thank you, %s!",
		booking.TotalPrice,
		booking.Currency,
		booking.TransitionID,
		booking.FirstName,
	)

	// Send in a goroutine so it doesn't block the callback response
	go sendSmsWithTextbelt(s.textbeltKey, booking.Number, smsBody)
}

func sendSmsWithTextbelt(key, phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     key,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		log.Printf("Failed to send Textbelt request for number %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	success, _ := result["success"].(bool)
	if !success {
		errorMsg, _ := result["error"].(string)
		log.Printf("Failed to send SMS via Textbelt to %s. Reason: %s", phone, errorMsg)
	} else {
		log.Printf("Successfully sent SMS via Textbelt to %s", phone)
	}
}
