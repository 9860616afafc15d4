// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService sends billing SMS to tenants: a message when a
// period's invoices are issued, and scheduled reminders for invoices
// that stay pending.
type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *NotificationService) StartScheduler() {
	c := cron.New()

	// Payment reminders every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendPaymentReminders()
	})

	c.Start()
	log.Println("Notification scheduler started")
}

// NotifyInvoicesIssued messages every tenant of the building that has a
// pending invoice for the period. Failures are logged, never fatal:
// notification is best-effort and must not undo a generation run.
func (s *NotificationService) NotifyInvoicesIssued(buildingID uuid.UUID, billingPeriod string) {
	marker := models.BillingPeriodMarker(billingPeriod)

	var invoices []models.Invoice
	err := s.db.
		Joins("JOIN apartments ON apartments.id = invoices.apartment_id").
		Where("apartments.building_id = ? AND invoices.status = ? AND invoices.description LIKE ?",
			buildingID, models.InvoiceStatusPending, "%"+marker+"%").
		Find(&invoices).Error
	if err != nil {
		log.Printf("Failed to fetch issued invoices for building %v: %v", buildingID, err)
		return
	}

	for _, invoice := range invoices {
		message := fmt.Sprintf("Your utility invoice %s for %s is ready. Total: %s.",
			invoice.InvoiceNumber, billingPeriod, invoice.Total.StringFixed(2))
		s.sendToApartment(invoice, "invoice_issued", message)
	}
}

// SendPaymentReminders messages tenants whose invoices have been
// pending for more than 7 days.
func (s *NotificationService) SendPaymentReminders() {
	log.Println("Starting payment reminder processing...")

	// Midnight-anchored so a day's run reminds about the same set of
	// invoices regardless of what time the cron fires.
	cutoff := utils.BeginningOfDay(time.Now()).AddDate(0, 0, -7)

	var invoices []models.Invoice
	err := s.db.
		Where("status = ? AND invoice_date < ?", models.InvoiceStatusPending, cutoff).
		Find(&invoices).Error
	if err != nil {
		log.Printf("Failed to fetch pending invoices: %v", err)
		return
	}

	for _, invoice := range invoices {
		message := fmt.Sprintf("Reminder: invoice %s (total %s) is still unpaid.",
			invoice.InvoiceNumber, invoice.Total.StringFixed(2))
		s.sendToApartment(invoice, "payment_reminder", message)
	}

	log.Println("Payment reminder processing completed")
}

func (s *NotificationService) sendToApartment(invoice models.Invoice, notificationType, message string) {
	// The active contract holds the tenant's phone number
	var contract models.Contract
	if err := s.db.Where("apartment_id = ? AND status = ?", invoice.ApartmentID, models.ContractStatusActive).
		First(&contract).Error; err != nil {
		log.Printf("Apartment %s: no active contract, skipping notification: %v", invoice.ApartmentID, err)
		return
	}
	if contract.TenantPhone == "" {
		log.Printf("Apartment %s: tenant has no phone number on file", invoice.ApartmentID)
		return
	}

	// Send message via Twilio
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(contract.TenantPhone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", contract.TenantPhone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", contract.TenantPhone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", contract.TenantPhone)
	}

	// Log the notification
	notificationLog := models.NotificationLog{
		ApartmentID:  invoice.ApartmentID,
		InvoiceID:    invoice.ID,
		Type:         notificationType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&notificationLog).Error; err != nil {
		log.Printf("Failed to log notification for invoice %s: %v", invoice.ID, err)
	}
}
