package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"rentacar/internal/db"
	"rentacar/internal/entities"
)

// SenderService notifies requesters about answered requests by email and,
// for approvals, by SMS. Everything here is best effort: the workflow result
// is already committed when a notification goes out.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// RequestAnswered implements the Notifier hook of the request workflow.
func (s *SenderService) RequestAnswered(view entities.RequestView, paymentURL string) {
	s.sendRequestEmail(view, paymentURL)
	if view.State == db.StateApproved && view.ContactPhone != "" {
		s.sendRequestSMS(view)
	}
}

func (s *SenderService) sendRequestEmail(view entities.RequestView, paymentURL string) {
	if view.ContactEmail == "" {
		log.Printf("Request %d has no contact email, skipping notification", view.ID)
		return
	}

	emailData := entities.RequestEmailData{
		UserName:        view.ContactName,
		RequestID:       view.ID,
		VehicleBrand:    view.Vehicle.Brand,
		VehicleModel:    view.Vehicle.Model,
		PickUpFormatted: view.PickUpDate.Format("02 Jan 2006"),
		ReturnFormatted: view.ReturnDate.Format("02 Jan 2006"),
		Status:          string(view.State),
		PaymentURL:      paymentURL,
		CurrentYear:     time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your RentACar request #%d has been %s", emailData.RequestID, emailData.Status)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour rental request has been %s.\n\n"+
			"Request Details:\n"+
			"Request Number: %d\n"+
			"Vehicle: %s %s\n"+
			"Pick-up: %s\n"+
			"Return: %s\n",
		emailData.UserName, emailData.Status, emailData.RequestID,
		emailData.VehicleBrand, emailData.VehicleModel,
		emailData.PickUpFormatted, emailData.ReturnFormatted,
	)
	if paymentURL != "" {
		plainTextBody += fmt.Sprintf("\nYou can pay for your rental here: %s\n", paymentURL)
	}
	plainTextBody += "\nThank you for choosing RentACar.\n\nRentACar. All rights reserved."

	htmlBody := ""
	tmplPath := filepath.Join("internal", "templates", "request_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("WARNING: could not parse email template (%s): %v", tmplPath, err)
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("WARNING: could not render email template for request %d: %v", emailData.RequestID, err)
		} else {
			htmlBody = htmlBodyBuffer.String()
		}
	}

	go func(toEmail, userName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, userName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("WARNING (async): email for request %d failed: %v", emailData.RequestID, errEmail)
		}
	}(view.ContactEmail, emailData.UserName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) sendRequestSMS(view entities.RequestView) {
	smsMessage := fmt.Sprintf("RentACar: your request #%d was approved!\nPick-up: %s.\nMore details in your email.",
		view.ID, view.PickUpDate.Format("02/01/2006"))

	go func(phone, body string) {
		if errSMS := SendSMS(phone, body); errSMS != nil {
			log.Printf("WARNING (async): SMS for request %d failed: %v", view.ID, errSMS)
		}
	}(view.ContactPhone, smsMessage)
}
