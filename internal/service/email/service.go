package email

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v3"

	"handypro/internal/config"
)

type Service interface {
	SendRegistrationEmail(ctx context.Context, toEmail, username string) error
	SendBookingRequestEmail(ctx context.Context, toEmail, providerName, customerName, serviceName string, bookingDate time.Time) error
	SendBookingStatusEmail(ctx context.Context, toEmail, customerName, serviceName, status string, bookingDate time.Time) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

const bookingDateFormat = "Monday, 2 January 2006 at 15:04"

func (s *service) send(toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("HandyPro <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

// wrap puts the shared header and footer around the body block.
func wrap(title, body string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9fafb;">

	<!-- Header -->
	<div style="background: linear-gradient(135deg, #2563eb 0%%, #1d4ed8 100%%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0; font-size: 28px;">
			HandyPro
		</h1>
		<p style="color: #dbeafe; margin: 10px 0 0 0; font-size: 16px;">
			Trusted help for every home
		</p>
	</div>

	<!-- Content -->
	<div style="background-color: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
%s
		<p style="color: #6b7280; font-size: 14px; margin-top: 30px;">
			This email was sent by HandyPro. If you did not expect it you can safely ignore it.
		</p>
	</div>

</body>
</html>`, title, body)
}

func (s *service) SendRegistrationEmail(ctx context.Context, toEmail, username string) error {
	subject := "Welcome to HandyPro!"

	body := fmt.Sprintf(`
		<h2 style="color: #111827; margin-top: 0;">
			Hi %s!
		</h2>

		<p>
			Thanks for joining <strong>HandyPro</strong>. Your account is ready:
			browse services, book a professional and chat with providers directly.
		</p>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s/login" style="background-color: #2563eb; color: #ffffff; padding: 12px 30px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
				Get Started
			</a>
		</div>`, username, s.config.FrontendURL)

	return s.send(toEmail, subject, wrap(subject, body))
}

func (s *service) SendBookingRequestEmail(ctx context.Context, toEmail, providerName, customerName, serviceName string, bookingDate time.Time) error {
	subject := "New Booking Request - HandyPro"

	body := fmt.Sprintf(`
		<h2 style="color: #111827; margin-top: 0;">
			Hi %s!
		</h2>

		<p>
			You have a new booking request waiting for your decision.
		</p>

		<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<div style="margin-bottom: 10px;">
				<strong>Customer:</strong> %s
			</div>
			<div style="margin-bottom: 10px;">
				<strong>Service:</strong> %s
			</div>
			<div>
				<strong>Date:</strong> %s
			</div>
		</div>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s/provider/requests" style="background-color: #2563eb; color: #ffffff; padding: 12px 30px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
				Review Request
			</a>
		</div>`, providerName, customerName, serviceName, bookingDate.Format(bookingDateFormat), s.config.FrontendURL)

	return s.send(toEmail, subject, wrap(subject, body))
}

func (s *service) SendBookingStatusEmail(ctx context.Context, toEmail, customerName, serviceName, status string, bookingDate time.Time) error {
	subject := fmt.Sprintf("Booking %s - HandyPro", status)

	color := "#10b981"
	if status == "REJECTED" || status == "CANCELLED" {
		color = "#ef4444"
	}

	body := fmt.Sprintf(`
		<h2 style="color: #111827; margin-top: 0;">
			Hi %s!
		</h2>

		<p>
			There is an update on your booking.
		</p>

		<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<div style="margin-bottom: 10px;">
				<strong>Service:</strong> %s
			</div>
			<div style="margin-bottom: 10px;">
				<strong>Date:</strong> %s
			</div>
			<div>
				<strong>Status:</strong>
				<span style="color: %s; font-weight: bold;">%s</span>
			</div>
		</div>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s/dashboard/bookings" style="background-color: #2563eb; color: #ffffff; padding: 12px 30px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
				View Booking
			</a>
		</div>`, customerName, serviceName, bookingDate.Format(bookingDateFormat), color, status, s.config.FrontendURL)

	return s.send(toEmail, subject, wrap(subject, body))
}
