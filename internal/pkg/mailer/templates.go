package mailer

import (
	"fmt"
	"html"
	"strings"
)

// EmergencyAlert holds the fields rendered into the emergency email
// template.
type EmergencyAlert struct {
	RecipientName string
	CustomerName  string
	CustomerPhone string
	Address       string
	Notes         string
	DashboardURL  string
}

// BuildEmergencyEmail renders the specialized emergency template. The
// recipient address is left for the caller to fill in.
func BuildEmergencyEmail(a EmergencyAlert) Message {
	subject := fmt.Sprintf("URGENT: Emergency Care Request from %s", a.CustomerName)

	var hb strings.Builder
	hb.WriteString(`<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif">`)
	hb.WriteString(`<div style="background:#dc2626;color:#fff;padding:20px"><h1>Emergency Care Request</h1></div>`)
	hb.WriteString(`<div style="padding:20px;background:#f9fafb">`)
	fmt.Fprintf(&hb, "<p>Dear %s,</p>", html.EscapeString(a.RecipientName))
	hb.WriteString("<p><strong>An emergency care request has been submitted and requires immediate attention.</strong></p>")
	hb.WriteString(`<div style="background:#fff;padding:15px;border-left:4px solid #dc2626"><h3>Customer Details</h3>`)
	fmt.Fprintf(&hb, "<p><strong>Name:</strong> %s</p>", html.EscapeString(a.CustomerName))
	if a.CustomerPhone != "" {
		fmt.Fprintf(&hb, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(a.CustomerPhone))
	}
	fmt.Fprintf(&hb, "<p><strong>Address:</strong> %s</p>", html.EscapeString(a.Address))
	if a.Notes != "" {
		fmt.Fprintf(&hb, "<p><strong>Notes:</strong> %s</p>", html.EscapeString(a.Notes))
	}
	hb.WriteString("</div><p>Please respond to this emergency request as soon as possible.</p>")
	fmt.Fprintf(&hb, `<p><a href="%s/dashboard" style="background:#dc2626;color:#fff;padding:12px 24px;text-decoration:none">View Dashboard</a></p>`, a.DashboardURL)
	hb.WriteString("</div></div>")

	var tb strings.Builder
	tb.WriteString("URGENT: Emergency Care Request\n\n")
	fmt.Fprintf(&tb, "Dear %s,\n\n", a.RecipientName)
	tb.WriteString("An emergency care request has been submitted and requires immediate attention.\n\n")
	tb.WriteString("Customer Details:\n")
	fmt.Fprintf(&tb, "- Name: %s\n", a.CustomerName)
	if a.CustomerPhone != "" {
		fmt.Fprintf(&tb, "- Phone: %s\n", a.CustomerPhone)
	}
	fmt.Fprintf(&tb, "- Address: %s\n", a.Address)
	if a.Notes != "" {
		fmt.Fprintf(&tb, "- Notes: %s\n", a.Notes)
	}
	fmt.Fprintf(&tb, "\nPlease respond to this emergency request as soon as possible.\n\nVisit your dashboard: %s/dashboard\n", a.DashboardURL)

	return Message{
		Subject: subject,
		HTML:    hb.String(),
		Text:    tb.String(),
	}
}

// BuildNotificationEmail renders the generic notification template used
// for non-emergency types.
func BuildNotificationEmail(title, message, dashboardURL string) Message {
	htmlBody := fmt.Sprintf(
		"<h2>%s</h2><p>%s</p><p><a href=%q>View Dashboard</a></p>",
		html.EscapeString(title),
		html.EscapeString(message),
		dashboardURL+"/dashboard",
	)
	text := fmt.Sprintf("%s\n\n%s\n\nView Dashboard: %s/dashboard", title, message, dashboardURL)

	return Message{
		Subject: title,
		HTML:    htmlBody,
		Text:    text,
	}
}
