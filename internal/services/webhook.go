package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cheesy-parts/cheesyparts/internal/models"
)

// Team notifications go to a single Slack-compatible incoming webhook
// configured through NOTIFY_WEBHOOK. When it is unset every notify call
// is a no-op.

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const webhookUsername = "Cheesy Parts"

// NotifyUserPending tells the team channel that a new account is
// waiting for admin approval.
func NotifyUserPending(user models.User) error {
	payload := SlackWebhookRequest{
		Username:  webhookUsername,
		IconEmoji: ":bust_in_silhouette:",
		Text:      "A new account is waiting for approval",
		Attachments: []SlackAttachment{
			{
				Color: "warning",
				Title: fmt.Sprintf("%s %s registered", user.FirstName, user.LastName),
				Fields: []SlackField{
					{Title: "Email", Value: user.Email, Short: true},
					{Title: "Permission", Value: user.Permission, Short: true},
				},
				Footer:    "Enable the account from the user admin page",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return sendWebhook(payload)
}

// NotifyOrderCommitted announces an order moving out of "open" so
// purchasers know money is in flight.
func NotifyOrderCommitted(project models.Project, order models.Order) error {
	paidForBy := order.PaidForBy
	if paidForBy == "" {
		paidForBy = "Unknown"
	}

	payload := SlackWebhookRequest{
		Username:  webhookUsername,
		IconEmoji: ":package:",
		Text:      fmt.Sprintf("Order #%d is now %s", order.ID, order.Status),
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: fmt.Sprintf("%s order for project %s", order.VendorName, project.Name),
				Fields: []SlackField{
					{Title: "Vendor", Value: order.VendorName, Short: true},
					{Title: "Status", Value: order.Status, Short: true},
					{Title: "Paid for by", Value: paidForBy, Short: true},
				},
				Footer:    fmt.Sprintf("Project: %s", project.Name),
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return sendWebhook(payload)
}

func sendWebhook(payload SlackWebhookRequest) error {
	webhookURL := os.Getenv("NOTIFY_WEBHOOK")

	if webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
