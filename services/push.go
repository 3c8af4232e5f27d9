package services

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// PushMessage carries the reminder summary sent to the manager device.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
	Token string
}

// Pusher sends one push message and returns the transport's message id.
type Pusher interface {
	Send(ctx context.Context, msg PushMessage) (string, error)
}

type FCMPusher struct {
	client *messaging.Client
}

func NewFCMPusher(ctx context.Context, credentialsB64 string) (*FCMPusher, error) {
	creds, err := base64.StdEncoding.DecodeString(credentialsB64)
	if err != nil {
		return nil, fmt.Errorf("decode firebase credentials: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}

	return &FCMPusher{client: client}, nil
}

func (p *FCMPusher) Send(ctx context.Context, msg PushMessage) (string, error) {
	return p.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data:  msg.Data,
		Token: msg.Token,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Icon:               "/icon-192x192.png",
				Badge:              "/badge-72x72.png",
				Tag:                "booking-reminder",
				RequireInteraction: true,
				Actions: []*messaging.WebpushNotificationAction{
					{Action: "view", Title: "View Bookings"},
				},
			},
		},
	})
}
