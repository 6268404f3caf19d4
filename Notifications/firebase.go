package Notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"Harmony/Models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Global Firebase client; nil when push is not configured.
var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase wires the FCM client. Call once at startup; an empty
// credentials path leaves push disabled.
func InitFirebase(credentialsPath string) error {
	if credentialsPath == "" {
		log.Println("Firebase credentials not configured, push notifications disabled")
		return nil
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// pushToUser sends a notification to every device the user registered.
// Best-effort: failures are logged, never returned to the workflow.
func pushToUser(db *gorm.DB, userID uint, title, body string) {
	if firebaseClient == nil {
		return
	}

	var tokens []Models.DeviceToken
	if err := db.Where("user_id = ?", userID).Find(&tokens).Error; err != nil {
		log.Printf("Failed to load device tokens for user %d: %v", userID, err)
		return
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token.Value,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		}
		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if _, err := firebaseClient.Send(sendCtx, message); err != nil {
			log.Printf("Error sending notification to user %d: %v", userID, err)
		}
		cancel()
	}
}
