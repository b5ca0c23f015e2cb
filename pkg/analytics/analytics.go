package analytics

import (
	"fmt"
	"log"

	"github.com/posthog/posthog-go"
)

// Service wraps the PostHog client. Event delivery is fire-and-forget: a
// failed capture is logged and never fails the request that produced it.
type Service struct {
	client posthog.Client
}

var GlobalAnalytics *Service

func Init(apiKey, host string) error {
	if apiKey == "" {
		log.Println("PostHog API key not set, analytics disabled")
		return nil
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{
		Endpoint: host,
	})
	if err != nil {
		return fmt.Errorf("error initializing PostHog client: %v", err)
	}

	GlobalAnalytics = &Service{client: client}
	return nil
}

func Capture(userID uint, event string, properties map[string]interface{}) {
	if GlobalAnalytics == nil {
		return
	}

	props := posthog.NewProperties()
	for key, value := range properties {
		props.Set(key, value)
	}

	err := GlobalAnalytics.client.Enqueue(posthog.Capture{
		DistinctId: fmt.Sprintf("user_%d", userID),
		Event:      event,
		Properties: props,
	})
	if err != nil {
		log.Printf("Could not capture analytics event %s: %v", event, err)
	}
}

func Close() {
	if GlobalAnalytics != nil {
		GlobalAnalytics.client.Close()
	}
}
