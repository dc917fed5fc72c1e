package callprovider

import (
	"complaintdesk/config"
	"context"
	"errors"
	"log"
	"time"
)

// ErrNotConfigured is returned when a provider's API credentials are missing.
var ErrNotConfigured = errors.New("call provider is not configured")

// Room is the provider's answer to a room-creation request.
type Room struct {
	ID        string
	URL       string // directly openable join URL; empty for token-joined providers
	Token     string // participant join token; empty for URL-joined providers
	ExpiresAt time.Time
}

// Provider provisions ephemeral call rooms with an external vendor.
type Provider interface {
	// CreateRoom provisions a fresh room for the complaint. Nothing is
	// persisted here; on failure no room reference leaks to the caller.
	CreateRoom(ctx context.Context, complaintID uint) (*Room, error)
	// EndsPriorCalls reports whether provisioning should close earlier
	// active calls for the same complaint before recording the new one.
	// The URL-based variant leaves them open; do not unify the two.
	EndsPriorCalls() bool
	// AdminOnly reports whether only admins may initiate rooms.
	AdminOnly() bool
}

// Video and Voice are the two deployed provider variants, selected by which
// route the request came in on. Both are constructed at startup.
var (
	Video Provider
	Voice Provider
)

// Init constructs the providers from AppConfig. Missing credentials are fatal
// here rather than surfacing as 500s on the first call.
func Init() {
	var err error

	Video, err = NewDailyProvider(config.AppConfig.DailyApiKey)
	if err != nil {
		log.Fatalf("Daily provider init failed: %v", err)
	}

	Voice, err = NewVideoSDKProvider(config.AppConfig.VideoSDKApiKey, config.AppConfig.VideoSDKSecret)
	if err != nil {
		log.Fatalf("VideoSDK provider init failed: %v", err)
	}
}
