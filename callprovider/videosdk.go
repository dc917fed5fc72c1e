package callprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	VideoSDKRoomsURL = "https://api.videosdk.live/v2/rooms"

	// Voice rooms use the provider's default 24 hour lifetime.
	videoSDKRoomLifetime = 24 * time.Hour
)

// VideoSDKProvider creates token-based voice rooms. Clients join with the
// room id plus a minted participant token rather than a URL.
type VideoSDKProvider struct {
	apiKey  string
	secret  string
	BaseURL string
	client  *resty.Client
}

func NewVideoSDKProvider(apiKey, secret string) (*VideoSDKProvider, error) {
	if apiKey == "" || secret == "" {
		return nil, fmt.Errorf("videosdk: %w", ErrNotConfigured)
	}
	return &VideoSDKProvider{
		apiKey:  apiKey,
		secret:  secret,
		BaseURL: VideoSDKRoomsURL,
		client:  resty.New(),
	}, nil
}

func (p *VideoSDKProvider) CreateRoom(ctx context.Context, complaintID uint) (*Room, error) {
	now := time.Now()

	// Server-side token with moderator rights, used only for the API call.
	serverToken, err := MintToken(p.apiKey, p.secret, []string{PermAllowJoin, PermAllowMod}, videoSDKRoomLifetime, now)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", serverToken).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"customRoomId": fmt.Sprintf("complaintdesk-%d-%d", complaintID, now.UnixMilli()),
		}).
		Post(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("videosdk: room creation request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("videosdk: room creation failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	var roomData struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(resp.Body(), &roomData); err != nil {
		return nil, fmt.Errorf("videosdk: invalid room response: %w", err)
	}
	if roomData.RoomID == "" {
		return nil, fmt.Errorf("videosdk: room response missing roomId")
	}

	// Join-only token handed to clients.
	participantToken, err := MintToken(p.apiKey, p.secret, []string{PermAllowJoin}, videoSDKRoomLifetime, now)
	if err != nil {
		return nil, err
	}

	return &Room{
		ID:        roomData.RoomID,
		Token:     participantToken,
		ExpiresAt: now.Add(videoSDKRoomLifetime),
	}, nil
}

// EndsPriorCalls is true for voice rooms: any still-active call for the
// complaint is ended before the new record is inserted.
func (p *VideoSDKProvider) EndsPriorCalls() bool { return true }

// AdminOnly is true: only admins may start voice rooms.
func (p *VideoSDKProvider) AdminOnly() bool { return true }
