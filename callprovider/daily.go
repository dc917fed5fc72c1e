package callprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DailyRoomsURL = "https://api.daily.co/v1/rooms"

	// Ad-hoc video rooms live for one hour.
	dailyRoomLifetime = time.Hour
)

// DailyProvider creates URL-based video rooms on Daily.co. Clients join by
// opening the returned room URL; no per-participant token is involved.
type DailyProvider struct {
	apiKey  string
	BaseURL string
	client  *resty.Client
}

func NewDailyProvider(apiKey string) (*DailyProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("daily: %w", ErrNotConfigured)
	}
	return &DailyProvider{
		apiKey:  apiKey,
		BaseURL: DailyRoomsURL,
		client:  resty.New(),
	}, nil
}

func (p *DailyProvider) CreateRoom(ctx context.Context, complaintID uint) (*Room, error) {
	expiresAt := time.Now().Add(dailyRoomLifetime)

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"privacy": "public",
			"properties": map[string]interface{}{
				"exp":                expiresAt.Unix(),
				"enable_chat":        true,
				"enable_screenshare": true,
			},
		}).
		Post(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("daily: room creation request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("daily: room creation failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	var roomData struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &roomData); err != nil {
		return nil, fmt.Errorf("daily: invalid room response: %w", err)
	}

	return &Room{
		ID:        roomData.Name,
		URL:       roomData.URL,
		ExpiresAt: expiresAt,
	}, nil
}

// EndsPriorCalls is false for Daily rooms: a new video room is recorded
// alongside any still-active one for the same complaint.
func (p *DailyProvider) EndsPriorCalls() bool { return false }

// AdminOnly is false: either party may start a video room.
func (p *DailyProvider) AdminOnly() bool { return false }
