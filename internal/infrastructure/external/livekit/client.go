package livekit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/livekit/protocol/auth"
	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// Client covers the LiveKit operations the meeting lifecycle needs: one
// room per meeting, access tokens per joining participant.
type Client interface {
	CreateRoom(ctx context.Context, name string, options *CreateRoomOptions) (*RoomInfo, error)
	DeleteRoom(ctx context.Context, roomName string) error
	GenerateToken(userID, roomName, participantName string, options *TokenOptions) (string, error)
	ListParticipants(ctx context.Context, roomName string) ([]*ParticipantInfo, error)
	RemoveParticipant(ctx context.Context, roomName, identity string) error
}

// CreateRoomOptions holds options for creating a room
type CreateRoomOptions struct {
	MaxParticipants  int32
	EmptyTimeout     int32 // seconds until an unjoined room is reclaimed
	DepartureTimeout int32 // seconds after the last participant leaves
	Metadata         string
}

// TokenOptions holds options for generating access token
type TokenOptions struct {
	ValidFor       time.Duration
	CanPublish     bool
	CanSubscribe   bool
	CanPublishData bool
	RoomJoin       bool
	RoomAdmin      bool
}

// RoomInfo holds room information
type RoomInfo struct {
	Name            string
	SID             string
	CreationTime    time.Time
	MaxParticipants int32
	NumParticipants int32
	Metadata        string
}

// ParticipantInfo holds participant information
type ParticipantInfo struct {
	SID      string
	Identity string
	Name     string
	Metadata string
	JoinedAt time.Time
}

func defaultRoomOptions() *CreateRoomOptions {
	return &CreateRoomOptions{
		MaxParticipants:  10,
		EmptyTimeout:     300,
		DepartureTimeout: 30,
	}
}

func defaultTokenOptions() *TokenOptions {
	return &TokenOptions{
		ValidFor:       24 * time.Hour,
		CanPublish:     true,
		CanSubscribe:   true,
		CanPublishData: true,
		RoomJoin:       true,
	}
}

// signToken builds and signs a room access token. Both the real and the
// mock client sign real JWTs so joining works against a local LiveKit
// dev server either way.
func signToken(apiKey, apiSecret, userID, roomName, participantName string, options *TokenOptions) (string, error) {
	if options == nil {
		options = defaultTokenOptions()
	}

	grant := &auth.VideoGrant{
		RoomJoin:       options.RoomJoin,
		Room:           roomName,
		CanPublish:     &options.CanPublish,
		CanSubscribe:   &options.CanSubscribe,
		CanPublishData: &options.CanPublishData,
	}
	if options.RoomAdmin {
		grant.RoomAdmin = true
	}

	at := auth.NewAccessToken(apiKey, apiSecret)
	at.AddGrant(grant).
		SetIdentity(userID).
		SetName(participantName).
		SetValidFor(options.ValidFor)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// NewClient creates a LiveKit client. With useMock set, room operations
// are simulated locally while tokens are still signed with the given
// credentials.
func NewClient(url, apiKey, apiSecret string, useMock bool) Client {
	if useMock {
		return &mockClient{apiKey: apiKey, apiSecret: apiSecret}
	}

	return &realClient{
		roomClient: lksdk.NewRoomServiceClient(url, apiKey, apiSecret),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
	}
}

type realClient struct {
	roomClient *lksdk.RoomServiceClient
	apiKey     string
	apiSecret  string
}

func (c *realClient) CreateRoom(ctx context.Context, name string, options *CreateRoomOptions) (*RoomInfo, error) {
	if options == nil {
		options = defaultRoomOptions()
	}

	room, err := c.roomClient.CreateRoom(ctx, &livekit.CreateRoomRequest{
		Name:             name,
		MaxParticipants:  uint32(options.MaxParticipants),
		EmptyTimeout:     uint32(options.EmptyTimeout),
		DepartureTimeout: uint32(options.DepartureTimeout),
		Metadata:         options.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return &RoomInfo{
		Name:            room.Name,
		SID:             room.Sid,
		CreationTime:    time.Unix(room.CreationTime, 0),
		MaxParticipants: int32(room.MaxParticipants),
		NumParticipants: int32(room.NumParticipants),
		Metadata:        room.Metadata,
	}, nil
}

func (c *realClient) DeleteRoom(ctx context.Context, roomName string) error {
	if _, err := c.roomClient.DeleteRoom(ctx, &livekit.DeleteRoomRequest{Room: roomName}); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (c *realClient) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	_, err := c.roomClient.RemoveParticipant(ctx, &livekit.RoomParticipantIdentity{
		Room:     roomName,
		Identity: identity,
	})
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

func (c *realClient) GenerateToken(userID, roomName, participantName string, options *TokenOptions) (string, error) {
	return signToken(c.apiKey, c.apiSecret, userID, roomName, participantName, options)
}

func (c *realClient) ListParticipants(ctx context.Context, roomName string) ([]*ParticipantInfo, error) {
	resp, err := c.roomClient.ListParticipants(ctx, &livekit.ListParticipantsRequest{Room: roomName})
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]*ParticipantInfo, 0, len(resp.Participants))
	for _, p := range resp.Participants {
		participants = append(participants, &ParticipantInfo{
			SID:      p.Sid,
			Identity: p.Identity,
			Name:     p.Name,
			Metadata: p.Metadata,
			JoinedAt: time.Unix(p.JoinedAt, 0),
		})
	}
	return participants, nil
}

// mockClient simulates room management for local development and tests.
type mockClient struct {
	apiKey    string
	apiSecret string
}

func (m *mockClient) CreateRoom(ctx context.Context, name string, options *CreateRoomOptions) (*RoomInfo, error) {
	if options == nil {
		options = defaultRoomOptions()
	}

	return &RoomInfo{
		Name:            name,
		SID:             "mock-sid-" + uuid.New().String(),
		CreationTime:    time.Now(),
		MaxParticipants: options.MaxParticipants,
		Metadata:        options.Metadata,
	}, nil
}

func (m *mockClient) DeleteRoom(ctx context.Context, roomName string) error {
	return nil
}

func (m *mockClient) GenerateToken(userID, roomName, participantName string, options *TokenOptions) (string, error) {
	return signToken(m.apiKey, m.apiSecret, userID, roomName, participantName, options)
}

func (m *mockClient) ListParticipants(ctx context.Context, roomName string) ([]*ParticipantInfo, error) {
	return []*ParticipantInfo{}, nil
}

func (m *mockClient) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	return nil
}
