package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nutrilens/backend/internal/nutrition"
)

const draftTTL = 24 * time.Hour

// UploadDraft is a classified photo waiting for the user to confirm its entries.
type UploadDraft struct {
	ID        string                     `json:"id"`
	UserID    string                     `json:"userId"`
	ImageURL  string                     `json:"imageUrl"`
	Items     []nutrition.ClassifiedItem `json:"items"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// DraftService caches upload drafts in Redis.
type DraftService struct {
	redis *redis.Client
}

func NewDraftService(client *redis.Client) *DraftService {
	return &DraftService{redis: client}
}

func draftKey(id string) string {
	return fmt.Sprintf("food:draft:%s", id)
}

// SaveDraft assigns an id and stores the draft for 24 hours.
func (s *DraftService) SaveDraft(ctx context.Context, draft *UploadDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return nil
}

// GetDraft loads a draft owned by userID.
func (s *DraftService) GetDraft(ctx context.Context, userID uuid.UUID, id string) (*UploadDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft UploadDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if draft.UserID != userID.String() {
		return nil, ErrNotFound
	}
	return &draft, nil
}

// DeleteDraft removes a draft owned by userID.
func (s *DraftService) DeleteDraft(ctx context.Context, userID uuid.UUID, id string) error {
	if _, err := s.GetDraft(ctx, userID, id); err != nil {
		return err
	}
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
