package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/justsurfingit/automate/internal/models"
	"github.com/justsurfingit/automate/internal/storage"
)

// profileCache is the stored shape of the profile entry.
type profileCache struct {
	Profile   models.Profile `json:"profile"`
	Timestamp int64          `json:"timestamp"`
}

type ProfileService struct {
	Store storage.Store
	TTL   time.Duration
	Now   func() time.Time
}

func NewProfileService(store storage.Store, ttl time.Duration) *ProfileService {
	return &ProfileService{Store: store, TTL: ttl, Now: time.Now}
}

// Load returns the cached profile, or an empty one when nothing usable is
// cached. Expired entries are removed.
func (s *ProfileService) Load(ctx context.Context) (models.Profile, error) {
	profile, ok, err := s.cached(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	if !ok {
		return models.Profile{}, nil
	}
	return profile, nil
}

func (s *ProfileService) Save(ctx context.Context, profile models.Profile) error {
	b, err := json.Marshal(profileCache{Profile: profile, Timestamp: s.Now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.Store.Set(ctx, storage.KeyProfile, string(b))
}

// LinkGitHub records an OAuth-connected GitHub account on the profile. The
// cached profile wins over the pending snapshot taken before the redirect.
func (s *ProfileService) LinkGitHub(ctx context.Context, login string, pending *models.Profile) (models.Profile, error) {
	profile, ok, err := s.cached(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	if !ok && pending != nil {
		profile = *pending
	}

	profile.Github = "oauth:" + login
	profile.GithubUsername = login

	if err := s.Save(ctx, profile); err != nil {
		return models.Profile{}, err
	}
	log.Printf("🔗 GitHub account %s linked to profile", login)
	return profile, nil
}

func (s *ProfileService) cached(ctx context.Context) (models.Profile, bool, error) {
	raw, ok, err := s.Store.Get(ctx, storage.KeyProfile)
	if err != nil || !ok {
		return models.Profile{}, false, err
	}

	var entry profileCache
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("⚠️ Error loading profile from cache: %v", err)
		return models.Profile{}, false, nil
	}

	if s.Now().UnixMilli()-entry.Timestamp >= s.TTL.Milliseconds() {
		log.Println("Profile cache expired, using default data")
		if err := s.Store.Remove(ctx, storage.KeyProfile); err != nil {
			return models.Profile{}, false, err
		}
		return models.Profile{}, false, nil
	}
	return entry.Profile, true, nil
}
