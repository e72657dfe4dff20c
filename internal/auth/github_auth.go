package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/justsurfingit/automate/internal/models"
	"github.com/justsurfingit/automate/internal/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubUserURL = "https://api.github.com/user"

var (
	ErrMissingCode   = errors.New("no authorization code received from GitHub")
	ErrStateMismatch = errors.New("invalid state parameter")
	ErrNoAccessToken = errors.New("failed to obtain access token from GitHub")
)

// GitHubUser is the part of GET /user the profile cares about.
type GitHubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Bio       string `json:"bio"`
}

// GitHubAuth runs the GitHub connect flow. The state and a snapshot of the
// profile being edited are kept in the store across the redirect.
type GitHubAuth struct {
	Config  *oauth2.Config
	Store   storage.Store
	UserURL string
}

func NewGitHubAuth(clientID, clientSecret, redirectURL string, store storage.Store) *GitHubAuth {
	return &GitHubAuth{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		Store:   store,
		UserURL: githubUserURL,
	}
}

// Begin stores a fresh state and the pending profile and returns the URL to
// send the user to.
func (a *GitHubAuth) Begin(ctx context.Context, pending models.Profile) (string, error) {
	state := uuid.NewString()

	b, err := json.Marshal(pending)
	if err != nil {
		return "", fmt.Errorf("encode pending profile: %w", err)
	}
	if err := a.Store.Set(ctx, storage.KeyGitHubState, state); err != nil {
		return "", err
	}
	if err := a.Store.Set(ctx, storage.KeyGitHubPending, string(b)); err != nil {
		return "", err
	}

	return a.Config.AuthCodeURL(state), nil
}

// Complete verifies state, exchanges code for a token and fetches the
// GitHub user. It returns the pending profile stored by Begin, if any.
func (a *GitHubAuth) Complete(ctx context.Context, code, state string) (*GitHubUser, *models.Profile, error) {
	if code == "" {
		return nil, nil, ErrMissingCode
	}

	stored, ok, err := a.Store.Get(ctx, storage.KeyGitHubState)
	if err != nil {
		return nil, nil, err
	}
	if !ok || state != stored {
		return nil, nil, ErrStateMismatch
	}

	tok, err := a.Config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoAccessToken, err)
	}
	if tok.AccessToken == "" {
		return nil, nil, ErrNoAccessToken
	}

	user, err := a.fetchUser(ctx, a.Config.Client(ctx, tok))
	if err != nil {
		return nil, nil, err
	}

	pending := a.pendingProfile(ctx)
	if err := a.Store.Remove(ctx, storage.KeyGitHubState, storage.KeyGitHubPending); err != nil {
		return nil, nil, err
	}

	log.Printf("✅ GitHub user %s connected", user.Login)
	return user, pending, nil
}

func (a *GitHubAuth) fetchUser(ctx context.Context, client *http.Client) (*GitHubUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.UserURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch GitHub user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch GitHub user: status %d", resp.StatusCode)
	}

	var user GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode GitHub user: %w", err)
	}
	return &user, nil
}

// pendingProfile is best effort: a missing or unreadable snapshot just
// means the cached profile is used as is.
func (a *GitHubAuth) pendingProfile(ctx context.Context) *models.Profile {
	raw, ok, err := a.Store.Get(ctx, storage.KeyGitHubPending)
	if err != nil || !ok {
		return nil
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("⚠️ Error reading pending profile: %v", err)
		return nil
	}
	return &p
}
