package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sdtech_backend/internal/models"
)

// SupabaseProvider talks to the Supabase Auth (GoTrue) REST API.
// Admin endpoints need the service-role key; password login works with the anon key.
type SupabaseProvider struct {
	baseURL    string
	serviceKey string
	anonKey    string
	client     *http.Client
}

func NewSupabaseProvider(baseURL, serviceKey, anonKey string, client *http.Client) *SupabaseProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SupabaseProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		anonKey:    anonKey,
		client:     client,
	}
}

func (p *SupabaseProvider) Name() string      { return ProviderSupabase }
func (p *SupabaseProvider) ServiceRole() bool { return p.baseURL != "" && p.serviceKey != "" }

type gotrueUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u gotrueUser) identity() *models.Identity {
	return &models.Identity{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

type gotrueError struct {
	Status    int    `json:"-"`
	Code      string `json:"error_code"`
	Msg       string `json:"msg"`
	Message   string `json:"message"`
	ErrorText string `json:"error"`
	Desc      string `json:"error_description"`
}

func (e *gotrueError) Error() string {
	text := e.Msg
	for _, alt := range []string{e.Message, e.Desc, e.ErrorText} {
		if text == "" {
			text = alt
		}
	}
	return fmt.Sprintf("supabase auth: status %d: %s", e.Status, text)
}

func (p *SupabaseProvider) do(ctx context.Context, method, path, key string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase auth: encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("supabase auth: building request: %w", err)
	}
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase auth: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("supabase auth: reading response: %w", err)
	}
	if resp.StatusCode >= 300 {
		apiErr := &gotrueError{Status: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("supabase auth: decoding response: %w", err)
		}
	}
	return nil
}

func (p *SupabaseProvider) CreateIdentity(ctx context.Context, email, password string) (*models.Identity, error) {
	if !p.ServiceRole() {
		return nil, ErrNoServiceRole
	}
	body := map[string]interface{}{"email": email, "password": password, "email_confirm": true}
	var user gotrueUser
	if err := p.do(ctx, http.MethodPost, "/auth/v1/admin/users", p.serviceKey, body, &user); err != nil {
		if apiErr, ok := err.(*gotrueError); ok && isEmailTaken(apiErr) {
			return nil, fmt.Errorf("%w: %v", ErrEmailTaken, err)
		}
		return nil, err
	}
	return user.identity(), nil
}

func isEmailTaken(e *gotrueError) bool {
	if e.Code == "email_exists" || e.Code == "user_already_exists" {
		return true
	}
	if e.Status == http.StatusUnprocessableEntity || e.Status == http.StatusConflict {
		return strings.Contains(strings.ToLower(e.Error()), "already")
	}
	return false
}

func (p *SupabaseProvider) DeleteIdentity(ctx context.Context, id string) error {
	if !p.ServiceRole() {
		return ErrNoServiceRole
	}
	err := p.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(id), p.serviceKey, nil, nil)
	if apiErr, ok := err.(*gotrueError); ok && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %v", ErrIdentityNotFound, err)
	}
	return err
}

func (p *SupabaseProvider) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	key := p.anonKey
	if key == "" {
		key = p.serviceKey
	}
	var out struct {
		User gotrueUser `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", key, body, &out); err != nil {
		if apiErr, ok := err.(*gotrueError); ok && apiErr.Status < 500 {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return out.User.identity(), nil
}

func (p *SupabaseProvider) Ping(ctx context.Context) error {
	key := p.serviceKey
	if key == "" {
		key = p.anonKey
	}
	return p.do(ctx, http.MethodGet, "/auth/v1/health", key, nil, nil)
}
