package backend

import "context"

type Admin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResult struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
	Admin     Admin  `json:"admin"`
}

// Login exchanges admin credentials for a bearer token. Bad credentials come
// back as an *APIError with the backend's message.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.post(ctx, "/api/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me validates the token and returns the current admin.
func (c *Client) Me(ctx context.Context, token string) (*Admin, error) {
	var payload struct {
		Success bool  `json:"success"`
		Admin   Admin `json:"admin"`
	}
	if err := c.get(ctx, "/api/auth/me", nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload.Admin, nil
}
