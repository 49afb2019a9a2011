package tas

import (
	"context"
	"net/http"
	"strings"
)

// UserSelector picks a user by exactly one of ID, Username or Email.
type UserSelector struct {
	ID       int64
	Username string
	Email    string
}

func (s UserSelector) count() int {
	n := 0
	if s.ID != 0 {
		n++
	}
	if s.Username != "" {
		n++
	}
	if s.Email != "" {
		n++
	}
	return n
}

// Authenticate checks a user's password. A false result with a nil error
// means the service answered but rejected the credentials.
func (c *Client) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, invalidArgf("authenticate: username and password are required")
	}
	body := map[string]string{"username": username, "password": password}
	raw, err := c.call(ctx, "authenticate", http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		return false, err
	}
	return truthy(raw), nil
}

// GetUser fetches one user record.
//
// Lookup by email goes to the /tup prefix, unlike id and username, and is
// checked separately: the address must contain "@".
func (c *Client) GetUser(ctx context.Context, sel UserSelector) (Record, error) {
	const op = "get user"
	if n := sel.count(); n != 1 {
		return nil, invalidArgf("%s: exactly one of id, username or email is required, got %d", op, n)
	}

	var path string
	switch {
	case sel.ID != 0:
		path = pathf("/v1/users/%s", sel.ID)
	case sel.Username != "":
		path = pathf("/v1/users/username/%s", sel.Username)
	default:
		if !strings.Contains(sel.Email, "@") {
			return nil, invalidArgf("%s: %q is not an email address", op, sel.Email)
		}
		path = pathf("/tup/users/email/%s", sel.Email)
	}
	return c.callRecord(ctx, op, http.MethodGet, path, nil, nil)
}

// SaveUser creates a user when id is zero and updates user id otherwise.
func (c *Client) SaveUser(ctx context.Context, id int64, user Record) (Record, error) {
	if user == nil {
		return nil, invalidArgf("save user: user payload is required")
	}
	if id == 0 {
		return c.callRecord(ctx, "save user", http.MethodPost, "/v1/users", nil, user)
	}
	return c.callRecord(ctx, "save user", http.MethodPut, pathf("/v1/users/%s", id), nil, user)
}

// VerifyUser confirms a new account with the emailed code. When password is
// given it is set in the same call.
func (c *Client) VerifyUser(ctx context.Context, id int64, code, password string) (bool, error) {
	const op = "verify user"
	if id == 0 || code == "" {
		return false, invalidArgf("%s: id and code are required", op)
	}
	path := pathf("/v1/users/%s/%s", id, code)

	var (
		method = http.MethodPut
		body   any
	)
	if password != "" {
		method = http.MethodPost
		body = map[string]string{"password": password}
	}
	raw, err := c.call(ctx, op, method, path, nil, body)
	if err != nil {
		return false, err
	}
	return notFalse(raw), nil
}

// RequestPasswordReset starts the reset flow; the service emails a code.
// source tags the request origin (e.g. the portal name) and may be empty.
func (c *Client) RequestPasswordReset(ctx context.Context, username, source string) (any, error) {
	const op = "request password reset"
	if username == "" {
		return nil, invalidArgf("%s: username is required", op)
	}
	raw, err := c.call(ctx, op, http.MethodPost, pathf("/v1/users/%s/passwordResets", username), sourceQuery(source), nil)
	if err != nil {
		return nil, err
	}
	return decodeValue(raw)
}

// ConfirmPasswordReset sets newPassword using the emailed code.
func (c *Client) ConfirmPasswordReset(ctx context.Context, username, code, newPassword, source string) (bool, error) {
	const op = "confirm password reset"
	if username == "" || code == "" || newPassword == "" {
		return false, invalidArgf("%s: username, code and new password are required", op)
	}
	body := map[string]string{"password": newPassword}
	raw, err := c.call(ctx, op, http.MethodPost, pathf("/v1/users/%s/passwordResets/%s", username, code), sourceQuery(source), body)
	if err != nil {
		return false, err
	}
	return notFalse(raw), nil
}

// ChangePassword replaces currentPassword with newPassword.
func (c *Client) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) (bool, error) {
	const op = "change password"
	if username == "" || currentPassword == "" || newPassword == "" {
		return false, invalidArgf("%s: username, current and new password are required", op)
	}
	body := map[string]string{"password": currentPassword, "newPassword": newPassword}
	raw, err := c.call(ctx, op, http.MethodPost, pathf("/v1/users/%s/passwordChanges", username), nil, body)
	if err != nil {
		return false, err
	}
	return notFalse(raw), nil
}
