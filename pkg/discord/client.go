package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client Discord REST API 的最小客户端，只覆盖通知和授予角色所需的接口
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Guild struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Roles []Role `json:"roles"`
}

type Member struct {
	Roles []string `json:"roles"`
}

// APIError 非 2xx 响应
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord API %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (c *Client) SendMessage(ctx context.Context, channelID, content string) error {
	body := map[string]string{"content": content}
	return c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages", body, nil)
}

func (c *Client) GetGuild(ctx context.Context, guildID string) (*Guild, error) {
	var guild Guild
	if err := c.do(ctx, http.MethodGet, "/guilds/"+guildID, nil, &guild); err != nil {
		return nil, err
	}
	return &guild, nil
}

func (c *Client) GetMember(ctx context.Context, guildID, userID string) (*Member, error) {
	var member Member
	if err := c.do(ctx, http.MethodGet, "/guilds/"+guildID+"/members/"+userID, nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// SetMemberRoles 覆盖成员的角色列表
func (c *Client) SetMemberRoles(ctx context.Context, guildID, userID string, roles []string) error {
	body := map[string][]string{"roles": roles}
	return c.do(ctx, http.MethodPatch, "/guilds/"+guildID+"/members/"+userID, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.Token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
