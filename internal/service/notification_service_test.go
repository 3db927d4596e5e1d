package service_test

import (
	"context"
	"elearning_backend/internal/service"
	"elearning_backend/internal/util"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	err  error
	sent []string
}

func (m *fakeMessenger) SendMessage(ctx context.Context, channelID, content string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, channelID+"|"+content)
	return nil
}

type fakeGranter struct {
	err     error
	granted []string
}

func (g *fakeGranter) GrantCapability(ctx context.Context, guildID, userID, capability string) error {
	if g.err != nil {
		return g.err
	}
	g.granted = append(g.granted, guildID+"|"+userID+"|"+capability)
	return nil
}

var defaultSettings = service.NotificationSettings{
	DefaultGuildID: "g-default",
	RoleName:       "プログラマ",
	PassMessage:    "congrats <@%s> quiz %s",
}

func newNotificationService(t *testing.T, m service.Messenger, g service.CapabilityGranter, settings service.NotificationSettings) *service.NotificationService {
	t.Helper()
	records := newRecords(t)
	_, _, err := records.FindOrCreate(context.Background(), "u1", "User_u1")
	require.NoError(t, err)
	return service.NewNotificationService(m, g, records, settings)
}

func TestNotifySuccess(t *testing.T) {
	m, g := &fakeMessenger{}, &fakeGranter{}
	s := newNotificationService(t, m, g, defaultSettings)

	ok, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "u1", QuizID: "001", ChannelID: "c1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"c1|congrats <@u1> quiz 001"}, m.sent)
	assert.Equal(t, []string{"g-default|u1|プログラマ"}, g.granted)
}

func TestNotifyBodyGuildOverridesDefault(t *testing.T) {
	m, g := &fakeMessenger{}, &fakeGranter{}
	s := newNotificationService(t, m, g, defaultSettings)

	ok, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "u1", QuizID: "001", GuildID: "g2", ChannelID: "c1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"g2|u1|プログラマ"}, g.granted)
}

func TestNotifyGuildNotSet(t *testing.T) {
	settings := defaultSettings
	settings.DefaultGuildID = ""
	s := newNotificationService(t, &fakeMessenger{}, &fakeGranter{}, settings)

	_, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "u1", QuizID: "001", ChannelID: "c1"})
	assert.ErrorIs(t, err, util.ErrGuildNotSet)
}

func TestNotifyUnknownUser(t *testing.T) {
	m := &fakeMessenger{}
	s := newNotificationService(t, m, &fakeGranter{}, defaultSettings)

	_, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "ghost", QuizID: "001", ChannelID: "c1"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	assert.Empty(t, m.sent)
}

func TestNotifyMessageFailure(t *testing.T) {
	g := &fakeGranter{}
	s := newNotificationService(t, &fakeMessenger{err: errors.New("403")}, g, defaultSettings)

	ok, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "u1", QuizID: "001", ChannelID: "c1"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, g.granted)
}

func TestNotifyRoleFailure(t *testing.T) {
	m := &fakeMessenger{}
	s := newNotificationService(t, m, &fakeGranter{err: errors.New("role not found")}, defaultSettings)

	ok, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "u1", QuizID: "001", ChannelID: "c1"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, m.sent, 1)
}

func TestNotifyGatewayDisabled(t *testing.T) {
	s := newNotificationService(t, nil, nil, defaultSettings)

	ok, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "u1", QuizID: "001", ChannelID: "c1"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateSettings(t *testing.T) {
	m, g := &fakeMessenger{}, &fakeGranter{}
	s := newNotificationService(t, m, g, defaultSettings)

	s.UpdateSettings(service.NotificationSettings{DefaultGuildID: "g3", RoleName: "Dev", PassMessage: "%s passed %s"})
	ok, err := s.Notify(context.Background(), service.NotifyRequest{UserID: "u1", QuizID: "002", ChannelID: "c1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"c1|u1 passed 002"}, m.sent)
	assert.Equal(t, []string{"g3|u1|Dev"}, g.granted)
}
