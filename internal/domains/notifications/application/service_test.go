package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/adapters/memory"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
	"github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(_ context.Context, _ []string, subject, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, subject)
	return nil
}

func TestNotify_StoresAndMails(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(memory.NewRepository(), WithMailer(mailer))

	saved, err := svc.Notify(context.Background(), ports.NotifyInput{
		Recipient: "purchasing",
		Kind:      domain.KindOrderPlaced,
		Subject:   "New accessory order PED-001",
		Body:      "3 items",
		Emails:    []string{"team@example.com"},
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	assert.False(t, saved.Read)
	assert.Equal(t, []string{"New accessory order PED-001"}, mailer.sent)
}

func TestNotify_MailFailureDoesNotFail(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("relay down")}
	svc := NewService(memory.NewRepository(), WithMailer(mailer))

	saved, err := svc.Notify(context.Background(), ports.NotifyInput{
		Recipient: "purchasing",
		Subject:   "Subject",
		Emails:    []string{"team@example.com"},
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
}

func TestNotify_SkipsMailWithoutAddresses(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(memory.NewRepository(), WithMailer(mailer))

	_, err := svc.Notify(context.Background(), ports.NotifyInput{Recipient: "paulo", Subject: "Done"})
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestNotify_Invalid(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Notify(context.Background(), ports.NotifyInput{Subject: "No recipient"})
	require.ErrorIs(t, err, domain.ErrEmptyRecipient)

	_, err = svc.Notify(context.Background(), ports.NotifyInput{Recipient: "paulo"})
	require.ErrorIs(t, err, domain.ErrEmptySubject)
}

func TestMarkReadAndUnreadListing(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	first, err := svc.Notify(ctx, ports.NotifyInput{Recipient: "paulo", Subject: "First"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, ports.NotifyInput{Recipient: "paulo", Subject: "Second"})
	require.NoError(t, err)

	unread, err := svc.ListForRecipient(ctx, "paulo", true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	read, err := svc.MarkRead(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	unread, err = svc.ListForRecipient(ctx, "paulo", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Second", unread[0].Subject)

	all, err := svc.ListForRecipient(ctx, "paulo", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.MarkRead(ctx, 99)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
