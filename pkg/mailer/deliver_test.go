package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, to, subject, text, html string) error {
	return m.Called(ctx, to, subject, text, html).Error(0)
}

func TestDeliverRendersTemplate(t *testing.T) {
	s := new(MockSender)
	s.On("Send", mock.Anything, "asha@example.com",
		"CareerConnect: your application for Go Intern is now Shortlisted",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	job := NewTemplateJob("asha@example.com", "status_changed", map[string]any{
		"Name":            "Asha",
		"InternshipTitle": "Go Intern",
		"Status":          "Shortlisted",
	})
	require.NoError(t, Deliver(context.Background(), s, job))
	s.AssertExpectations(t)
}

func TestDeliverRawJob(t *testing.T) {
	s := new(MockSender)
	s.On("Send", mock.Anything, "a@example.com", "Hello", "body", "").Return(nil).Once()
	require.NoError(t, Deliver(context.Background(), s, EmailJob{To: "a@example.com", Subject: "Hello", Text: "body"}))
	s.AssertExpectations(t)
}

func TestDeliverPermanentFailures(t *testing.T) {
	s := new(MockSender)

	err := Deliver(context.Background(), s, EmailJob{Subject: "no recipient"})
	assert.ErrorIs(t, err, ErrPermanent)

	err = Deliver(context.Background(), s, NewTemplateJob("a@example.com", "does_not_exist", nil))
	assert.ErrorIs(t, err, ErrPermanent)

	s.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverSenderErrorIsTransient(t *testing.T) {
	s := new(MockSender)
	s.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("mailgun 503")).Once()

	err := Deliver(context.Background(), s, EmailJob{To: "a@example.com", Subject: "Hi", Text: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPermanent)
}
