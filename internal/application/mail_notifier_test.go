package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/careerconnect-api/config"
	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/pkg/mailer"
	mailtpl "github.com/oksasatya/careerconnect-api/pkg/mailer/templates"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{AppName: "CareerConnect", AppURL: "https://careers.example.com"}
}

func TestMailNotifierPublishesTemplateJob(t *testing.T) {
	pub := new(MockPublisher)
	var job mailer.EmailJob
	pub.On("PublishJSON", mock.Anything, mock.AnythingOfType("mailer.EmailJob")).
		Run(func(args mock.Arguments) { job = args.Get(1).(mailer.EmailJob) }).
		Return(nil).Once()

	n := NewMailNotifier(pub, testConfig(), quietLogger())
	err := n.StatusChanged(context.Background(), StatusChange{
		Application: entity.Application{ID: "a1", Status: entity.StatusShortlisted},
		Previous:    entity.StatusApplied,
		Internship:  &entity.Internship{Title: "Go Intern", Company: "Acme"},
		Candidate:   &entity.Candidate{Name: "Asha", Email: "asha@example.com"},
	})
	require.NoError(t, err)
	pub.AssertExpectations(t)

	assert.Equal(t, "asha@example.com", job.To)
	assert.Equal(t, mailtpl.StatusChanged, job.Template)
	assert.Equal(t, "Go Intern", job.Data["InternshipTitle"])
	assert.Equal(t, "Shortlisted", job.Data["Status"])
	assert.Equal(t, "Applied", job.Data["PreviousStatus"])
	assert.Equal(t, "Acme", job.Data["Company"])
}

func TestMailNotifierFallbacks(t *testing.T) {
	pub := new(MockPublisher)
	n := NewMailNotifier(pub, testConfig(), quietLogger())

	// no recipient: nothing to send
	require.NoError(t, n.StatusChanged(context.Background(), StatusChange{Application: entity.Application{ID: "a1"}}))
	pub.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything)

	var job mailer.EmailJob
	pub.On("PublishJSON", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { job = args.Get(1).(mailer.EmailJob) }).
		Return(errors.New("channel closed")).Once()
	err := n.StatusChanged(context.Background(), StatusChange{
		Application: entity.Application{ID: "a1", Status: entity.StatusRejected},
		Candidate:   &entity.Candidate{Name: "Asha", Email: "asha@example.com"},
	})
	assert.Error(t, err)
	assert.Equal(t, PlaceholderTitle, job.Data["InternshipTitle"])

	unconfigured := &MailNotifier{}
	assert.Error(t, unconfigured.StatusChanged(context.Background(), StatusChange{}))
}
