package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"rental-intake/internal/domain/application"
)

type mockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

func notice() application.StatusNotice {
	msg, desc := application.TenantMessage(application.StatusInfoRequested)
	return application.StatusNotice{
		ApplicationID: "app-1",
		TenantName:    "Tom",
		TenantEmail:   "tom@example.com",
		Status:        application.StatusInfoRequested,
		Message:       msg,
		Description:   desc,
		Note:          "Send pay stubs",
		StatusURL:     "https://apply.example.com/status/app-1",
	}
}

func TestSESNotifier_Send(t *testing.T) {
	var got *ses.SendEmailInput
	n := NewSESNotifier(&mockSES{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		got = params
		return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
	}}, "noreply@rental.io")

	require.NoError(t, n.NotifyStatus(context.Background(), notice()))
	require.NotNil(t, got)
	assert.Equal(t, []string{"tom@example.com"}, got.Destination.ToAddresses)
	assert.Equal(t, "noreply@rental.io", aws.ToString(got.Source))
	body := aws.ToString(got.Message.Body.Text.Data)
	assert.Contains(t, body, "Send pay stubs")
	assert.Contains(t, body, "https://apply.example.com/status/app-1")
}

func TestSESNotifier_Failure(t *testing.T) {
	n := NewSESNotifier(&mockSES{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, errors.New("SES service unavailable")
	}}, "noreply@rental.io")

	err := n.NotifyStatus(context.Background(), notice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tom@example.com")
}

func TestRender_OmitsEmptyParts(t *testing.T) {
	s := notice()
	s.Note, s.StatusURL, s.TenantName = "", "", ""
	_, body := Render(s)
	assert.NotContains(t, body, "Requested information")
	assert.NotContains(t, body, "Check your application status")
	assert.Contains(t, body, s.Message)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, NewLogNotifier(zap.New(core)).NotifyStatus(context.Background(), notice()))
	entries := logs.FilterMessage("tenant status notice").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tom@example.com", entries[0].ContextMap()["to"])
}
