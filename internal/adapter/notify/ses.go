// Package notify delivers tenant status notices.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"rental-intake/internal/domain/application"
)

// SESService is the slice of the SES client used here.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESNotifier struct {
	client SESService
	sender string
}

var _ application.Notifier = (*SESNotifier)(nil)

func NewSESNotifier(client SESService, sender string) *SESNotifier {
	return &SESNotifier{client: client, sender: sender}
}

// NewSESNotifierFromEnv loads the default AWS credential chain for region.
func NewSESNotifierFromEnv(ctx context.Context, region, sender string) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewSESNotifier(ses.NewFromConfig(cfg), sender), nil
}

func (n *SESNotifier) NotifyStatus(ctx context.Context, s application.StatusNotice) error {
	subject, body := Render(s)
	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{s.TenantEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
			},
		},
		Source: aws.String(n.sender),
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", s.TenantEmail, err)
	}
	return nil
}

// Render builds the plain-text email for a notice.
func Render(s application.StatusNotice) (subject, body string) {
	subject = "Update on your rental application"
	var b strings.Builder
	if s.TenantName != "" {
		fmt.Fprintf(&b, "Hi %s,\n\n", s.TenantName)
	}
	b.WriteString(s.Message)
	b.WriteString("\n")
	b.WriteString(s.Description)
	b.WriteString("\n")
	if s.Note != "" {
		fmt.Fprintf(&b, "\nRequested information:\n%s\n", s.Note)
	}
	if s.StatusURL != "" {
		fmt.Fprintf(&b, "\nCheck your application status: %s\n", s.StatusURL)
	}
	return subject, b.String()
}
