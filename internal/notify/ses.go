// Package notify отправляет письма с приглашениями через Amazon SES.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	texttemplate "text/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// Invitation — данные письма с приглашением администратора.
type Invitation struct {
	To             string
	InvitationLink string
	WishlistTitle  string
	InviterName    string
}

// sesAPI — часть клиента SES, которая нужна отправителю.
type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESNotifier отправляет письма через SES. Без адреса отправителя работает
// в выключенном режиме и только пишет в лог.
type SESNotifier struct {
	client    sesAPI
	fromEmail string
	fromName  string
	enabled   bool
	logger    *zap.SugaredLogger
}

// Options — настройки отправителя.
type Options struct {
	Region    string
	FromEmail string
	FromName  string
}

// NewSESNotifier загружает AWS-конфигурацию и создаёт клиента SES.
func NewSESNotifier(ctx context.Context, opts Options, logger *zap.SugaredLogger) (*SESNotifier, error) {
	if opts.FromEmail == "" {
		logger.Infow("email notifier disabled: SES_FROM_EMAIL not configured")
		return &SESNotifier{logger: logger}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	logger.Infow("email notifier enabled", "from", opts.FromEmail, "region", opts.Region)
	return newSESNotifier(sesv2.NewFromConfig(cfg), opts, logger), nil
}

func newSESNotifier(client sesAPI, opts Options, logger *zap.SugaredLogger) *SESNotifier {
	return &SESNotifier{
		client:    client,
		fromEmail: opts.FromEmail,
		fromName:  opts.FromName,
		enabled:   true,
		logger:    logger,
	}
}

// Enabled сообщает, отправляются ли письма на самом деле.
func (n *SESNotifier) Enabled() bool {
	return n.enabled
}

// SendInvitation отправляет приглашение стать администратором вишлиста.
func (n *SESNotifier) SendInvitation(ctx context.Context, msg Invitation) error {
	if msg.To == "" || msg.InvitationLink == "" {
		return errors.New("invitation email requires recipient and link")
	}
	if !n.enabled {
		n.logger.Infow("skipping invitation email (notifier disabled)", "to", msg.To, "link", msg.InvitationLink)
		return nil
	}

	subject := "You're invited to help with a wishlist"
	if msg.WishlistTitle != "" {
		subject = fmt.Sprintf("You're invited to manage %q", msg.WishlistTitle)
	}

	htmlBody, err := render(htmlTemplate, msg)
	if err != nil {
		return err
	}
	textBody, err := render(textTemplate, msg)
	if err != nil {
		return err
	}

	from := n.fromEmail
	if n.fromName != "" {
		from = fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	out, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send invitation email to %s: %w", msg.To, err)
	}
	if out != nil && out.MessageId != nil {
		n.logger.Infow("invitation email sent", "to", msg.To, "message_id", *out.MessageId)
	}
	return nil
}

type executor interface {
	Execute(w io.Writer, data any) error
	Name() string
}

func render(t executor, msg Invitation) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

var htmlTemplate = template.Must(template.New("invitation.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1>Wishlist invitation</h1>
		<p>{{if .InviterName}}{{.InviterName}} invited you{{else}}You have been invited{{end}} to co-manage the wishlist{{if .WishlistTitle}} <strong>{{.WishlistTitle}}</strong>{{end}}.</p>
		<p>As an admin you can share the list with guests and see which gifts are already taken.</p>
		<p style="text-align: center;"><a href="{{.InvitationLink}}">Accept invitation</a></p>
		<p style="word-break: break-all; font-size: 12px; color: #666;">{{.InvitationLink}}</p>
		<p><strong>This invitation expires in 7 days.</strong></p>
	</div>
</body>
</html>
`))

var textTemplate = texttemplate.Must(texttemplate.New("invitation.txt").Parse(`{{if .InviterName}}{{.InviterName}} invited you{{else}}You have been invited{{end}} to co-manage the wishlist{{if .WishlistTitle}} "{{.WishlistTitle}}"{{end}}.

Accept the invitation:
{{.InvitationLink}}

This invitation expires in 7 days.
`))
