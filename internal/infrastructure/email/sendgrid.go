package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"dashboard-rbac/internal/ports"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridSender struct {
	key       string
	from      *sgmail.Email
	subjTitle string
}

var _ ports.EmailSender = (*SendgridSender)(nil)

func NewSendgridSender(apiKey, fromName, fromAddress, appName string) *SendgridSender {
	return &SendgridSender{
		key:       apiKey,
		from:      sgmail.NewEmail(fromName, fromAddress),
		subjTitle: "[" + appName + "] ",
	}
}

func (s *SendgridSender) Send(ctx context.Context, msg ports.EmailMessage) error {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjTitle + msg.Subject
	p.AddTos(sgmail.NewEmail("", msg.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}
	return nil
}
