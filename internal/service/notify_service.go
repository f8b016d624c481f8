package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"carpool/internal/models"
)

// NotifyService emails settlement summaries via Amazon SES. It runs
// disabled when no from-address is configured, so deployments without SES
// lose nothing but the emails.
type NotifyService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
}

// NewNotifyService creates a new notification service
func NewNotifyService(awsRegion, fromEmail, fromName string, debug bool) (*NotifyService, error) {
	if fromEmail == "" {
		log.Println("Notification service disabled: SES_FROM_EMAIL not configured")
		return &NotifyService{enabled: false, debug: debug}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Notification service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &NotifyService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the notification service is enabled
func (s *NotifyService) IsEnabled() bool {
	return s.enabled
}

// SendSettlementSummary emails the month's balances and transfer plan to
// each recipient
func (s *NotifyService) SendSettlementSummary(ctx context.Context, recipients []string, settlement *models.Settlement) error {
	if !s.enabled {
		log.Printf("Skipping settlement summary for %s (notifications disabled)", settlement.Month)
		return nil
	}
	if len(recipients) == 0 {
		log.Printf("Skipping settlement summary for %s (no recipients configured)", settlement.Month)
		return nil
	}

	subject := fmt.Sprintf("Carpool settlement for %s", settlement.Month)
	body := settlementText(settlement)

	for _, to := range recipients {
		if err := s.sendEmail(ctx, to, subject, body); err != nil {
			return err
		}
	}
	return nil
}

// settlementText renders a plain-text summary of a settlement
func settlementText(settlement *models.Settlement) string {
	names := make(map[string]string, len(settlement.Balances))
	for _, b := range settlement.Balances {
		names[b.MemberID] = b.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Settlement for %s\n", settlement.Month)
	fmt.Fprintf(&b, "Total spent: $%s\n\n", settlement.TotalSpent)

	b.WriteString("Balances:\n")
	for _, bal := range settlement.Balances {
		fmt.Fprintf(&b, "  %s: $%s\n", bal.Name, bal.Balance)
	}

	b.WriteString("\nSuggested transfers:\n")
	if len(settlement.Transfers) == 0 {
		b.WriteString("  all settled\n")
	}
	for _, t := range settlement.Transfers {
		from, to := names[t.FromID], names[t.ToID]
		if from == "" {
			from = t.FromID
		}
		if to == "" {
			to = t.ToID
		}
		fmt.Fprintf(&b, "  %s pays %s $%s\n", from, to, t.Amount)
	}
	return b.String()
}

func (s *NotifyService) sendEmail(ctx context.Context, toEmail, subject, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] sendEmail: to=%s, subject=%s", toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}
