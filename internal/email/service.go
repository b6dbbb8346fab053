package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"courtbook/internal/booking"
	"courtbook/internal/court"
	"courtbook/internal/logger"
	"courtbook/internal/metrics"
	"courtbook/internal/user"
)

const (
	queueKey  = "emails"
	failedKey = "emails:failed"
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues booking emails in Redis and drains the queue with a worker
// loop. It satisfies booking.Notifier.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, emailType, subject, body string) error {
	job := EmailJob{
		To:      to,
		Name:    name,
		Type:    emailType,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < 3 {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after 3 attempts", job.To)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// BookingConfirmed queues a confirmation email for a freshly created booking.
func (s *Service) BookingConfirmed(ctx context.Context, b *booking.Booking, u *user.User, c *court.Court) error {
	subject := "Booking Confirmed - " + c.Name
	body := fmt.Sprintf(`Hi %s,

Your court booking is confirmed!

Court: %s
From: %s
To: %s%s
Total: %.2f

See you on court!

- CourtBook Team`, u.Name, c.Name,
		b.StartTime.Format("Jan 2, 2006 at 3:04 PM"),
		b.EndTime.Format("Jan 2, 2006 at 3:04 PM"),
		equipmentLines(b),
		b.Breakdown.Total)

	return s.Send(ctx, u.Email, u.Name, "confirmation", subject, body)
}

// BookingCancelled queues a cancellation notice.
func (s *Service) BookingCancelled(ctx context.Context, b *booking.Booking, u *user.User, c *court.Court) error {
	subject := "Booking Cancelled - " + c.Name
	body := fmt.Sprintf(`Hi %s,

Your court booking has been cancelled:

Court: %s
From: %s
To: %s

- CourtBook Team`, u.Name, c.Name,
		b.StartTime.Format("Jan 2, 2006 at 3:04 PM"),
		b.EndTime.Format("Jan 2, 2006 at 3:04 PM"))

	return s.Send(ctx, u.Email, u.Name, "cancellation", subject, body)
}

func equipmentLines(b *booking.Booking) string {
	out := ""
	if b.RacketCount > 0 {
		out += fmt.Sprintf("\nRackets: %d", b.RacketCount)
	}
	if b.ShoeCount > 0 {
		out += fmt.Sprintf("\nShoes: %d", b.ShoeCount)
	}
	return out
}
