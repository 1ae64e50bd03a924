package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/rewearhq/rewear-backend/config"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
	"github.com/rewearhq/rewear-backend/pkg/mailer"
)

// The email worker drains the mail queue and sends via Mailgun. Jobs carry
// either a pre-rendered body or a template name plus data.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatalf("failed to set QoS: %v", err)
	}

	deliveries, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down email worker")
		cancel()
	}()

	logger.Infof("email worker consuming from %q", cfg.RabbitMQEmailQueue)
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			handle(ctx, logger, mg, d)
		}
	}
}

func handle(ctx context.Context, logger *logrus.Logger, mg *mailer.Mailgun, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.WithError(err).Error("malformed email job, dropping")
		_ = d.Nack(false, false)
		return
	}

	subject, html := job.Subject, job.HTML
	if job.Template != "" {
		s, h, err := mailer.Render(job.Template, job.Data)
		if err != nil {
			logger.WithError(err).WithField("template", job.Template).Error("render failed, dropping")
			_ = d.Nack(false, false)
			return
		}
		subject, html = s, h
	}

	if err := mg.Send(ctx, job.To, subject, job.Text, html); err != nil {
		logger.WithError(err).WithField("to", job.To).Error("send failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	logger.WithField("to", job.To).Info("email sent")
	_ = d.Ack(false)
}
