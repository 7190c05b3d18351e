package rabbitmq

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"shipping/internal/core/domain/model/shipment"
)

const (
	JobTypeShipmentCreated = "shipment_created_email"
	JobTypeStatusChanged   = "status_changed_email"

	createdTemplate       = "shipment_created.html"
	statusChangedTemplate = "status_changed.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Publisher is the part of *amqp.Channel the e-mail publisher uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EmailJob is consumed by the mail worker, which only has to send it.
type EmailJob struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	To           string    `json:"to"`
	ToName       string    `json:"toName"`
	Subject      string    `json:"subject"`
	HTMLBody     string    `json:"htmlBody"`
	TrackingCode string    `json:"trackingCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

type emailView struct {
	CustomerName string
	TrackingCode string
	Status       string
	Source       string
	Destination  string
	Price        string
	OccurredAt   string
}

// EmailJobPublisher implements ports.NotificationPort by queueing rendered e-mails.
type EmailJobPublisher struct {
	publisher Publisher
	queue     string
	templates *template.Template
	newID     func() string
}

func NewEmailJobPublisher(publisher Publisher, queue string) (*EmailJobPublisher, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse e-mail templates: %w", err)
	}

	return &EmailJobPublisher{
		publisher: publisher,
		queue:     queue,
		templates: tmpl,
		newID:     uuid.NewString,
	}, nil
}

func (p *EmailJobPublisher) NotifyCreated(ctx context.Context, s *shipment.Shipment) error {
	entry := s.LatestStatus()
	return p.publish(ctx, JobTypeShipmentCreated, "Miku Express: Pedido Criado!", createdTemplate, s, emailView{
		CustomerName: s.CustomerName(),
		TrackingCode: s.TrackingCode().String(),
		Status:       entry.Status(),
		Source:       s.Source(),
		Destination:  s.Destination(),
		Price:        s.Price().String(),
		OccurredAt:   formatTime(entry.OccurredAt()),
	})
}

func (p *EmailJobPublisher) NotifyStatusChanged(
	ctx context.Context,
	s *shipment.Shipment,
	entry shipment.StatusEntry,
) error {
	subject := "Miku Express: Atualização do Pedido " + s.TrackingCode().String()
	return p.publish(ctx, JobTypeStatusChanged, subject, statusChangedTemplate, s, emailView{
		CustomerName: s.CustomerName(),
		TrackingCode: s.TrackingCode().String(),
		Status:       entry.Status(),
		Source:       entry.Source(),
		Destination:  entry.Destination(),
		Price:        s.Price().String(),
		OccurredAt:   formatTime(entry.OccurredAt()),
	})
}

func (p *EmailJobPublisher) publish(
	ctx context.Context,
	jobType, subject, templateName string,
	s *shipment.Shipment,
	view emailView,
) error {
	var body bytes.Buffer
	if err := p.templates.ExecuteTemplate(&body, templateName, view); err != nil {
		return fmt.Errorf("render %s: %w", templateName, err)
	}

	job := EmailJob{
		ID:           p.newID(),
		Type:         jobType,
		To:           s.CustomerEmail(),
		ToName:       s.CustomerName(),
		Subject:      subject,
		HTMLBody:     body.String(),
		TrackingCode: s.TrackingCode().String(),
		CreatedAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal e-mail job: %w", err)
	}

	err = p.publisher.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key is the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    job.ID,
			Type:         jobType,
			Timestamp:    job.CreatedAt,
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", jobType, err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format("02/01/2006 15:04 UTC")
}
