package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/platform/logger"
)

// Routing keys del exchange topic.
const (
	KeyRequestCreated       = "adoption.request.created"
	KeyRequestStatusChanged = "adoption.request.status_changed"
)

// Event es el cuerpo JSON que se publica.
type Event struct {
	Type       string           `json:"type"`
	RequestID  string           `json:"requestId"`
	UserID     string           `json:"idUsuario"`
	AnimalID   string           `json:"idAnimal"`
	ShelterID  string           `json:"idRefugio"`
	Status     adoptions.Status `json:"estado"`
	FromStatus adoptions.Status `json:"estadoAnterior,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// Publisher publica eventos de solicitudes. Con URI vacía queda
// deshabilitado y cada Publish es un no-op.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
	log      logger.Logger
	now      func() time.Time
}

func NewPublisher(uri, exchange string, log logger.Logger) (*Publisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	p := &Publisher{exchange: exchange, log: log, now: time.Now}

	if uri == "" {
		log.Warn("RABBITMQ_URI empty, event publishing disabled", nil)
		return p, nil
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p.conn = conn
	p.channel = ch
	p.enabled = true
	log.Info("event publisher ready", map[string]any{"exchange": exchange})
	return p, nil
}

func (p *Publisher) Enabled() bool { return p.enabled }

func (p *Publisher) PublishRequestCreated(ctx context.Context, r adoptions.Request) error {
	return p.publish(ctx, KeyRequestCreated, p.event(KeyRequestCreated, r, ""))
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, r adoptions.Request, from adoptions.Status) error {
	return p.publish(ctx, KeyRequestStatusChanged, p.event(KeyRequestStatusChanged, r, from))
}

func (p *Publisher) event(kind string, r adoptions.Request, from adoptions.Status) Event {
	return Event{
		Type:       kind,
		RequestID:  r.ID,
		UserID:     r.IDUsuario,
		AnimalID:   r.IDAnimal,
		ShelterID:  r.IDRefugio,
		Status:     r.Estado,
		FromStatus: from,
		OccurredAt: p.now().UTC(),
	}
}

func (p *Publisher) publish(ctx context.Context, key string, ev Event) error {
	if !p.enabled {
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	// amqp091.Channel no es seguro para publicar desde varias goroutines
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, key, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    ev.OccurredAt,
		Body:         body,
		Headers: amqp091.Table{
			"event_type": key,
			"request_id": ev.RequestID,
			"shelter_id": ev.ShelterID,
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		p.log.Warn("close rabbitmq channel", map[string]any{"err": err})
	}
	return p.conn.Close()
}
