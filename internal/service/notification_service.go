package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/observability"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

const notificationBufferSize = 16

// AllOffices is the subscription channel receiving notifications of every office.
const AllOffices = "all"

// ErrNotificationNotFound indicates the notification does not exist in the caller's scope.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService appends notifications and streams them to connected dashboards.
type NotificationService interface {
	NotificationPublisher
	List(ctx context.Context, req dto.NotificationListRequest) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id uint, officeID *uint) (dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, officeID *uint) (int64, error)
	Subscribe(channel string) (<-chan dto.NotificationResponse, func())
	Start(ctx context.Context)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redis       *redis.Client
	redisStream string
	nats        *nats.Conn
	natsSubject string
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
	sanitizer   *bluemonday.Policy
	broker      *notificationBroker
	nodeID      string
}

type notificationEvent struct {
	Source       string                   `json:"source"`
	Notification dto.NotificationResponse `json:"notification"`
	SentAt       time.Time                `json:"sent_at"`
}

type notificationBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan dto.NotificationResponse]struct{}
}

// NewNotificationService constructs a notification service. Redis and NATS are optional.
func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, validate *validator.Validate, logger zerolog.Logger) NotificationService {
	stream := ""
	subject := ""
	if channelBase != "" {
		stream = channelBase + ":notifications"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".notifications"
	}

	return &notificationService{
		repo:        repo,
		redis:       redisClient,
		redisStream: stream,
		nats:        natsConn,
		natsSubject: subject,
		validator:   validate,
		logger:      logger.With().Str("component", "notification_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/drivedesk-api/internal/service/notification"),
		sanitizer:   bluemonday.StrictPolicy(),
		broker: &notificationBroker{
			subscribers: make(map[string]map[chan dto.NotificationResponse]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

// OfficeChannel names the subscription channel of one office.
func OfficeChannel(officeID uint) string {
	return "office:" + strconv.FormatUint(uint64(officeID), 10)
}

func (s *notificationService) Start(ctx context.Context) {
	if s.redis != nil && s.redisStream != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

func (s *notificationService) Publish(ctx context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.NotificationResponse{}, err
	}

	cleanMessage := plainText(s.sanitizer, payload.Message)
	if cleanMessage == "" {
		return dto.NotificationResponse{}, errors.New("notification message empty after sanitization")
	}

	attrs := []attribute.KeyValue{
		attribute.Int("notification.student_id", int(payload.StudentID)),
		attribute.Int("notification.office_id", int(payload.OfficeID)),
		attribute.String("notification.type", payload.Type),
	}

	spanCtx, span := s.tracer.Start(ctx, "notifications.publish", trace.WithAttributes(attrs...))
	defer span.End()

	model := models.Notification{
		StudentID:   payload.StudentID,
		StudentName: strings.TrimSpace(payload.StudentName),
		OfficeID:    payload.OfficeID,
		Type:        models.NotificationType(payload.Type),
		Message:     cleanMessage,
	}

	if err := s.repo.Create(spanCtx, &model); err != nil {
		span.RecordError(err)
		return dto.NotificationResponse{}, fmt.Errorf("store notification: %w", err)
	}

	response := dto.NewNotificationResponse(model)
	s.broadcast(response)
	if err := s.publish(spanCtx, response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish notification to broker")
	}

	observability.NotificationsPublished().WithLabelValues(response.Type).Inc()

	return response, nil
}

func (s *notificationService) List(ctx context.Context, req dto.NotificationListRequest) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.List(ctx, repository.NotificationFilter{
		OfficeID:   req.OfficeID,
		UnreadOnly: req.UnreadOnly,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return dto.NewNotificationResponseSlice(notifications), nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uint, officeID *uint) (dto.NotificationResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "notifications.mark_read", trace.WithAttributes(
		attribute.Int("notification.id", int(id)),
	))
	defer span.End()

	notification, err := s.repo.MarkRead(spanCtx, id, officeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}
		span.RecordError(err)
		return dto.NotificationResponse{}, err
	}

	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, officeID *uint) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, officeID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return updated, nil
}

// Subscribe registers a live listener on a channel built with OfficeChannel or AllOffices.
func (s *notificationService) Subscribe(channel string) (<-chan dto.NotificationResponse, func()) {
	ch := make(chan dto.NotificationResponse, notificationBufferSize)

	s.broker.subscribe(channel, ch)

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			s.broker.unsubscribe(channel, ch)
		})
	}

	return ch, cleanup
}

func (s *notificationService) broadcast(notification dto.NotificationResponse) {
	s.broker.broadcast(OfficeChannel(notification.OfficeID), notification)
	s.broker.broadcast(AllOffices, notification)
}

func (s *notificationService) publish(ctx context.Context, notification dto.NotificationResponse) error {
	event := notificationEvent{
		Source:       s.nodeID,
		Notification: notification,
		SentAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisStream != "" {
		if err := s.redis.Publish(ctx, s.redisStream, payload).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}

func (s *notificationService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisStream)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			s.logger.Error().Err(err).Msg("notification redis subscription closed")
			return
		}
		s.handleEvent([]byte(msg.Payload))
	}
}

func (s *notificationService) consumeNATS(ctx context.Context) {
	// Each node must receive every event.
	sub, err := s.nats.Subscribe(s.natsSubject, func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats notifications subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain notification nats subscription")
		}
	}()
}

func (s *notificationService) handleEvent(payload []byte) {
	var event notificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid notification event payload")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	s.broadcast(event.Notification)
}

func (b *notificationBroker) subscribe(channel string, ch chan dto.NotificationResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[channel]; !exists {
		b.subscribers[channel] = make(map[chan dto.NotificationResponse]struct{})
	}
	b.subscribers[channel][ch] = struct{}{}
}

func (b *notificationBroker) unsubscribe(channel string, ch chan dto.NotificationResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[channel]; ok {
		if _, present := subscribers[ch]; !present {
			return
		}
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, channel)
		}
	}
}

// broadcast never blocks; a full subscriber buffer drops the event.
func (b *notificationBroker) broadcast(channel string, notification dto.NotificationResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[channel] {
		select {
		case ch <- notification:
		default:
		}
	}
}
