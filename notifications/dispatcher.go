package notifications

import (
	"context"
	"sync"
	"time"

	"food-delivery/metrics"
	"food-delivery/models"

	log "github.com/sirupsen/logrus"
)

// OrderMailer sends the customer confirmation for a placed order.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
}

type Options struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

type job struct {
	deliveries []Delivery
	order      *models.Order
	email      string
}

// Dispatcher fans order events out to their channels from a small worker
// pool. Callers never block on delivery and never see its errors.
type Dispatcher struct {
	publisher Publisher
	mailer    OrderMailer
	timeout   time.Duration
	now       func() time.Time

	queue  chan job
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts the workers. mailer may be nil.
func NewDispatcher(publisher Publisher, mailer OrderMailer, opts Options) *Dispatcher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	d := &Dispatcher{
		publisher: publisher,
		mailer:    mailer,
		timeout:   opts.Timeout,
		now:       time.Now,
		queue:     make(chan job, opts.QueueSize),
	}

	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) OrderCreated(order *models.Order, customerEmail *string) {
	metrics.OrderTransitions.WithLabelValues(string(order.Status)).Inc()

	j := job{deliveries: OrderCreatedDeliveries(order, d.now())}
	if customerEmail != nil && *customerEmail != "" {
		j.order = order
		j.email = *customerEmail
	}
	d.enqueue(j)
}

func (d *Dispatcher) OrderStatusChanged(order *models.Order, oldStatus models.OrderStatus) {
	metrics.OrderTransitions.WithLabelValues(string(order.Status)).Inc()
	d.enqueue(job{deliveries: StatusChangedDeliveries(order, oldStatus, d.now())})
}

// Close stops accepting events and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(j, "dispatcher closed")
		return
	}

	select {
	case d.queue <- j:
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
	default:
		d.drop(j, "queue full")
	}
}

func (d *Dispatcher) drop(j job, reason string) {
	for _, delivery := range j.deliveries {
		metrics.NotificationsTotal.WithLabelValues(channelLabel(delivery.Channel), "dropped").Inc()
	}
	if len(j.deliveries) > 0 {
		log.WithFields(log.Fields{
			"order_id": j.deliveries[0].Notification.OrderID,
			"kind":     j.deliveries[0].Notification.Kind,
			"reason":   reason,
		}).Warn("Order notification dropped")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	for _, delivery := range j.deliveries {
		d.publish(delivery)
	}
	if j.email != "" && d.mailer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.mailer.SendOrderConfirmation(ctx, j.email, j.order); err != nil {
			log.WithError(err).WithField("order_id", j.order.ID).Warn("Failed to send order confirmation email")
		}
		cancel()
	}
}

// publish makes one bounded attempt per channel; failures are only logged.
func (d *Dispatcher) publish(delivery Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	label := channelLabel(delivery.Channel)
	if err := d.publisher.Publish(ctx, delivery.Channel, delivery.Notification); err != nil {
		metrics.NotificationsTotal.WithLabelValues(label, "failed").Inc()
		log.WithError(err).WithFields(log.Fields{
			"channel":  delivery.Channel,
			"order_id": delivery.Notification.OrderID,
			"kind":     delivery.Notification.Kind,
		}).Warn("Failed to publish order notification")
		return
	}
	metrics.NotificationsTotal.WithLabelValues(label, "sent").Inc()
}

func channelLabel(channel string) string {
	kind, _, err := ParseChannel(channel)
	if err != nil {
		return "unknown"
	}
	return string(kind)
}
