package notifications_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"food-delivery/models"
	"food-delivery/notifications"
	"food-delivery/notifications/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) SendOrderConfirmation(_ context.Context, to string, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"/"+order.OrderNumber)
	return nil
}

func newOrder() *models.Order {
	return &models.Order{
		ID:             7,
		OrderNumber:    "ORD-20260101-00000007",
		UserID:         1,
		RestaurantID:   10,
		RestaurantName: "Seoul Kitchen",
		Status:         models.OrderPending,
		TotalAmount:    decimal.NewFromInt(19000),
	}
}

func hasTitle(title string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		n, ok := x.(notifications.Notification)
		return ok && n.Title == title
	})
}

func TestDispatcherOrderCreatedFansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	mailer := &fakeMailer{}

	publisher.EXPECT().Publish(gomock.Any(), "restaurant:10", hasTitle(notifications.TitleNewOrder)).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), "order:7", hasTitle(notifications.TitleNewOrder)).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), "user:1", hasTitle(notifications.TitleOrderPlaced)).Return(nil)

	d := notifications.NewDispatcher(publisher, mailer, notifications.Options{Workers: 2, QueueSize: 8, Timeout: time.Second})
	email := "kim@example.com"
	d.OrderCreated(newOrder(), &email)
	d.Close()

	assert.Equal(t, []string{"kim@example.com/ORD-20260101-00000007"}, mailer.sent)
}

func TestDispatcherFailingChannelDoesNotStopOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)

	order := newOrder()
	order.Status = models.OrderConfirmed

	gomock.InOrder(
		publisher.EXPECT().Publish(gomock.Any(), "restaurant:10", gomock.Any()).Return(errors.New("redis down")),
		publisher.EXPECT().Publish(gomock.Any(), "order:7", gomock.Any()).Return(nil),
		publisher.EXPECT().Publish(gomock.Any(), "user:1", gomock.Any()).Return(nil),
	)

	d := notifications.NewDispatcher(publisher, nil, notifications.Options{Workers: 1, QueueSize: 4, Timeout: time.Second})
	d.OrderStatusChanged(order, models.OrderPending)
	d.Close()
}

func TestDispatcherSkipsMailWithoutEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	mailer := &fakeMailer{}

	d := notifications.NewDispatcher(publisher, mailer, notifications.Options{Workers: 1, QueueSize: 4, Timeout: time.Second})
	d.OrderCreated(newOrder(), nil)
	d.Close()

	assert.Empty(t, mailer.sent)
}

// blockingPublisher holds the only worker so the queue can be filled.
type blockingPublisher struct {
	release chan struct{}
	mu      sync.Mutex
	count   int
}

func (p *blockingPublisher) Publish(ctx context.Context, _ string, _ notifications.Notification) error {
	<-p.release
	p.mu.Lock()
	p.count++
	p.mu.Unlock()
	return nil
}

func TestDispatcherNeverBlocksCaller(t *testing.T) {
	publisher := &blockingPublisher{release: make(chan struct{})}
	d := notifications.NewDispatcher(publisher, nil, notifications.Options{Workers: 1, QueueSize: 1, Timeout: time.Second})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.OrderStatusChanged(newOrder(), models.OrderPending)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("OrderStatusChanged blocked on a full queue")
	}

	close(publisher.release)
	d.Close()

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	require.Positive(t, publisher.count)
	assert.Less(t, publisher.count, 30, "events beyond the queue capacity are dropped")
}

func TestDispatcherDropsAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)

	d := notifications.NewDispatcher(publisher, nil, notifications.Options{})
	d.Close()
	d.Close()

	d.OrderStatusChanged(newOrder(), models.OrderPending)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, notifications.NopPublisher{}.Publish(context.Background(), "user:1", notifications.Notification{}))
}
