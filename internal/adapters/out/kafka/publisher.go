// Package kafka publishes integration events about order and assignment
// lifecycle changes to Kafka topics. Downstream consumers (notifications,
// vendor dashboards, analytics) subscribe to these topics; the core never
// reads them back.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/order"

	"github.com/Shopify/sarama"
)

const (
	// TopicOrderEvents carries order creation and status transitions.
	TopicOrderEvents = "order-events"

	// TopicAssignmentEvents carries acceptance race outcomes.
	TopicAssignmentEvents = "assignment-events"
)

// orderEvent is the wire shape of an order lifecycle message.
type orderEvent struct {
	Event          string  `json:"event"`
	OrderID        string  `json:"order_id"`
	CustomerID     string  `json:"customer_id"`
	RestaurantID   string  `json:"restaurant_id"`
	Status         string  `json:"status"`
	DeliveryStatus string  `json:"delivery_status"`
	PaymentMethod  string  `json:"payment_method"`
	RiderID        string  `json:"rider_id,omitempty"`
	FinalAmount    float64 `json:"final_amount"`
	Timestamp      int64   `json:"timestamp"`
}

// assignmentEvent is the wire shape of an assignment acceptance message.
type assignmentEvent struct {
	Event            string  `json:"event"`
	AssignmentID     string  `json:"assignment_id"`
	OrderID          string  `json:"order_id"`
	RiderID          string  `json:"rider_id"`
	PickupDistanceKm float64 `json:"pickup_distance_km"`
	DropDistanceKm   float64 `json:"drop_distance_km"`
	Timestamp        int64   `json:"timestamp"`
}

// SaramaEventPublisher implements EventPublisher over a synchronous Kafka
// producer. Messages are keyed by order so per-order ordering is preserved
// within a partition.
type SaramaEventPublisher struct {
	producer sarama.SyncProducer
}

// NewSaramaEventPublisher creates a publisher over an existing producer.
// The producer must have Return.Successes enabled, as SyncProducer requires.
func NewSaramaEventPublisher(producer sarama.SyncProducer) *SaramaEventPublisher {
	return &SaramaEventPublisher{producer: producer}
}

// NewSyncProducer dials the brokers with the settings this publisher needs.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	return sarama.NewSyncProducer(brokers, config)
}

// OrderCreated announces a freshly checked-out order.
func (p *SaramaEventPublisher) OrderCreated(_ context.Context, aggregate *order.Order) error {
	return p.publishOrder("order.created", aggregate)
}

// OrderStatusChanged announces a vendor- or rider-side transition.
func (p *SaramaEventPublisher) OrderStatusChanged(_ context.Context, aggregate *order.Order) error {
	return p.publishOrder("order.status_changed", aggregate)
}

// AssignmentAccepted announces the winner of an acceptance race.
func (p *SaramaEventPublisher) AssignmentAccepted(_ context.Context, aggregate *assignment.Assignment) error {
	payload := assignmentEvent{
		Event:            "assignment.accepted",
		AssignmentID:     aggregate.ID().String(),
		OrderID:          aggregate.OrderID().String(),
		RiderID:          aggregate.RiderID().String(),
		PickupDistanceKm: aggregate.PickupDistanceKm(),
		DropDistanceKm:   aggregate.DropDistanceKm(),
		Timestamp:        time.Now().Unix(),
	}

	return p.send(TopicAssignmentEvents, aggregate.OrderID().String(), payload)
}

// Close shuts the underlying producer down.
func (p *SaramaEventPublisher) Close() error {
	return p.producer.Close()
}

func (p *SaramaEventPublisher) publishOrder(event string, aggregate *order.Order) error {
	payload := orderEvent{
		Event:          event,
		OrderID:        aggregate.ID().String(),
		CustomerID:     aggregate.CustomerID().String(),
		RestaurantID:   aggregate.RestaurantID().String(),
		Status:         aggregate.Status().String(),
		DeliveryStatus: aggregate.DeliveryStatus().String(),
		PaymentMethod:  aggregate.PaymentMethod().String(),
		FinalAmount:    aggregate.Totals().FinalAmount,
		Timestamp:      time.Now().Unix(),
	}
	if rider := aggregate.AssignedRider(); rider != nil {
		payload.RiderID = rider.String()
	}

	return p.send(TopicOrderEvents, aggregate.ID().String(), payload)
}

func (p *SaramaEventPublisher) send(topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	})
	return err
}
