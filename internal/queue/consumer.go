package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// StartBidConsumer connects to RabbitMQ, declares the bid.placed
// queue and consumes it, writing one structured log line per accepted
// bid. It runs a reconnect loop with capped backoff and is meant to
// be launched in its own goroutine; it never returns under normal
// operation. Malformed messages are rejected without requeue.
func StartBidConsumer() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.WithError(err).Warnf("bid-consumer: dial failed; retrying in %s", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.WithError(err).Warn("bid-consumer: consume loop ended; reconnecting")
			time.Sleep(2 * time.Second)
		}
		_ = conn.Close()
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("bid-consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(bidQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(bidQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		var ev BidPlacedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			log.WithError(err).Warn("bid-consumer: bad message body")
			_ = d.Reject(false)
			continue
		}
		log.WithFields(log.Fields{
			"event_id":   ev.EventID,
			"bid_id":     ev.BidID,
			"auction_id": ev.AuctionID,
			"user_id":    ev.UserID,
			"amount":     ev.Amount,
			"placed_at":  ev.PlacedAt,
		}).Info("bid placed")
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}
