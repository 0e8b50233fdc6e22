package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// PublisherAPI defines the interface for SQS operations used by the
// dead-letter publisher.
type PublisherAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// DeadLetterPublisher mirrors repeatedly failing events onto an SQS queue so
// operators can alert on them. The event row itself stays in the store with
// status=error; the queue is a notification channel, not the source of truth.
type DeadLetterPublisher struct {
	client   PublisherAPI
	queueURL string
}

// NewDeadLetterPublisher creates a DeadLetterPublisher with the given client
// and queue URL.
func NewDeadLetterPublisher(client PublisherAPI, queueURL string) *DeadLetterPublisher {
	return &DeadLetterPublisher{
		client:   client,
		queueURL: queueURL,
	}
}

// DeadLetterMessage describes an event that kept failing dispatch.
type DeadLetterMessage struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	RetryCount int    `json:"retry_count"`
	LastError  string `json:"last_error"`
}

// Publish sends a dead-letter message to the SQS queue.
func (p *DeadLetterPublisher) Publish(ctx context.Context, msg DeadLetterMessage) error {
	messageBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(messageBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
