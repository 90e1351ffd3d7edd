package aws

import (
	"context"

	"weather-api/internal/domain/gateway/queue"
	"weather-api/pkg/sqs"
)

// SQSSenderAdapter adapts pkg/sqs.Sender to the domain queue.Sender and queue.Pinger interfaces
type SQSSenderAdapter struct {
	sqsSender *sqs.Sender
}

var (
	_ queue.Sender = (*SQSSenderAdapter)(nil)
	_ queue.Pinger = (*SQSSenderAdapter)(nil)
)

func NewSQSSenderAdapter(sqsClient sqs.SQSClient) *SQSSenderAdapter {
	return &SQSSenderAdapter{sqsSender: sqs.NewSender(sqsClient)}
}

func (adapter *SQSSenderAdapter) SendMessage(ctx context.Context, queueName string, body any) error {
	return adapter.sqsSender.SendMessage(ctx, queueName, body)
}

// SendMessageBatch implements the domain interface by converting types
func (adapter *SQSSenderAdapter) SendMessageBatch(ctx context.Context, queueName string, messages []queue.BatchMessage) (*queue.BatchResult, error) {
	sqsMessages := make([]sqs.BatchMessage, len(messages))
	for i, message := range messages {
		sqsMessages[i] = sqs.BatchMessage{
			MessageID: message.MessageID,
			Body:      message.Body,
		}
	}

	result, err := adapter.sqsSender.SendMessageBatch(ctx, queueName, sqsMessages)
	if err != nil {
		return nil, err
	}

	return &queue.BatchResult{
		Successful: result.Successful,
		Failed:     result.Failed,
	}, nil
}

func (adapter *SQSSenderAdapter) Ping(ctx context.Context, queueName string) error {
	return adapter.sqsSender.Ping(ctx, queueName)
}
