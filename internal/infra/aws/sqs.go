package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// NewSqsClient creates an SQS client, pointing it to endpoint (LocalStack) when set
func NewSqsClient(config aws.Config, endpoint string) *sqs.Client {
	return sqs.NewFromConfig(config, func(options *sqs.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
}
