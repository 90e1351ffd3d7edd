package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"weather-api/configs"
)

// LoadConfig builds the AWS configuration. Static credentials are used when both keys are set,
// otherwise the default credential chain applies.
func LoadConfig(ctx context.Context, cloud configs.CloudConfig) (aws.Config, error) {
	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cloud.AWSRegion),
	}

	if cloud.AWSAccessKeyID != "" && cloud.AWSSecretAccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cloud.AWSAccessKeyID, cloud.AWSSecretAccessKey, ""),
		))
	}

	config, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return config, nil
}
