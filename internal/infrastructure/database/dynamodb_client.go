package database

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// DynamoDBSettings holds the connection parameters for DynamoDB.
//
// Endpoint is optional and points the client at DynamoDB Local.
type DynamoDBSettings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// DynamoDBSettingsFromEnv reads:
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID (default: local)
//   - AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
func DynamoDBSettingsFromEnv() DynamoDBSettings {
	return DynamoDBSettings{
		Region:          getenvDefault("AWS_REGION", "us-east-1"),
		AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
	}
}

// ConnectDynamoDB creates a DynamoDB client for the cart and payment tables.
func ConnectDynamoDB(ctx context.Context, s DynamoDBSettings, logger *zap.Logger) (*dynamodb.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := NewDynamoDBConfig(ctx, s)
	if err != nil {
		logger.Error("[database] failed to create dynamodb config", zap.Error(err))
		return nil, err
	}
	logger.Info("[database] dynamodb client ready",
		zap.String("region", s.Region),
		zap.Bool("local_endpoint", s.Endpoint != ""),
	)
	return dynamodb.NewFromConfig(cfg), nil
}

func NewDynamoDBConfig(ctx context.Context, s DynamoDBSettings) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, "")

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(creds),
	}

	if s.Endpoint != "" {
		endpoint := s.Endpoint
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
