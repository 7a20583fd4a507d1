package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamoDBSettingsFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AWS_REGION", "")
		t.Setenv("AWS_ACCESS_KEY_ID", "")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "")
		t.Setenv("DYNAMODB_ENDPOINT", "")

		s := DynamoDBSettingsFromEnv()
		assert.Equal(t, DynamoDBSettings{Region: "us-east-1", AccessKeyID: "local", SecretAccessKey: "local"}, s)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("AWS_REGION", "sa-east-1")
		t.Setenv("DYNAMODB_ENDPOINT", "http://dynamodb:8000")

		s := DynamoDBSettingsFromEnv()
		assert.Equal(t, "sa-east-1", s.Region)
		assert.Equal(t, "http://dynamodb:8000", s.Endpoint)
	})
}

func TestNewDynamoDBConfig(t *testing.T) {
	cfg, err := NewDynamoDBConfig(context.Background(), DynamoDBSettings{
		Region:          "us-east-1",
		AccessKeyID:     "local",
		SecretAccessKey: "local",
		Endpoint:        "http://localhost:8000",
	})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local", creds.AccessKeyID)
}
