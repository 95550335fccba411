package kv_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

// Remote drivers run only when a backend is provided, mirroring how the
// integration suites are wired in CI.

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REVOSHOP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("REVOSHOP_TEST_REDIS_ADDR not set")
	}

	s, err := kv.DialRedis(context.Background(), addr, os.Getenv("REVOSHOP_TEST_REDIS_PASSWORD"))
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, kv.Namespace(s, "revoshop-test:"+t.Name()))
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("REVOSHOP_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("REVOSHOP_TEST_MONGO_URI not set")
	}

	s, err := kv.DialMongo(context.Background(), uri, "revoshop_test", "kv")
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, kv.Namespace(s, t.Name()))
}

func TestS3RequiresBucket(t *testing.T) {
	_, err := kv.DialS3(context.Background(), kv.S3Options{Region: "us-east-1"})
	require.Error(t, err)
}
