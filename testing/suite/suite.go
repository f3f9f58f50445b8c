package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120
	startTimeout = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite gives a test an empty redis database for the save slot.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New - starts a redis container for t and removes it on cleanup.
// The test is skipped when no docker daemon answers.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool := dockerPool(t)
	resource := startRedis(t, pool)

	client := connect(ctx, t, pool, resource)
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()

		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not remove redis container: %v", err)
		}
	})

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
		Storage: client,
	}
}

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker client unavailable: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon unreachable: %v", err)
	}

	pool.MaxWait = startTimeout

	return pool
}

func startRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(hostConfig *docker.HostConfig) {
		hostConfig.AutoRemove = true
		hostConfig.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	// hard stop in case cleanup never runs
	_ = resource.Expire(containerTTL)

	return resource
}

// connect - retries until redis inside the container accepts connections.
func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})

	if err := pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		_ = pool.Purge(resource)

		t.Fatalf("redis never became ready: %v", err)
	}

	return client
}
