//go:build testing

package test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	pool      *dockertest.Pool
	resources []*dockertest.Resource = make([]*dockertest.Resource, 0)

	sourceHost string = envOrDefault("SOURCE_MONGO_HOST", "localhost")
	sourcePort string = envOrDefault("SOURCE_MONGO_PORT", "27017")
	targetHost string = envOrDefault("TARGET_MONGO_HOST", "localhost")
	targetPort string = envOrDefault("TARGET_MONGO_PORT", "27018")

	alreadySetUp bool = false
)

// SetupDocker starts two independent MongoDB containers, one acting as the
// source store and one as the target store.
func SetupDocker() {
	if alreadySetUp {
		return
	}

	log.Println("Setting up docker (missing images will be pulled, which might take some time)...")

	var err error
	if pool == nil {
		pool, err = dockertest.NewPool("")
		if err != nil {
			log.Fatalf("Could not create pool: %s", err)
		}
	}

	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not ping docker: %s", err)
	}

	if err := setupMongoDb("mongrove-source-mongodb", sourcePort); err != nil {
		log.Fatalf("Could not setup source mongodb: %s", err)
	}
	if err := setupMongoDb("mongrove-target-mongodb", targetPort); err != nil {
		log.Fatalf("Could not setup target mongodb: %s", err)
	}

	err = pool.Retry(func() error {
		if err := pingMongoDb(SourceUri()); err != nil {
			return err
		}
		return pingMongoDb(TargetUri())
	})
	if err != nil {
		log.Fatalf("Readiness probe failed: %s", err)
	}

	alreadySetUp = true
}

func TeardownDocker() {
	for _, resource := range resources {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge container: %s", err)
		}
	}
}

func SourceUri() string {
	return fmt.Sprintf("mongodb://%s:%s", sourceHost, sourcePort)
}

func TargetUri() string {
	return fmt.Sprintf("mongodb://%s:%s", targetHost, targetPort)
}

func pingMongoDb(uri string) error {
	var ctx = context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	return client.Ping(ctx, nil)
}

func setupMongoDb(name string, hostPort string) error {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:         name,
		Repository:   envOrDefault("MONGO_IMAGE", "mongo"),
		Tag:          envOrDefault("MONGO_TAG", "7.0.5-rc0"),
		ExposedPorts: []string{"27017/tcp"},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"27017/tcp": {{HostIP: "localhost", HostPort: hostPort}},
		},
	}, configureTeardown)
	resources = append(resources, resource)
	return err
}

func configureTeardown(config *docker.HostConfig) {
	config.AutoRemove = true
	config.RestartPolicy = docker.RestartPolicy{
		Name: "no",
	}
}

func envOrDefault(name string, fallback string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	return value
}
