// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package testinfra manages disposable containers for integration
// tests. Tests that use it are gated behind COMMUNE_TEST_MONGO so the
// default run needs no Docker daemon.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SkipUnlessMongoEnabled skips the test unless COMMUNE_TEST_MONGO=1 and
// a Docker daemon is reachable.
func SkipUnlessMongoEnabled(t *testing.T) {
	t.Helper()
	if os.Getenv("COMMUNE_TEST_MONGO") != "1" {
		t.Skip("set COMMUNE_TEST_MONGO=1 to run Mongo integration tests")
	}
	if !IsDockerAvailable() {
		t.Skip("Docker not available")
	}
}

// IsDockerAvailable reports whether a Docker daemon answers.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// StartMongo brings up a MongoDB container and returns its connection
// URI. The container is terminated when the test finishes.
func StartMongo(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate mongo container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}
