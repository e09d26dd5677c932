package health

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"

	"github.com/civicgate/email-validation/internal/core/ports"
	infraDB "github.com/civicgate/email-validation/internal/infrastructure/db"
)

// dbHealthChecker wraps the profile database for health checks.
type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "database" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.DB.PingContext(ctx) }

// redisHealthChecker wraps the token store client for health checks.
type redisHealthChecker struct{ client *redis.Client }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// urlHealthChecker probes that a URL answers a HEAD request. Used for
// the validation callback page the service redirects citizens to.
type urlHealthChecker struct {
	name   string
	url    string
	client *http.Client
}

func (u *urlHealthChecker) Name() string { return u.name }

func (u *urlHealthChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.url, nil)
	if err != nil {
		return err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u.url)
	}
	return nil
}

// NewDBHealthChecker creates a health checker for the profile database.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewRedisHealthChecker creates a health checker for the token store.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// NewURLHealthChecker creates a reachability probe for an external URL.
func NewURLHealthChecker(name, url string) ports.HealthChecker {
	return &urlHealthChecker{name: name, url: url, client: http.DefaultClient}
}
