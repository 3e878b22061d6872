package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/twmb/franz-go/pkg/kgo"
)

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Timestamp int64                  `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

const checkTimeout = 5 * time.Second

// CheckResult represents the result of an individual health check
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// HealthCheck is a function that performs a health check
type HealthCheck func() CheckResult

// HealthChecker manages and executes health checks. Checks are registered
// during startup, before the router serves traffic.
type HealthChecker struct {
	service string
	version string
	checks  map[string]HealthCheck
}

func NewHealthChecker(service, version string) *HealthChecker {
	return &HealthChecker{
		service: service,
		version: version,
		checks:  make(map[string]HealthCheck),
	}
}

func (hc *HealthChecker) AddCheck(name string, check HealthCheck) {
	hc.checks[name] = check
}

// CheckHealth runs all health checks and returns the overall status. An
// unknown check status counts as unhealthy.
func (hc *HealthChecker) CheckHealth() HealthStatus {
	status := HealthStatus{
		Service:   hc.service,
		Version:   hc.version,
		Timestamp: time.Now().Unix(),
		Checks:    make(map[string]CheckResult, len(hc.checks)),
	}

	worst := 0
	for name, check := range hc.checks {
		result := check()
		status.Checks[name] = result
		if rank := severity(result.Status); rank > worst {
			worst = rank
		}
	}
	status.Status = []string{StatusHealthy, StatusDegraded, StatusUnhealthy}[worst]
	return status
}

func severity(status string) int {
	switch status {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// Handler serves the health report; only an unhealthy service answers 503.
func (hc *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := hc.CheckHealth()
		statusCode := http.StatusOK
		if health.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}

// probe runs fn under checkTimeout and reports failures with failStatus.
func probe(failStatus, okMessage, failPrefix string, fn func(ctx context.Context) error) CheckResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		return CheckResult{
			Status:  failStatus,
			Message: fmt.Sprintf("%s: %v", failPrefix, err),
			Latency: time.Since(start).String(),
		}
	}
	return CheckResult{Status: StatusHealthy, Message: okMessage, Latency: time.Since(start).String()}
}

// DatabaseHealthCheck pings the pool; a failed ping makes the service
// unhealthy.
func DatabaseHealthCheck(db *sql.DB) HealthCheck {
	return func() CheckResult {
		if db == nil {
			return CheckResult{Status: StatusUnhealthy, Message: "Database connection is nil"}
		}
		return probe(StatusUnhealthy, "Database connection successful", "Database ping failed", db.PingContext)
	}
}

// KafkaProducerHealthCheck reports a broker outage as degraded: query events
// are best effort and never block request handling.
func KafkaProducerHealthCheck(client *kgo.Client) HealthCheck {
	return func() CheckResult {
		if client == nil {
			return CheckResult{Status: StatusDegraded, Message: "Kafka client is nil"}
		}
		return probe(StatusDegraded, "Kafka producer connection healthy", "Kafka ping failed", client.Ping)
	}
}

// EndpointHealthCheck probes an HTTP dependency with a GET. Any response
// below 500 proves the endpoint is reachable; MCP endpoints answer plain GETs
// with 4xx. Failures are degraded because callers render them inline.
func EndpointHealthCheck(name, url string) HealthCheck {
	client := &http.Client{Timeout: checkTimeout}
	return func() CheckResult {
		return probe(StatusDegraded, name+" responding", name+" unreachable", func(ctx context.Context) error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("status %d", resp.StatusCode)
			}
			return nil
		})
	}
}

// ConfigurationHealthCheck is unhealthy while any of the named settings is
// empty.
func ConfigurationHealthCheck(settings map[string]string) HealthCheck {
	return func() CheckResult {
		missing := make([]string, 0)
		for key, value := range settings {
			if strings.TrimSpace(value) == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) == 0 {
			return CheckResult{Status: StatusHealthy, Message: "All required configuration present"}
		}
		sort.Strings(missing)
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: "Missing required configuration: " + strings.Join(missing, ", "),
		}
	}
}
