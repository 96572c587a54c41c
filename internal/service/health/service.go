package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    string                 `json:"uptime,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker defines a health check function
type Checker func(ctx context.Context) CheckResult

// Service handles health checks. The interpretation pipeline itself is
// stateless, so readiness reduces to whether the remote model backend
// can be reached. With the fallback dictionary enabled an unreachable
// backend degrades the service instead of taking it out of rotation.
type Service struct {
	modelURL      string
	modelFallback bool
	httpClient    *http.Client
	startTime     time.Time
	version       string
	checkers      map[string]Checker
	log           *zap.Logger
	mu            sync.RWMutex
}

// Config holds health service configuration
type Config struct {
	Version       string
	ModelURL      string
	ModelFallback bool
}

// NewService creates a new health service
func NewService(config *Config, log *zap.Logger) *Service {
	s := &Service{
		modelURL:      config.ModelURL,
		modelFallback: config.ModelFallback,
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		startTime:     time.Now(),
		version:       config.Version,
		checkers:      make(map[string]Checker),
		log:           log,
	}

	if config.ModelURL != "" {
		s.RegisterChecker("model", s.checkModel)
	}

	return s
}

// RegisterChecker registers a custom health checker
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
	s.log.Info("Registered health checker", zap.String("name", name))
}

// Health performs a basic liveness check
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready performs a comprehensive readiness check
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	// Run all checks concurrently
	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			result := checker(checkCtx)

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}

	wg.Wait()

	// Determine overall status
	overallStatus := StatusHealthy
	allReady := true

	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			allReady = false
		} else if result.Status == StatusDegraded && overallStatus != StatusUnhealthy {
			overallStatus = StatusDegraded
		}
	}

	return &ReadyResponse{
		Ready:     allReady,
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// checkModel probes the remote model endpoint. Any HTTP answer counts
// as reachable; only a transport failure marks the backend down.
func (s *Service) checkModel(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      "model",
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.modelURL, nil)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("bad model URL: %v", err)
		result.Duration = time.Since(start)
		return result
	}

	resp, err := s.httpClient.Do(req)
	result.Duration = time.Since(start)

	if err != nil {
		if s.modelFallback {
			result.Status = StatusDegraded
			result.Message = "model unreachable, answering from the fallback dictionary"
		} else {
			result.Status = StatusUnhealthy
			result.Message = fmt.Sprintf("model unreachable: %v", err)
		}
		s.log.Warn("Model health check failed", zap.Error(err))
		return result
	}
	resp.Body.Close()

	result.Status = StatusHealthy
	result.Message = "backend reachable"
	return result
}
