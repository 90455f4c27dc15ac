package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

var (
	ErrBufferFull = errors.New("loki buffer is full, entry dropped")
	ErrStopped    = errors.New("loki pusher is stopped")
)

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {

	// TenantKey and TenantValue set a tenant header for multi-tenant Loki setups.
	// Both are optional.
	TenantKey   string
	TenantValue string

	// Url of the push endpoint, e.g. https://example-prod.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of log lines sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time an entry waits in the batch before it is sent
	BatchMaxWait time.Duration `validate:"gte=1"`

	// BufferSize is the number of entries Push may queue before it starts dropping
	BufferSize int `validate:"gte=1"`

	// Labels are attached to every stream
	Labels map[string]string

	// Username and Password enable basic auth when both are set
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 4096
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
	Caller    string    `json:"caller,omitempty"`
	ErrorType string    `json:"error_type,omitempty"`
	Time      time.Time `json:"-"`
}

type Pusher struct {
	config  *Config
	ctx     context.Context
	cancel  context.CancelFunc
	client  *http.Client
	entries chan LogEntry
	done    chan struct{}
	stop    sync.Once
	mu      sync.RWMutex
	stopped bool
	logger  Logger
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:  &cfg,
		ctx:     ctx,
		cancel:  cancel,
		client:  &http.Client{Timeout: 10 * time.Second},
		entries: make(chan LogEntry, cfg.BufferSize),
		done:    make(chan struct{}),
		logger:  logger,
	}

	go p.run()
	return p, nil
}

// Push queues an entry without blocking the caller.
func (p *Pusher) Push(e LogEntry) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrStopped
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	select {
	case p.entries <- e:
		return nil
	default:
		return ErrBufferFull
	}
}

// Stop flushes queued entries and waits for the last request to finish.
func (p *Pusher) Stop() {
	p.stop.Do(func() {
		p.mu.Lock()
		p.stopped = true
		close(p.entries)
		p.mu.Unlock()

		<-p.done
		p.cancel()
	})
}

func (p *Pusher) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	batch := make([]LogEntry, 0, p.config.BatchMaxSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := p.send(batch); err != nil {
			p.logger.Error("failed to send logs", "error", err, "dropped", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-p.ctx.Done():
			return
		case entry, ok := <-p.entries:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= p.config.BatchMaxSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func encodeBatch(labels map[string]string, batch []LogEntry) (*bytes.Buffer, error) {
	values := make([][2]string, 0, len(batch))
	for _, entry := range batch {
		line, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		values = append(values, [2]string{strconv.FormatInt(entry.Time.UnixNano(), 10), string(line)})
	}

	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)
	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: []stream{{Stream: labels, Values: values}}}); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

func (p *Pusher) send(batch []LogEntry) error {
	body, err := encodeBatch(p.config.Labels, batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	req, err := http.NewRequestWithContext(p.ctx, http.MethodPost, p.config.Url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.config.TenantKey != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}
	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("received unexpected response code from Loki: %s, body: %s", resp.Status, string(respBody))
	}

	return nil
}
