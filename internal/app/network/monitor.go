package network

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"riceguard/internal/app/ds"

	log "github.com/sirupsen/logrus"
)

// Options configures the upstream probe. An empty ProbeURL disables probing.
type Options struct {
	ProbeURL      string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	StartOffline  bool
}

// Monitor tracks device connectivity. WasOffline is sticky for the lifetime of the monitor.
type Monitor struct {
	mu        sync.RWMutex
	status    ds.NetworkStatus
	lastProbe *ds.ConnectivityProbe
	observers map[int]func(ds.NetworkStatus)
	nextID    int

	opts   Options
	client *http.Client
}

func NewMonitor(opts Options) *Monitor {
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = 15 * time.Second
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}

	m := &Monitor{
		observers: make(map[int]func(ds.NetworkStatus)),
		opts:      opts,
		client: &http.Client{
			Timeout: opts.ProbeTimeout,
			// probes never reuse pooled connections
			Transport: &http.Transport{DisableKeepAlives: true},
		},
	}
	m.status = ds.NetworkStatus{
		IsOnline:   !opts.StartOffline,
		IsOffline:  opts.StartOffline,
		WasOffline: opts.StartOffline,
	}
	return m
}

// Status returns a snapshot of the current connectivity state.
func (m *Monitor) Status() ds.NetworkStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// IsOnline is a shorthand for Status().IsOnline.
func (m *Monitor) IsOnline() bool {
	return m.Status().IsOnline
}

// LastProbe returns the most recent probe result, or nil if none ran yet.
func (m *Monitor) LastProbe() *ds.ConnectivityProbe {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastProbe == nil {
		return nil
	}
	p := *m.lastProbe
	return &p
}

// Set applies one connectivity event. Observers are notified only on transitions.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	if m.status.IsOnline == online {
		m.mu.Unlock()
		return
	}
	m.status.IsOnline = online
	m.status.IsOffline = !online
	if !online {
		m.status.WasOffline = true
	}
	snapshot := m.status
	observers := make([]func(ds.NetworkStatus), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	if online {
		log.Info("network: back online")
	} else {
		log.Warn("network: went offline")
	}
	for _, fn := range observers {
		fn(snapshot)
	}
}

// Subscribe registers fn for status transitions. The returned func removes it and is safe to call twice.
func (m *Monitor) Subscribe(fn func(ds.NetworkStatus)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.observers, id)
			m.mu.Unlock()
		})
	}
}

// Probe checks the upstream URL once and records the result. It does not call Set.
func (m *Monitor) Probe(ctx context.Context) ds.ConnectivityProbe {
	res := ds.ConnectivityProbe{Target: m.opts.ProbeURL}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.opts.ProbeURL, nil)
	if err == nil {
		var resp *http.Response
		resp, err = m.client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= http.StatusInternalServerError {
				err = fmt.Errorf("upstream returned %d", resp.StatusCode)
			}
		}
	}

	res.LatencyMs = time.Since(start).Milliseconds()
	res.CheckedAt = time.Now().UTC()
	res.OK = err == nil
	if err != nil {
		res.Error = err.Error()
	}

	m.mu.Lock()
	m.lastProbe = &res
	m.mu.Unlock()
	return res
}

// Run probes the upstream until ctx is done. Without a probe URL it only waits for ctx
// and the status moves only through Set.
func (m *Monitor) Run(ctx context.Context) {
	if m.opts.ProbeURL == "" {
		log.Info("network: no probe url configured, status changes only through reported events")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(m.opts.ProbeInterval)
	defer ticker.Stop()

	for {
		p := m.Probe(ctx)
		if ctx.Err() != nil {
			return
		}
		if !p.OK {
			log.WithField("target", p.Target).Debugf("network: probe failed: %s", p.Error)
		}
		m.Set(p.OK)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
