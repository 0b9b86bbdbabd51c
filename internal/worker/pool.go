// Package worker provides background prefetching of upcoming queue audio.
package worker

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

const fetchTimeout = 30 * time.Second

// Fetcher downloads the bytes behind an audio URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches audio over plain HTTP.
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch downloads the audio at url.
func (f HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("worker: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Job represents one prefetch request.
type Job struct {
	TrackID  string
	AudioURL string
}

// Pool manages background workers that warm the audio cache for tracks the
// playback cursor is about to reach.
type Pool struct {
	fetcher Fetcher
	cache   *cache
	jobs    chan Job
	wg      sync.WaitGroup
}

// NewPool creates a prefetch pool with the given queue size and cache
// capacity (in entries).
func NewPool(fetcher Fetcher, queueSize, cacheSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if cacheSize < 1 {
		cacheSize = 1
	}
	if fetcher == nil {
		fetcher = HTTPFetcher{}
	}
	return &Pool{
		fetcher: fetcher,
		cache:   newCache(cacheSize),
		jobs:    make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking; a saturated queue drops the job.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping prefetch for %s", job.TrackID)
	}
}

// Prefetch satisfies the engine's prefetcher contract.
func (p *Pool) Prefetch(trackID, audioURL string) {
	p.Submit(Job{TrackID: trackID, AudioURL: audioURL})
}

// Get returns cached audio bytes for a URL, if present.
func (p *Pool) Get(url string) ([]byte, bool) {
	return p.cache.get(url)
}

// Fetch returns cached bytes or downloads and caches them. The speaker
// adapter reads through this so already-warmed tracks start instantly.
func (p *Pool) Fetch(url string) ([]byte, error) {
	if data, ok := p.cache.get(url); ok {
		return data, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	data, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	p.cache.put(url, data)
	return data, nil
}

func (p *Pool) processJob(job Job) {
	if job.AudioURL == "" {
		return
	}
	if _, ok := p.cache.get(job.AudioURL); ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	data, err := p.fetcher.Fetch(ctx, job.AudioURL)
	if err != nil {
		log.Printf("WARN worker: prefetch %s: %v", job.TrackID, err)
		return
	}
	p.cache.put(job.AudioURL, data)
}

// cache is a bounded FIFO byte cache keyed by URL.
type cache struct {
	mu    sync.Mutex
	cap   int
	order []string
	data  map[string][]byte
}

func newCache(capacity int) *cache {
	return &cache{cap: capacity, data: map[string][]byte{}}
}

func (c *cache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok
}

func (c *cache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		c.order = append(c.order, key)
	}
	c.data[key] = value
	for len(c.order) > c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
}
