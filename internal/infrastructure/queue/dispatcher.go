package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes blog purge jobs to a fixed set of workers using consistent
// hashing on the blog ID, so purges of the same blog never run concurrently.
type Dispatcher struct {
	workers []chan string
	service ports.PurgeService
	log     zerolog.Logger

	done chan struct{}
	stop sync.Once
	wg   sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.PurgeService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		service: service,
		log:     log,
		done:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.stop.Do(func() { close(d.done) })
	}()
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue sends a purge job to the worker responsible for blogID. It blocks
// while that worker's buffer is full and drops the job once the dispatcher
// has been stopped.
func (d *Dispatcher) Enqueue(blogID string) {
	select {
	case d.workers[d.shardIndex(blogID)] <- blogID:
	case <-d.done:
		d.log.Warn().Str("blog_id", blogID).Msg("dispatcher stopped, purge dropped")
	}
}

// shardIndex maps a blog ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(blogID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(blogID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case blogID, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.PurgeBlog(ctx, blogID); err != nil {
				d.log.Error().Err(err).
					Str("blog_id", blogID).
					Int("worker_id", id).
					Msg("blog purge failed")
			}
		}
	}
}
