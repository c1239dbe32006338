package clouddetect

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultDetectionTimeout bounds a detection run when the caller's context
// carries no deadline.
const DefaultDetectionTimeout = 5 * time.Second

// Probe requests carry the per-run context deadline, so the shared client
// needs no timeout of its own.
var hc = &http.Client{}

var errNoProvider = errors.New("no cloud provider identified")

// Detector runs detection runs against a fixed registry.
type Detector struct {
	// Timeout bounds a run when the caller's context has no deadline.
	// Zero means DefaultDetectionTimeout.
	Timeout time.Duration

	registry *Registry
}

// NewDetector returns a detector that fans out over the probes in registry.
func NewDetector(registry *Registry) *Detector {
	return &Detector{registry: registry}
}

// Detect reports which cloud provider hosts the local machine, or Unknown if
// no probe produces a positive identification before the deadline. Every
// registered probe runs concurrently; the first positive result wins. Probes
// still running when Detect returns are abandoned, their context is canceled
// and any late result is dropped.
func (d *Detector) Detect(ctx context.Context) ProviderID {
	timeout := d.Timeout
	if timeout == 0 {
		timeout = DefaultDetectionTimeout
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	probes := d.registry.snapshot()
	runLog := log.WithField("run", uuid.New().String()[:8])
	runLog.Tracef("starting detection with %d probes", len(probes))

	results := make(chan ProviderID, 1)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for _, probe := range probes {
		wg.Add(1)
		go func(p Probe) {
			defer wg.Done()
			if p.Identify(runCtx) {
				select {
				case results <- p.ID():
				default:
					// another probe already won
				}
			}
		}(probe)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case id := <-results:
		runLog.Debugf("identified provider %s", id)
		return id
	case <-done:
		// the winning probe may have published right before the last
		// probe finished, check once more before giving up
		select {
		case id := <-results:
			runLog.Debugf("identified provider %s", id)
			return id
		default:
			runLog.Debug("all probes finished without a match")
			return Unknown
		}
	case <-ctx.Done():
		select {
		case id := <-results:
			runLog.Debugf("identified provider %s", id)
			return id
		default:
			runLog.Debug("detection timed out")
			return Unknown
		}
	}
}

// WaitForDetection retries Detect with exponential backoff until a provider
// is identified or ctx is done. Useful early in boot, when the metadata
// service may not be reachable yet.
func (d *Detector) WaitForDetection(ctx context.Context) ProviderID {
	id := Unknown
	operation := func() error {
		id = d.Detect(ctx)
		if id == Unknown {
			return errNoProvider
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(backoff.NewExponentialBackOff(), ctx)); err != nil {
		return Unknown
	}
	return id
}
