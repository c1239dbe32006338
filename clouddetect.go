// Package clouddetect identifies the cloud provider hosting the local
// machine. It races one probe per supported provider, each combining a local
// vendor file check with a bounded call to the provider's metadata service,
// and resolves to the first positive identification or Unknown.
package clouddetect

import (
	"context"
	"sync"
	"time"
)

var (
	defaultDetector     *Detector
	defaultDetectorOnce sync.Once
)

func getDefaultDetector() *Detector {
	defaultDetectorOnce.Do(func() {
		defaultDetector = NewDetector(DefaultRegistry())
	})
	return defaultDetector
}

// Detect runs a detection over all built-in probes. It returns Unknown if no
// probe positively identifies a provider before the context deadline, or
// within DefaultDetectionTimeout when ctx carries no deadline.
func Detect(ctx context.Context) ProviderID {
	return getDefaultDetector().Detect(ctx)
}

// DetectWithTimeout is a convenience wrapper around Detect for callers
// without a context.
func DetectWithTimeout(timeout time.Duration) ProviderID {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return Detect(ctx)
}

// SupportedProviders returns the names of the providers the built-in probes
// can identify.
func SupportedProviders() []string {
	ids := DefaultRegistry().Providers()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.String())
	}
	return names
}
