package clouddetect

import "sync"

// Registry holds the set of probes a Detector fans out over. The zero value
// is not usable, construct with NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	probes []Probe
}

// NewRegistry returns a registry holding the given probes.
func NewRegistry(probes ...Probe) *Registry {
	r := &Registry{}
	r.probes = append(r.probes, probes...)
	return r
}

// Register adds a probe. Detection runs already in flight keep the snapshot
// they started with and are not affected.
func (r *Registry) Register(probe Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes = append(r.probes, probe)
}

// Providers returns the identifier of every registered probe, in
// registration order, without duplicates.
func (r *Registry) Providers() []ProviderID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[ProviderID]struct{}, len(r.probes))
	ids := make([]ProviderID, 0, len(r.probes))
	for _, probe := range r.probes {
		id := probe.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// snapshot returns a copy of the probe list, decoupled from later Register
// calls.
func (r *Registry) snapshot() []Probe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	probes := make([]Probe, len(r.probes))
	copy(probes, r.probes)
	return probes
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry holding all built-in
// probes. It is built lazily on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(
			newAlibabaProbe(),
			newAWSProbe(),
			newAzureProbe(),
			newDigitalOceanProbe(),
			newGCPProbe(),
			newOCIProbe(),
			newOpenStackProbe(),
			newVultrProbe(),
			newAkamaiProbe(),
		)
	})
	return defaultRegistry
}
