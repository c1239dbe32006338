package clouddetect

import "context"

// ProviderID identifies a cloud service provider.
type ProviderID string

// Identifiers of the providers with built-in probes. Unknown is returned
// when a detection run produces no positive identification.
const (
	Unknown      ProviderID = "unknown"
	Alibaba      ProviderID = "alibaba"
	AWS          ProviderID = "aws"
	Azure        ProviderID = "azure"
	DigitalOcean ProviderID = "digitalocean"
	GCP          ProviderID = "gcp"
	OCI          ProviderID = "oci"
	OpenStack    ProviderID = "openstack"
	Vultr        ProviderID = "vultr"
	Akamai       ProviderID = "akamai"
)

func (p ProviderID) String() string {
	return string(p)
}

// Probe checks whether the local machine runs on one specific provider.
// Implementations are stateless and safe for repeated, concurrent use.
type Probe interface {
	// ID returns the identifier of the provider this probe checks for.
	ID() ProviderID

	// Identify reports whether the local machine runs on this probe's
	// provider. Network I/O must honor ctx. I/O failures of any kind are
	// swallowed and reported as false, never propagated.
	Identify(ctx context.Context) bool
}
