package clouddetect

import (
	"context"
	"net/http"
)

const (
	gcpMetadataURL = "http://metadata.google.internal/computeMetadata/v1/instance/tags"
	gcpVendorFile  = "/sys/class/dmi/id/product_name"
)

type gcpProbe struct {
	metadataURL string
	vendorFile  string
}

func newGCPProbe() *gcpProbe {
	return &gcpProbe{
		metadataURL: gcpMetadataURL,
		vendorFile:  gcpVendorFile,
	}
}

func (p *gcpProbe) ID() ProviderID {
	return GCP
}

func (p *gcpProbe) Identify(ctx context.Context) bool {
	return fileContains(p.vendorFile, "Google") || p.checkMetadataServer(ctx)
}

func (p *gcpProbe) checkMetadataServer(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.metadataURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Metadata-Flavor", "Google")

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
