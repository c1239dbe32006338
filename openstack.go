package clouddetect

import (
	"context"
	"net/http"
)

// OpenStack hosts expose no reliable DMI marker, the metadata endpoint is
// the only evidence this probe checks.
const openStackMetadataURL = "http://169.254.169.254/openstack/"

type openStackProbe struct {
	metadataURL string
}

func newOpenStackProbe() *openStackProbe {
	return &openStackProbe{metadataURL: openStackMetadataURL}
}

func (p *openStackProbe) ID() ProviderID {
	return OpenStack
}

func (p *openStackProbe) Identify(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.metadataURL, nil)
	if err != nil {
		return false
	}

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
