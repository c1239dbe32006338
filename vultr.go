package clouddetect

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const (
	vultrMetadataURL = "http://169.254.169.254/v1.json"
	vultrVendorFile  = "/sys/class/dmi/id/sys_vendor"
)

type vultrProbe struct {
	metadataURL string
	vendorFile  string
}

func newVultrProbe() *vultrProbe {
	return &vultrProbe{
		metadataURL: vultrMetadataURL,
		vendorFile:  vultrVendorFile,
	}
}

func (p *vultrProbe) ID() ProviderID {
	return Vultr
}

func (p *vultrProbe) Identify(ctx context.Context) bool {
	return fileContains(p.vendorFile, "Vultr") || p.checkMetadataServer(ctx)
}

func (p *vultrProbe) checkMetadataServer(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.metadataURL, nil)
	if err != nil {
		return false
	}

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var metadata struct {
		InstanceID string `json:"instanceid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		log.Debugf("vultr: failed to decode metadata response: %v", err)
		return false
	}
	return metadata.InstanceID != ""
}
