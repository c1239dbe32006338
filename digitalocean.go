package clouddetect

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const (
	digitalOceanMetadataURL = "http://169.254.169.254/metadata/v1.json"
	digitalOceanVendorFile  = "/sys/class/dmi/id/sys_vendor"
)

type digitalOceanProbe struct {
	metadataURL string
	vendorFile  string
}

func newDigitalOceanProbe() *digitalOceanProbe {
	return &digitalOceanProbe{
		metadataURL: digitalOceanMetadataURL,
		vendorFile:  digitalOceanVendorFile,
	}
}

func (p *digitalOceanProbe) ID() ProviderID {
	return DigitalOcean
}

func (p *digitalOceanProbe) Identify(ctx context.Context) bool {
	return fileContains(p.vendorFile, "DigitalOcean") || p.checkMetadataServer(ctx)
}

func (p *digitalOceanProbe) checkMetadataServer(ctx context.Context) bool {
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
		DropletID int `json:"droplet_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		log.Debugf("digitalocean: failed to decode metadata response: %v", err)
		return false
	}
	return metadata.DropletID > 0
}
