package clouddetect

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const (
	azureMetadataURL = "http://169.254.169.254/metadata/instance?api-version=2021-02-01"
	azureVendorFile  = "/sys/class/dmi/id/sys_vendor"
)

type azureProbe struct {
	metadataURL string
	vendorFile  string
}

func newAzureProbe() *azureProbe {
	return &azureProbe{
		metadataURL: azureMetadataURL,
		vendorFile:  azureVendorFile,
	}
}

func (p *azureProbe) ID() ProviderID {
	return Azure
}

func (p *azureProbe) Identify(ctx context.Context) bool {
	return fileContains(p.vendorFile, "Microsoft Corporation") || p.checkMetadataServer(ctx)
}

func (p *azureProbe) checkMetadataServer(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.metadataURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Metadata", "true")

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var metadata struct {
		Compute struct {
			VMID string `json:"vmId"`
		} `json:"compute"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		log.Debugf("azure: failed to decode metadata response: %v", err)
		return false
	}
	return metadata.Compute.VMID != ""
}
