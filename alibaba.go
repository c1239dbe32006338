package clouddetect

import (
	"context"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	alibabaMetadataURL = "http://100.100.100.200/latest/meta-data/latest/meta-data/instance/virtualization-solution"
	alibabaVendorFile  = "/sys/class/dmi/id/product_name"
)

type alibabaProbe struct {
	metadataURL string
	vendorFile  string
}

func newAlibabaProbe() *alibabaProbe {
	return &alibabaProbe{
		metadataURL: alibabaMetadataURL,
		vendorFile:  alibabaVendorFile,
	}
}

func (p *alibabaProbe) ID() ProviderID {
	return Alibaba
}

func (p *alibabaProbe) Identify(ctx context.Context) bool {
	return fileContains(p.vendorFile, "Alibaba Cloud ECS") || p.checkMetadataServer(ctx)
}

func (p *alibabaProbe) checkMetadataServer(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.metadataURL, nil)
	if err != nil {
		return false
	}

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debugf("alibaba: failed to read metadata response: %v", err)
		return false
	}
	return strings.Contains(string(body), "ECS Virt")
}
