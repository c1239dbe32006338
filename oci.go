package clouddetect

import (
	"context"
	"net/http"
)

const (
	ociMetadataV1URL = "http://169.254.169.254/opc/v1/instance/"
	ociMetadataV2URL = "http://169.254.169.254/opc/v2/instance/"
	ociVendorFile    = "/sys/class/dmi/id/chassis_asset_tag"
)

type ociProbe struct {
	metadataV1URL string
	metadataV2URL string
	vendorFile    string
}

func newOCIProbe() *ociProbe {
	return &ociProbe{
		metadataV1URL: ociMetadataV1URL,
		metadataV2URL: ociMetadataV2URL,
		vendorFile:    ociVendorFile,
	}
}

func (p *ociProbe) ID() ProviderID {
	return OCI
}

func (p *ociProbe) Identify(ctx context.Context) bool {
	return fileContains(p.vendorFile, "OracleCloud") || p.checkMetadataServer(ctx)
}

// checkMetadataServer queries both IMDS generations in parallel, older
// images only serve v1.
func (p *ociProbe) checkMetadataServer(ctx context.Context) bool {
	v1Result := make(chan bool, 1)
	v2Result := make(chan bool, 1)

	go func() {
		v1Result <- p.checkIMDS(ctx, p.metadataV1URL)
	}()
	go func() {
		v2Result <- p.checkIMDS(ctx, p.metadataV2URL)
	}()

	v1, v2 := <-v1Result, <-v2Result
	return v1 || v2
}

func (p *ociProbe) checkIMDS(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer Oracle")

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
