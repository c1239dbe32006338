package clouddetect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	awsTokenURL    = "http://169.254.169.254/latest/api/token"
	awsMetadataURL = "http://169.254.169.254/latest/dynamic/instance-identity/document"
)

type awsProbe struct {
	tokenURL    string
	metadataURL string
	vendorFiles []string
}

func newAWSProbe() *awsProbe {
	return &awsProbe{
		tokenURL:    awsTokenURL,
		metadataURL: awsMetadataURL,
		vendorFiles: []string{
			"/sys/class/dmi/id/product_version",
			"/sys/class/dmi/id/bios_vendor",
		},
	}
}

func (p *awsProbe) ID() ProviderID {
	return AWS
}

func (p *awsProbe) Identify(ctx context.Context) bool {
	return p.checkVendorFiles() || p.checkMetadataServer(ctx)
}

func (p *awsProbe) checkVendorFiles() bool {
	for _, file := range p.vendorFiles {
		if fileContainsFold(file, "amazon") {
			return true
		}
	}
	return false
}

// checkMetadataServer performs the IMDSv2 handshake: fetch a session token,
// then read the instance identity document with it.
func (p *awsProbe) checkMetadataServer(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.tokenURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-aws-ec2-metadata-token-ttl-seconds", "21600")

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	token, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusOK || len(token) == 0 {
		return false
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, p.metadataURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-aws-ec2-metadata-token", string(token))

	resp, err = hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var doc struct {
		ImageID    string `json:"imageId"`
		InstanceID string `json:"instanceId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		log.Debugf("aws: failed to decode identity document: %v", err)
		return false
	}
	return strings.HasPrefix(doc.ImageID, "ami-") && strings.HasPrefix(doc.InstanceID, "i-")
}
