package clouddetect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const (
	akamaiMetadataBaseURL = "http://169.254.169.254"
	akamaiTokenPath       = "/v1/token"
	akamaiInstancePath    = "/v1/instance"
	akamaiTokenExpirySecs = "60"
)

type akamaiProbe struct {
	metadataBaseURL string
}

func newAkamaiProbe() *akamaiProbe {
	return &akamaiProbe{metadataBaseURL: akamaiMetadataBaseURL}
}

func (p *akamaiProbe) ID() ProviderID {
	return Akamai
}

// Identify checks the metadata service only, Akamai instances carry no
// usable DMI marker.
func (p *akamaiProbe) Identify(ctx context.Context) bool {
	token := p.fetchToken(ctx)
	if token == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.metadataBaseURL+akamaiInstancePath, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Metadata-Token", token)

	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	var metadata struct {
		ID       int64  `json:"id"`
		HostUUID string `json:"host_uuid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		log.Debugf("akamai: failed to decode metadata response: %v", err)
		return false
	}
	return metadata.ID > 0 && metadata.HostUUID != ""
}

func (p *akamaiProbe) fetchToken(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.metadataBaseURL+akamaiTokenPath, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Metadata-Token-Expiry-Seconds", akamaiTokenExpirySecs)

	resp, err := hc.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	token, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debugf("akamai: failed to read token: %v", err)
		return ""
	}
	return string(token)
}
