package clouddetect

import (
	"path/filepath"
	"testing"
)

// unreachableURL refuses connections immediately, standing in for an absent
// metadata service.
const unreachableURL = "http://127.0.0.1:1"

// offlineProbes returns every built-in probe pointed at endpoints and vendor
// files that cannot match, so tests can seed exactly one of them.
func offlineProbes(t *testing.T) []Probe {
	t.Helper()
	dir := t.TempDir()
	missing := func(name string) string {
		return filepath.Join(dir, name)
	}

	return []Probe{
		&alibabaProbe{metadataURL: unreachableURL, vendorFile: missing("alibaba_product_name")},
		&awsProbe{
			tokenURL:    unreachableURL,
			metadataURL: unreachableURL,
			vendorFiles: []string{missing("aws_product_version"), missing("aws_bios_vendor")},
		},
		&azureProbe{metadataURL: unreachableURL, vendorFile: missing("azure_sys_vendor")},
		&digitalOceanProbe{metadataURL: unreachableURL, vendorFile: missing("do_sys_vendor")},
		&gcpProbe{metadataURL: unreachableURL, vendorFile: missing("gcp_product_name")},
		&ociProbe{
			metadataV1URL: unreachableURL,
			metadataV2URL: unreachableURL,
			vendorFile:    missing("oci_chassis_asset_tag"),
		},
		&openStackProbe{metadataURL: unreachableURL},
		&vultrProbe{metadataURL: unreachableURL, vendorFile: missing("vultr_sys_vendor")},
		&akamaiProbe{metadataBaseURL: unreachableURL},
	}
}
