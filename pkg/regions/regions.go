package regions

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownRegion is returned when the region has no configuration file.
var ErrUnknownRegion = errors.New("unknown region")

// configFilenames maps a region code to the regional configuration
// template shipped with the packet-forwarder tooling. The table is fixed
// at build time; a region missing here is a deployment defect.
var configFilenames = map[string]string{
	"AS923_1": "AS923_1-global_conf.json",
	"AS923_2": "AS923_2-global_conf.json",
	"AS923_3": "AS923_3-global_conf.json",
	"AS923_4": "AS923_4-global_conf.json",
	"AU915":   "AU915-global_conf.json",
	"CN470":   "CN470-global_conf.json",
	"EU433":   "EU433-global_conf.json",
	"EU868":   "EU868-global_conf.json",
	"IN865":   "IN865-global_conf.json",
	"KR920":   "KR920-global_conf.json",
	"RU864":   "RU864-global_conf.json",
	"US915":   "US915-global_conf.json",
}

// Filename returns the configuration filename for a region code.
func Filename(region string) (string, error) {
	name, ok := configFilenames[region]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return name, nil
}

// Supported returns the known region codes in sorted order.
func Supported() []string {
	codes := make([]string, 0, len(configFilenames))
	for code := range configFilenames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
