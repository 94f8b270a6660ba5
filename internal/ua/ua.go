// internal/ua/ua.go
//
// User-Agent classification for analytics enrichment.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.  The analytics
// recorder only needs a coarse device class, the browser family, and a bot
// flag; swapping parsers later touches only this file.
package ua

import (
	surfer "github.com/avct/uasurfer"
)

// Info carries the attributes the analytics recorder stores per event.
//
// Device is one of: "desktop", "mobile", "tablet", or "other".
type Info struct {
	Browser string
	OS      string
	Device  string
	IsBot   bool
}

// Parse converts a raw User-Agent header into an Info struct.  After the
// first call the underlying library reuses internal buffers, so Parse
// allocates only on rarely seen strings.
func Parse(raw string) Info {
	u := surfer.Parse(raw)

	info := Info{
		Browser: u.Browser.Name.String(),
		OS:      u.OS.Name.String(),
		IsBot:   u.IsBot(),
	}

	switch u.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "desktop"
	case surfer.DeviceTablet:
		info.Device = "tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "mobile"
	default:
		info.Device = "other"
	}

	return info
}
