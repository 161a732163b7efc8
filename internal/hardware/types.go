package hardware

import (
	"fmt"
	"strings"
)

// GpuType classifies a GPU adapter by vendor.
type GpuType string

const (
	GpuNvidia  GpuType = "nvidia"
	GpuAmd     GpuType = "amd"
	GpuIntel   GpuType = "intel"
	GpuUnknown GpuType = "unknown"
	GpuNone    GpuType = "none"
)

// Adapter is a physical or virtual GPU device exposed by the provider.
type Adapter struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      GpuType `json:"type"`
	IsVirtual bool    `json:"is_virtual"`
}

// GPU aggregates the detected adapters.
type GPU struct {
	Detected         bool      `json:"detected"`
	Type             GpuType   `json:"type"`
	Name             string    `json:"name"`
	PrimaryAdapterID string    `json:"primary_adapter_id"`
	Adapters         []Adapter `json:"adapters"`
}

// CPU describes the host processor.
type CPU struct {
	Name         string `json:"name"`
	LogicalCores int    `json:"logical_cores"`
}

// Profile is the full hardware enumeration result. Profiles are replaced
// wholesale on refresh, never merged field by field.
type Profile struct {
	CPU CPU `json:"cpu"`
	GPU GPU `json:"gpu"`
}

// AdapterByID returns the adapter with the given id.
func (p *Profile) AdapterByID(id string) (Adapter, bool) {
	if p == nil {
		return Adapter{}, false
	}
	for _, adapter := range p.GPU.Adapters {
		if adapter.ID == id {
			return adapter, true
		}
	}
	return Adapter{}, false
}

// AdaptersOfType returns the adapters of the given vendor in enumeration
// order. Position within this list is the vendor device index.
func (p *Profile) AdaptersOfType(t GpuType) []Adapter {
	if p == nil {
		return nil
	}
	var matched []Adapter
	for _, adapter := range p.GPU.Adapters {
		if adapter.Type == t {
			matched = append(matched, adapter)
		}
	}
	return matched
}

// PrimaryAdapter returns the adapter recorded as primary.
func (p *Profile) PrimaryAdapter() (Adapter, bool) {
	if p == nil {
		return Adapter{}, false
	}
	return p.AdapterByID(p.GPU.PrimaryAdapterID)
}

var virtualAdapterMarkers = []string{
	"virtual",
	"remote",
	"basic display",
	"microsoft basic",
	"miracast",
	"indirect display",
	"displaylink",
	"rdp",
	"vmware",
	"virtualbox",
	"parallels",
	"citrix",
	"xen",
	"dummy",
}

// IsVirtualAdapterName reports whether an adapter name marks a virtual or
// remote display device that cannot host an encoder session.
func IsVirtualAdapterName(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range virtualAdapterMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ClassifyAdapterName maps an adapter name to its vendor.
func ClassifyAdapterName(name string) GpuType {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, "NVIDIA"),
		strings.Contains(upper, "GEFORCE"),
		strings.Contains(upper, "RTX"),
		strings.Contains(upper, "GTX"):
		return GpuNvidia
	case strings.Contains(upper, "AMD"), strings.Contains(upper, "RADEON"):
		return GpuAmd
	case strings.Contains(upper, "INTEL") &&
		(strings.Contains(upper, "ARC") ||
			strings.Contains(upper, "UHD") ||
			strings.Contains(upper, "HD GRAPHICS") ||
			strings.Contains(upper, "IRIS")):
		return GpuIntel
	default:
		return GpuUnknown
	}
}

// BuildGPU assembles a GPU payload from an ordered adapter name list,
// assigning stable ids by enumeration position and picking the first
// physical adapter as primary.
func BuildGPU(names []string) GPU {
	gpu := GPU{Type: GpuNone}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		adapter := Adapter{
			ID:        fmt.Sprintf("gpu-%d", i),
			Name:      name,
			Type:      ClassifyAdapterName(name),
			IsVirtual: IsVirtualAdapterName(name),
		}
		gpu.Adapters = append(gpu.Adapters, adapter)
		if gpu.PrimaryAdapterID == "" && !adapter.IsVirtual {
			gpu.PrimaryAdapterID = adapter.ID
			gpu.Name = adapter.Name
			gpu.Type = adapter.Type
		}
	}
	gpu.Detected = gpu.PrimaryAdapterID != ""
	if gpu.Detected && gpu.Type == GpuNone {
		gpu.Type = GpuUnknown
	}
	return gpu
}
