package encoders

import (
	"dreamcodec/internal/hardware"
)

// PreferenceCPU forces software encoding regardless of detected GPUs.
// PreferenceAuto follows the hardware-reported primary adapter. Any
// other preference value names an adapter id from the hardware profile.
const (
	PreferenceCPU  = "cpu"
	PreferenceAuto = "auto"
)

// classForVendor maps a detected GPU vendor to its encoder class.
func classForVendor(vendor hardware.GpuType) (Type, bool) {
	switch vendor {
	case hardware.GpuNvidia:
		return GpuNvidia, true
	case hardware.GpuAmd:
		return GpuAmd, true
	case hardware.GpuIntel:
		return GpuIntel, true
	default:
		return "", false
	}
}

// vendorForEncoder maps an index-requiring encoder name back to the GPU
// vendor it drives.
func vendorForEncoder(name string) (hardware.GpuType, bool) {
	encType, ok := Classify(name)
	if !ok {
		return hardware.GpuNone, false
	}
	switch encType {
	case GpuNvidia:
		return hardware.GpuNvidia, true
	case GpuAmd:
		return hardware.GpuAmd, true
	case GpuIntel:
		return hardware.GpuIntel, true
	default:
		return hardware.GpuNone, false
	}
}

// ResolvePreferredGpuType turns a user GPU preference into a concrete
// vendor. "cpu" and unresolvable selections yield ok=false.
func ResolvePreferredGpuType(preference string, profile *hardware.Profile) (hardware.GpuType, bool) {
	switch preference {
	case PreferenceCPU:
		return hardware.GpuNone, false
	case PreferenceAuto, "":
		if profile == nil || !profile.GPU.Detected {
			return hardware.GpuNone, false
		}
		switch profile.GPU.Type {
		case hardware.GpuNvidia, hardware.GpuAmd, hardware.GpuIntel:
			return profile.GPU.Type, true
		}
		return hardware.GpuNone, false
	default:
		adapter, ok := profile.AdapterByID(preference)
		if !ok {
			return hardware.GpuNone, false
		}
		switch adapter.Type {
		case hardware.GpuNvidia, hardware.GpuAmd, hardware.GpuIntel:
			return adapter.Type, true
		}
		return hardware.GpuNone, false
	}
}

// Filter reduces the probed encoder set to what the preference and the
// detected hardware can use. A "cpu" preference keeps only CPU-class
// encoders when any exist. Other preferences keep every CPU-class
// encoder plus the preferred vendor's encoders. The result is never
// empty while the input is non-empty.
func Filter(all []Encoder, profile *hardware.Profile, preference string) []Encoder {
	if len(all) == 0 {
		return nil
	}

	cpuClass := func() []Encoder {
		var out []Encoder
		for _, e := range all {
			if e.IsCPUClass() {
				out = append(out, e)
			}
		}
		return out
	}

	if preference == PreferenceCPU {
		if cpu := cpuClass(); len(cpu) > 0 {
			return cpu
		}
		return all
	}

	vendor, ok := ResolvePreferredGpuType(preference, profile)
	if !ok {
		if cpu := cpuClass(); len(cpu) > 0 {
			return cpu
		}
		return all
	}

	vendorClass, _ := classForVendor(vendor)
	var out []Encoder
	for _, e := range all {
		if e.IsCPUClass() || e.Type == vendorClass {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return cpuClass()
	}
	return out
}

// PickDefault chooses the default encoder from a filtered set. The
// tie-break order prefers the preferred vendor's H.264 encoder, then any
// encoder of that vendor, then libx264, then any CPU-class encoder, then
// the first entry. ok is false only for an empty set.
func PickDefault(filtered []Encoder, preferred hardware.GpuType) (Encoder, bool) {
	if len(filtered) == 0 {
		return Encoder{}, false
	}

	if vendorClass, ok := classForVendor(preferred); ok {
		for _, e := range filtered {
			if e.Type == vendorClass && e.Codec == "h264" {
				return e, true
			}
		}
		for _, e := range filtered {
			if e.Type == vendorClass {
				return e, true
			}
		}
	}
	for _, e := range filtered {
		if e.Name == SoftwareH264 {
			return e, true
		}
	}
	for _, e := range filtered {
		if e.IsCPUClass() {
			return e, true
		}
	}
	return filtered[0], true
}

// ResolveDeviceIndex produces the GPU device index an index-requiring
// encoder should target: the position of the selected adapter among the
// adapters of that encoder's vendor. "auto" follows the primary adapter
// and defaults to device 0. nil means no index applies.
func ResolveDeviceIndex(profile *hardware.Profile, preference, encoderName string) *int {
	if preference == PreferenceCPU || !RequiresDeviceIndex(encoderName) {
		return nil
	}
	vendor, ok := vendorForEncoder(encoderName)
	if !ok {
		return nil
	}

	sameVendor := profile.AdaptersOfType(vendor)

	if preference == PreferenceAuto || preference == "" {
		if primary, ok := profile.PrimaryAdapter(); ok {
			for i, adapter := range sameVendor {
				if adapter.ID == primary.ID {
					return intPtr(i)
				}
			}
		}
		return intPtr(0)
	}

	adapter, ok := profile.AdapterByID(preference)
	if !ok || adapter.Type != vendor {
		return nil
	}
	for i, candidate := range sameVendor {
		if candidate.ID == adapter.ID {
			return intPtr(i)
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }
