package encoders_test

import (
	"reflect"
	"testing"

	"dreamcodec/internal/encoders"
	"dreamcodec/internal/hardware"
)

func nvidiaProfile() *hardware.Profile {
	return &hardware.Profile{
		CPU: hardware.CPU{Name: "test", LogicalCores: 8},
		GPU: hardware.BuildGPU([]string{"NVIDIA GeForce RTX 4070"}),
	}
}

func mixedSet() []encoders.Encoder {
	return []encoders.Encoder{
		{Name: "libx264", Codec: "h264", Type: encoders.Cpu},
		{Name: "libx265", Codec: "hevc", Type: encoders.Cpu},
		{Name: "prores_ks", Codec: "prores", Type: encoders.Adobe},
		{Name: "h264_nvenc", Codec: "h264", Type: encoders.GpuNvidia},
		{Name: "hevc_nvenc", Codec: "hevc", Type: encoders.GpuNvidia},
		{Name: "h264_amf", Codec: "h264", Type: encoders.GpuAmd},
		{Name: "h264_qsv", Codec: "h264", Type: encoders.GpuIntel},
	}
}

func TestFilterCPUPreferenceKeepsCPUClassOnly(t *testing.T) {
	filtered := encoders.Filter(mixedSet(), nvidiaProfile(), encoders.PreferenceCPU)
	if len(filtered) == 0 {
		t.Fatal("expected a non-empty set")
	}
	for _, e := range filtered {
		if !e.IsCPUClass() {
			t.Errorf("GPU encoder %q leaked through cpu preference", e.Name)
		}
	}
}

func TestFilterCPUPreferenceFallsBackWhenNoCPUEncoder(t *testing.T) {
	gpuOnly := []encoders.Encoder{
		{Name: "h264_nvenc", Codec: "h264", Type: encoders.GpuNvidia},
	}
	filtered := encoders.Filter(gpuOnly, nvidiaProfile(), encoders.PreferenceCPU)
	if len(filtered) != 1 {
		t.Fatalf("expected fallback to the unfiltered list, got %d entries", len(filtered))
	}
}

func TestFilterAutoKeepsCPUPlusPrimaryVendor(t *testing.T) {
	filtered := encoders.Filter(mixedSet(), nvidiaProfile(), encoders.PreferenceAuto)
	for _, e := range filtered {
		if e.Type == encoders.GpuAmd || e.Type == encoders.GpuIntel {
			t.Errorf("foreign vendor encoder %q in filtered set", e.Name)
		}
	}
	var sawNvidia, sawCPU bool
	for _, e := range filtered {
		sawNvidia = sawNvidia || e.Type == encoders.GpuNvidia
		sawCPU = sawCPU || e.Type == encoders.Cpu
	}
	if !sawNvidia || !sawCPU {
		t.Fatalf("expected CPU and NVIDIA encoders, got %+v", filtered)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	if got := encoders.Filter(nil, nvidiaProfile(), encoders.PreferenceAuto); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestResolvePreferredGpuType(t *testing.T) {
	profile := nvidiaProfile()

	if _, ok := encoders.ResolvePreferredGpuType(encoders.PreferenceCPU, profile); ok {
		t.Error("cpu preference must not resolve a vendor")
	}
	if vendor, ok := encoders.ResolvePreferredGpuType(encoders.PreferenceAuto, profile); !ok || vendor != hardware.GpuNvidia {
		t.Errorf("auto = (%q, %v), want (nvidia, true)", vendor, ok)
	}
	if vendor, ok := encoders.ResolvePreferredGpuType("gpu-0", profile); !ok || vendor != hardware.GpuNvidia {
		t.Errorf("explicit adapter = (%q, %v), want (nvidia, true)", vendor, ok)
	}
	if _, ok := encoders.ResolvePreferredGpuType("gpu-9", profile); ok {
		t.Error("unknown adapter id must not resolve")
	}
	if _, ok := encoders.ResolvePreferredGpuType(encoders.PreferenceAuto, nil); ok {
		t.Error("nil profile must not resolve")
	}
}

func TestPickDefaultLadder(t *testing.T) {
	set := mixedSet()

	// Preferred vendor's h264 encoder wins.
	if e, ok := encoders.PickDefault(set, hardware.GpuNvidia); !ok || e.Name != "h264_nvenc" {
		t.Fatalf("nvidia pick = %+v, want h264_nvenc", e)
	}

	// Without a vendor h264 entry the vendor's other encoder wins.
	hevcOnly := []encoders.Encoder{
		{Name: "libx264", Codec: "h264", Type: encoders.Cpu},
		{Name: "hevc_nvenc", Codec: "hevc", Type: encoders.GpuNvidia},
	}
	if e, _ := encoders.PickDefault(hevcOnly, hardware.GpuNvidia); e.Name != "hevc_nvenc" {
		t.Fatalf("expected hevc_nvenc, got %q", e.Name)
	}

	// No preferred vendor falls through to libx264.
	if e, _ := encoders.PickDefault(set, hardware.GpuNone); e.Name != "libx264" {
		t.Fatalf("expected libx264, got %q", e.Name)
	}

	// Without libx264, any CPU-class encoder.
	noX264 := []encoders.Encoder{
		{Name: "h264_amf", Codec: "h264", Type: encoders.GpuAmd},
		{Name: "prores_ks", Codec: "prores", Type: encoders.Adobe},
	}
	if e, _ := encoders.PickDefault(noX264, hardware.GpuNone); e.Name != "prores_ks" {
		t.Fatalf("expected prores_ks, got %q", e.Name)
	}

	// Last resort is the first entry.
	gpuOnly := []encoders.Encoder{
		{Name: "h264_qsv", Codec: "h264", Type: encoders.GpuIntel},
	}
	if e, _ := encoders.PickDefault(gpuOnly, hardware.GpuNone); e.Name != "h264_qsv" {
		t.Fatalf("expected h264_qsv, got %q", e.Name)
	}

	if _, ok := encoders.PickDefault(nil, hardware.GpuNvidia); ok {
		t.Fatal("empty set must not pick")
	}
}

func TestPickDefaultDeterministic(t *testing.T) {
	set := mixedSet()
	first, _ := encoders.PickDefault(set, hardware.GpuNvidia)
	for i := 0; i < 5; i++ {
		again, _ := encoders.PickDefault(set, hardware.GpuNvidia)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("pick changed between calls: %+v vs %+v", first, again)
		}
	}
}

func TestResolveDeviceIndexAutoPrimary(t *testing.T) {
	// One NVIDIA adapter as primary; auto preference on an NVENC encoder
	// resolves device 0.
	idx := encoders.ResolveDeviceIndex(nvidiaProfile(), encoders.PreferenceAuto, "h264_nvenc")
	if idx == nil || *idx != 0 {
		t.Fatalf("expected index 0, got %v", idx)
	}
}

func TestResolveDeviceIndexSecondVendorAdapter(t *testing.T) {
	profile := &hardware.Profile{
		GPU: hardware.BuildGPU([]string{
			"NVIDIA GeForce RTX 4070",
			"Intel(R) UHD Graphics 770",
			"NVIDIA GeForce GTX 1060",
		}),
	}
	// gpu-2 is the second NVIDIA adapter, so its vendor index is 1.
	idx := encoders.ResolveDeviceIndex(profile, "gpu-2", "hevc_nvenc")
	if idx == nil || *idx != 1 {
		t.Fatalf("expected index 1, got %v", idx)
	}
}

func TestResolveDeviceIndexNoIndexCases(t *testing.T) {
	profile := nvidiaProfile()

	if idx := encoders.ResolveDeviceIndex(profile, encoders.PreferenceCPU, "h264_nvenc"); idx != nil {
		t.Errorf("cpu preference produced index %d", *idx)
	}
	if idx := encoders.ResolveDeviceIndex(profile, encoders.PreferenceAuto, "libx264"); idx != nil {
		t.Errorf("software encoder produced index %d", *idx)
	}
	// Explicit adapter of the wrong vendor yields no index.
	mixed := &hardware.Profile{
		GPU: hardware.BuildGPU([]string{
			"NVIDIA GeForce RTX 4070",
			"Intel(R) UHD Graphics 770",
		}),
	}
	if idx := encoders.ResolveDeviceIndex(mixed, "gpu-1", "h264_nvenc"); idx != nil {
		t.Errorf("mismatched adapter produced index %d", *idx)
	}
}
