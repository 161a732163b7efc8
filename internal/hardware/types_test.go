package hardware_test

import (
	"testing"

	"dreamcodec/internal/hardware"
)

func TestClassifyAdapterName(t *testing.T) {
	cases := []struct {
		name string
		want hardware.GpuType
	}{
		{"NVIDIA GeForce RTX 4070", hardware.GpuNvidia},
		{"GeForce GTX 1060 6GB", hardware.GpuNvidia},
		{"AMD Radeon RX 6800 XT", hardware.GpuAmd},
		{"Intel(R) UHD Graphics 770", hardware.GpuIntel},
		{"Intel(R) Arc(TM) A770 Graphics", hardware.GpuIntel},
		{"Matrox G200eR2", hardware.GpuUnknown},
	}
	for _, tc := range cases {
		if got := hardware.ClassifyAdapterName(tc.name); got != tc.want {
			t.Errorf("ClassifyAdapterName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIsVirtualAdapterName(t *testing.T) {
	virtual := []string{
		"Microsoft Basic Display Adapter",
		"VMware SVGA 3D",
		"DisplayLink USB Device",
		"Citrix Indirect Display Adapter",
	}
	for _, name := range virtual {
		if !hardware.IsVirtualAdapterName(name) {
			t.Errorf("expected %q to be virtual", name)
		}
	}
	if hardware.IsVirtualAdapterName("NVIDIA GeForce RTX 4070") {
		t.Error("physical adapter misclassified as virtual")
	}
}

func TestBuildGPUPicksFirstPhysicalPrimary(t *testing.T) {
	gpu := hardware.BuildGPU([]string{
		"Microsoft Basic Display Adapter",
		"NVIDIA GeForce RTX 4070",
		"AMD Radeon RX 6800 XT",
	})

	if !gpu.Detected {
		t.Fatal("expected detection")
	}
	if gpu.PrimaryAdapterID != "gpu-1" {
		t.Fatalf("expected primary gpu-1, got %q", gpu.PrimaryAdapterID)
	}
	if gpu.Type != hardware.GpuNvidia {
		t.Fatalf("expected nvidia primary type, got %q", gpu.Type)
	}
	if len(gpu.Adapters) != 3 {
		t.Fatalf("expected 3 adapters, got %d", len(gpu.Adapters))
	}
	if !gpu.Adapters[0].IsVirtual {
		t.Error("expected basic display adapter flagged virtual")
	}
}

func TestBuildGPUNoAdapters(t *testing.T) {
	gpu := hardware.BuildGPU(nil)
	if gpu.Detected {
		t.Fatal("expected no detection")
	}
	if gpu.Type != hardware.GpuNone {
		t.Fatalf("expected type none, got %q", gpu.Type)
	}
}

func TestAdaptersOfTypePreservesOrder(t *testing.T) {
	profile := &hardware.Profile{
		GPU: hardware.BuildGPU([]string{
			"NVIDIA GeForce RTX 4070",
			"AMD Radeon RX 6800 XT",
			"NVIDIA GeForce GTX 1060",
		}),
	}
	nvidia := profile.AdaptersOfType(hardware.GpuNvidia)
	if len(nvidia) != 2 {
		t.Fatalf("expected 2 nvidia adapters, got %d", len(nvidia))
	}
	if nvidia[0].ID != "gpu-0" || nvidia[1].ID != "gpu-2" {
		t.Fatalf("unexpected order: %q, %q", nvidia[0].ID, nvidia[1].ID)
	}
}
