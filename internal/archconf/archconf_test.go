package archconf

import "testing"

func TestLoadYAMLSingleArch(t *testing.T) {
	doc := []byte(`
arch: amd64
addrSize: 8
regSize: 8
intSize: 8
registers: [AX, BX, CX, DX]
hasGReg: true
gpRegMask: 15
optimize: true
`)
	r := NewRegistry()
	if err := r.LoadYAML(doc); err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	info, ok := r.Lookup("amd64")
	if !ok {
		t.Fatal("expected amd64 to be registered")
	}
	if info.AddrSize != 8 || info.RegSize != 8 {
		t.Errorf("unexpected sizes: %+v", info)
	}
	if len(info.Registers) != 4 {
		t.Errorf("expected 4 registers, got %d", len(info.Registers))
	}
	if !info.HasGReg || !info.Optimize {
		t.Errorf("expected hasGReg and optimize true, got %+v", info)
	}
}

func TestLoadYAMLMultipleArchs(t *testing.T) {
	doc := []byte(`
- arch: amd64
  addrSize: 8
- arch: arm64
  addrSize: 8
`)
	r := NewRegistry()
	if err := r.LoadYAML(doc); err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(r.Names()) != 2 {
		t.Fatalf("expected 2 archs, got %d: %v", len(r.Names()), r.Names())
	}
}

func TestResolveUnknownArch(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("riscv64")
	if err == nil {
		t.Fatal("expected an error for an unregistered architecture")
	}
	if _, ok := err.(*ErrUnknownArch); !ok {
		t.Fatalf("expected *ErrUnknownArch, got %T", err)
	}
}

func TestResolveKnownArch(t *testing.T) {
	r := NewRegistry()
	r.Register(ArchInfo{Arch: "wasm32", AddrSize: 4})
	cfg, err := r.Resolve("wasm32")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Arch.AddrSize != 4 {
		t.Errorf("AddrSize = %d, want 4", cfg.Arch.AddrSize)
	}
}
