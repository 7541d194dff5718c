package raster

import (
	"sync"
	"testing"
)

// blendReference mirrors the closed-form per-mode formulas.
var blendReference = map[BlendMode]func(a, b int) int{
	BlendMix25:  func(a, b int) int { return (a + 2*b) / 3 },
	BlendMix50:  func(a, b int) int { return (a + b) / 2 },
	BlendMix75:  func(a, b int) int { return (2*a + b) / 3 },
	BlendAdd:    func(a, b int) int { return min(a+b, 255) },
	BlendSub:    func(a, b int) int { return max(a-b, 0) },
	BlendMod:    func(a, b int) int { return a * b / 255 },
	BlendCustom: func(a, b int) int { return a },
}

func TestBlendTableFormulas(t *testing.T) {
	if !ActivateBlendTables() {
		t.Fatal("ActivateBlendTables failed")
	}
	defer DeactivateBlendTables()

	for mode, ref := range blendReference {
		table := SelectBlendTable(mode)
		if table == nil {
			t.Fatalf("SelectBlendTable(%v) = nil while active", mode)
		}
		if len(table) != 1<<16 {
			t.Fatalf("table %v has %d entries, want 65536", mode, len(table))
		}
		for a := 0; a < 256; a++ {
			for b := 0; b < 256; b++ {
				got, want := int(table[a<<8|b]), ref(a, b)
				if got != want {
					t.Fatalf("%v[(%d<<8)|%d] = %d, want %d", mode, a, b, got, want)
				}
			}
		}
	}
}

func TestBlendAddSaturates(t *testing.T) {
	ActivateBlendTables()
	defer DeactivateBlendTables()

	table := SelectBlendTable(BlendAdd)
	if got := table[(200<<8)|100]; got != 255 {
		t.Errorf("Add[(200<<8)|100] = %d, want 255", got)
	}
}

func TestBlendTableRefCount(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !ActivateBlendTables() {
			t.Fatalf("activation %d failed", i+1)
		}
	}
	DeactivateBlendTables()
	DeactivateBlendTables()

	// One activation outstanding: tables must still be populated.
	table := SelectBlendTable(BlendMod)
	if table == nil {
		t.Fatal("tables released while an activation was outstanding")
	}
	if got := table[(128<<8)|128]; got != 128*128/255 {
		t.Errorf("Mod[(128<<8)|128] = %d, want %d", got, 128*128/255)
	}

	// The last deactivation releases them.
	DeactivateBlendTables()
	if SelectBlendTable(BlendMod) != nil {
		t.Error("tables survived the final deactivation")
	}

	// Extra deactivations floor at zero.
	DeactivateBlendTables()
	if !ActivateBlendTables() {
		t.Fatal("reactivation failed")
	}
	if SelectBlendTable(BlendMod) == nil {
		t.Error("reactivation did not rebuild the tables")
	}
	DeactivateBlendTables()
}

func TestSelectBlendTableInactive(t *testing.T) {
	if SelectBlendTable(BlendAdd) != nil {
		t.Error("SelectBlendTable returned a table while inactive")
	}

	ActivateBlendTables()
	defer DeactivateBlendTables()
	if SelectBlendTable(BlendNone) != nil {
		t.Error("BlendNone has a table")
	}
	if SelectBlendTable(BlendMode(99)) != nil {
		t.Error("unknown mode has a table")
	}
}

func TestCustomBlendFunction(t *testing.T) {
	ActivateBlendTables()

	table := SelectBlendTable(BlendCustom)
	if got := table[(37<<8)|200]; got != 37 {
		t.Errorf("default Custom[(37<<8)|200] = %d, want identity 37", got)
	}

	SetCustomBlendFunction(func(src, dst uint8) uint8 {
		return src/2 + dst/2
	})
	table = SelectBlendTable(BlendCustom)
	if got := table[(100<<8)|50]; got != 75 {
		t.Errorf("Custom[(100<<8)|50] = %d, want 75", got)
	}

	// The function is remembered across activation cycles.
	DeactivateBlendTables()
	ActivateBlendTables()
	table = SelectBlendTable(BlendCustom)
	if got := table[(100<<8)|50]; got != 75 {
		t.Errorf("Custom after rebuild = %d, want 75", got)
	}

	// nil restores the identity passthrough.
	SetCustomBlendFunction(nil)
	table = SelectBlendTable(BlendCustom)
	if got := table[(100<<8)|50]; got != 100 {
		t.Errorf("Custom after reset = %d, want identity 100", got)
	}

	DeactivateBlendTables()
}

func TestConcurrentActivation(t *testing.T) {
	const workers = 8
	const rounds = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if !ActivateBlendTables() {
					t.Error("ActivateBlendTables failed")
					return
				}
				table := SelectBlendTable(BlendAdd)
				if table == nil || table[(1<<8)|2] != 3 {
					t.Error("table invalid while activation held")
					DeactivateBlendTables()
					return
				}
				DeactivateBlendTables()
			}
		}()
	}
	wg.Wait()

	if SelectBlendTable(BlendAdd) != nil {
		t.Error("tables leaked after balanced activations")
	}
}

func TestBlendModeString(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want string
	}{
		{BlendNone, "None"},
		{BlendMix25, "Mix25"},
		{BlendMix50, "Mix50"},
		{BlendMix75, "Mix75"},
		{BlendAdd, "Add"},
		{BlendSub, "Sub"},
		{BlendMod, "Mod"},
		{BlendCustom, "Custom"},
		{BlendMode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("BlendMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
