package colorimetry

import "testing"

func TestDatasets(t *testing.T) {
	cmfs := CIE1931Observer()
	if cmfs.Len() != 85 {
		t.Fatalf("observer has %d samples, want 85", cmfs.Len())
	}
	if cmfs.Shape() != DatasetShape {
		t.Fatalf("observer shape %v != dataset shape %v", cmfs.Shape(), DatasetShape)
	}

	// y-bar peaks at exactly 1 at 555 nm.
	wl := cmfs.Shape().Wavelengths()
	for i, y := range cmfs.YBar() {
		if y > 1 {
			t.Fatalf("y-bar exceeds 1 at %g nm", wl[i])
		}
		if y == 1 && wl[i] != 555 {
			t.Fatalf("y-bar peak at %g nm, want 555", wl[i])
		}
	}

	d65 := D65()
	if d65.Shape() != DatasetShape {
		t.Fatalf("D65 shape %v != dataset shape %v", d65.Shape(), DatasetShape)
	}
	// The table is normalised to 100 at 560 nm.
	if v := d65.Values()[40]; v != 100 {
		t.Fatalf("D65 at 560 nm is %g, want 100", v)
	}

	// Accessors hand out the same immutable instances.
	if CIE1931Observer() != cmfs || D65() != d65 {
		t.Fatal("dataset accessors are not singletons")
	}
}
