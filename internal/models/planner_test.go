package models

import "testing"

func TestScrewSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		spec    ScrewSpec
		wantErr bool
	}{
		{"zero dimensions mean unspecified", ScrewSpec{Name: "s"}, false},
		{"typical screw", ScrewSpec{Name: "L4 left", Radius: 3.5, Length: 40}, false},
		{"negative radius", ScrewSpec{Name: "s", Radius: -1}, true},
		{"negative length", ScrewSpec{Name: "s", Length: -40}, true},
	}

	for _, tc := range cases {
		err := tc.spec.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestDefaultViewportIDs(t *testing.T) {
	ids := DefaultViewportIDs()
	expected := []string{ViewportAxial, ViewportSagittal, ViewportCoronal}

	if len(ids) != len(expected) {
		t.Fatalf("expected %d viewports, got %d", len(expected), len(ids))
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("viewport %d: expected %s, got %s", i, expected[i], ids[i])
		}
	}
}
