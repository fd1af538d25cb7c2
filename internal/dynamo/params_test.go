package dynamo

import "testing"

func TestProblem_GetParams(t *testing.T) {
	p := DefaultProblem()
	params := p.GetParams()

	if len(params) != len(ParamNames()) {
		t.Fatalf("expected %d params, got %d", len(ParamNames()), len(params))
	}
	if params["c"] != DefaultC || params["seed1"] != DefaultSeed1 {
		t.Errorf("unexpected params %v", params)
	}
}

func TestProblem_SetParam(t *testing.T) {
	p := DefaultProblem()

	for _, name := range ParamNames() {
		if err := p.SetParam(name, 7); err != nil {
			t.Errorf("SetParam(%q) failed: %v", name, err)
		}
	}
	for name, v := range p.GetParams() {
		if v != 7 {
			t.Errorf("%s = %v, want 7", name, v)
		}
	}

	if err := p.SetParam("gravity", 9.81); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestProblem_SetParams(t *testing.T) {
	p := DefaultProblem()
	if err := p.SetParams(map[string]float64{"c": 0.05, "yf": 12}); err != nil {
		t.Fatal(err)
	}
	if p.C != 0.05 || p.YF != 12 || p.Y0 != DefaultY0 {
		t.Errorf("unexpected problem %+v", p)
	}

	if err := p.SetParams(map[string]float64{"bogus": 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestParamNamesIsCopy(t *testing.T) {
	names := ParamNames()
	names[0] = "changed"
	if ParamNames()[0] != "c" {
		t.Error("ParamNames exposed internal slice")
	}
}
