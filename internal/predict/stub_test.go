package predict

import "testing"

func TestStubPredictGame(t *testing.T) {
	out, err := StubModel{}.PredictGame(nil)
	if err != nil {
		t.Fatalf("PredictGame: %v", err)
	}
	if out.HomeScore != 24 || out.AwayScore != 21 {
		t.Errorf("scores = %v-%v, want 24-21", out.HomeScore, out.AwayScore)
	}
	if out.Confidence != 0.72 {
		t.Errorf("confidence = %v, want 0.72", out.Confidence)
	}
}

func TestStubPredictPlayerStats(t *testing.T) {
	cases := []struct {
		position string
		wantKey  string
	}{
		{"QB", "passing_yards"},
		{"RB", "rushing_yards"},
		{"WR", "receiving_yards"},
		{"TE", "receptions"},
		{"K", "field_goals"},
		{"LB", "tackles"},
		{"", "tackles"},
	}
	for _, tc := range cases {
		stats, err := StubModel{}.PredictPlayerStats(nil, tc.position)
		if err != nil {
			t.Fatalf("%s: %v", tc.position, err)
		}
		if _, ok := stats[tc.wantKey]; !ok {
			t.Errorf("%s: expected key %q in %v", tc.position, tc.wantKey, stats)
		}
	}
}

func TestNewFallsBackToStub(t *testing.T) {
	m := New("/nonexistent/model.onnx")
	if m.Name() != "stub" {
		t.Errorf("model = %s, want stub fallback", m.Name())
	}
	m = New("")
	if m.Name() != "stub" {
		t.Errorf("model for empty path = %s, want stub fallback", m.Name())
	}
}
