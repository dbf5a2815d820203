package encoding

import (
	"errors"
	"testing"
)

func TestEncodeContextShape(t *testing.T) {
	vec, err := EncodeContext(Record{})
	if err != nil {
		t.Fatalf("EncodeContext: %v", err)
	}
	if len(vec) != ContextFeatures {
		t.Errorf("length = %d, want %d", len(vec), ContextFeatures)
	}
}

func TestEncodeContextBasicFields(t *testing.T) {
	vec, _ := EncodeContext(Record{
		"temperature": 72, "dome": true, "week": 1, "season": 2024,
	})
	if vec[0] != 72 {
		t.Errorf("temperature = %v, want 72", vec[0])
	}
	if vec[1] != 1 {
		t.Errorf("dome flag = %v, want 1", vec[1])
	}
	if vec[3] != 1 {
		t.Errorf("week = %v, want 1", vec[3])
	}
	if vec[4] != 2024 {
		t.Errorf("season = %v, want 2024", vec[4])
	}
	// No weather or surface keywords present.
	for i := 10; i <= 16; i++ {
		if vec[i] != 0 {
			t.Errorf("keyword flag [%d] = %v, want 0", i, vec[i])
		}
	}
}

func TestEncodeContextRecordsAndPlayoff(t *testing.T) {
	vec, _ := EncodeContext(Record{
		"home_wins": 11, "home_losses": 6,
		"away_wins": 9, "away_losses": 8,
		"playoff": true, "wind": 12,
	})
	if vec[2] != 12 {
		t.Errorf("wind = %v, want 12", vec[2])
	}
	if vec[5] != 11 || vec[6] != 6 || vec[7] != 9 || vec[8] != 8 {
		t.Errorf("records = %v %v %v %v, want 11 6 9 8", vec[5], vec[6], vec[7], vec[8])
	}
	if vec[9] != 1 {
		t.Errorf("playoff flag = %v, want 1", vec[9])
	}
}

func TestEncodeContextWeatherFlags(t *testing.T) {
	cases := []struct {
		weather string
		want    [5]float32 // clear, cloudy, rain, snow, fog
	}{
		{"Clear skies", [5]float32{1, 0, 0, 0, 0}},
		{"Partly Cloudy", [5]float32{0, 1, 0, 0, 0}},
		{"rain and fog", [5]float32{0, 0, 1, 0, 1}},
		{"Snow flurries, clearing late", [5]float32{1, 0, 0, 1, 0}},
		{"windy", [5]float32{0, 0, 0, 0, 0}},
		{"", [5]float32{0, 0, 0, 0, 0}},
	}
	for _, tc := range cases {
		vec, _ := EncodeContext(Record{"weather": tc.weather})
		for i, want := range tc.want {
			if vec[10+i] != want {
				t.Errorf("weather %q flag [%d] = %v, want %v", tc.weather, 10+i, vec[10+i], want)
			}
		}
	}
}

func TestEncodeContextSurfaceFlags(t *testing.T) {
	cases := []struct {
		surface      string
		grass, turf  float32
	}{
		{"Natural Grass", 1, 0},
		{"FieldTurf", 0, 1},
		{"hybrid turf over grass base", 1, 1},
		{"dirt infield", 0, 0},
	}
	for _, tc := range cases {
		vec, _ := EncodeContext(Record{"surface": tc.surface})
		if vec[15] != tc.grass || vec[16] != tc.turf {
			t.Errorf("surface %q flags = %v %v, want %v %v", tc.surface, vec[15], vec[16], tc.grass, tc.turf)
		}
	}
}

func TestEncodeContextDefaults(t *testing.T) {
	vec, _ := EncodeContext(Record{})
	if vec[0] != 70 {
		t.Errorf("default temperature = %v, want 70", vec[0])
	}
	if vec[4] != 2024 {
		t.Errorf("default season = %v, want 2024", vec[4])
	}
	if vec[17] != 13 {
		t.Errorf("default kickoff hour = %v, want 13", vec[17])
	}
}

func TestEncodeContextReservedSlots(t *testing.T) {
	vec, _ := EncodeContext(Record{"temperature": 10, "weather": "snow", "surface": "turf", "kickoff_hour": 20})
	for i := 18; i < ContextFeatures; i++ {
		if vec[i] != 0 {
			t.Errorf("reserved slot %d = %v, want 0", i, vec[i])
		}
	}
}

func TestEncodeContextNil(t *testing.T) {
	vec, err := EncodeContext(nil)
	if !errors.Is(err, ErrNilRecord) {
		t.Errorf("err = %v, want ErrNilRecord", err)
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("vec[%d] = %v, want all zeros", i, v)
		}
	}
}
