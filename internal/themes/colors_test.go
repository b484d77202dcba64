package themes

import (
	"testing"

	"github.com/thatcatcamp/tint/internal/colors"
)

func TestPresetExists(t *testing.T) {
	preset := GetPreset("slate")
	if preset == nil {
		t.Fatal("slate preset not found")
	}
	if GetPreset("missing") != nil {
		t.Fatal("unknown preset should be nil")
	}
}

func TestPresets(t *testing.T) {
	presets := Presets()
	if len(presets) != 12 {
		t.Errorf("expected 12 presets, got %d", len(presets))
	}
	names := make(map[string]bool)
	for _, p := range presets {
		if names[p.Name] {
			t.Errorf("duplicate preset name: %s", p.Name)
		}
		names[p.Name] = true
		if !colors.IsHex(p.Primary) || !colors.IsHex(p.Secondary) {
			t.Errorf("preset %s has invalid seeds", p.Name)
		}
	}
}

func TestDefaultsComplete(t *testing.T) {
	for _, mode := range []Mode{Light, Dark} {
		m := Defaults(mode)
		if missing := m.Complete(); missing != nil {
			t.Errorf("%s defaults missing %v", mode, missing)
		}
		if len(m) != len(TokenKeys) {
			t.Errorf("%s defaults has %d entries", mode, len(m))
		}
		for k, v := range m {
			if !colors.ValidTokenValue(v) {
				t.Errorf("%s default %s invalid: %q", mode, k, v)
			}
		}
	}
}

func TestDefaultsValues(t *testing.T) {
	light := Defaults(Light)
	dark := Defaults(Dark)
	if got := light.Get(Background); got != "0 0% 100%" {
		t.Errorf("light background = %q", got)
	}
	if got := dark.Get(Background); got != "222.2 84% 4.9%" {
		t.Errorf("dark background = %q", got)
	}
	if got := dark.Get(Ring); got != "212.7 26.8% 83.9%" {
		t.Errorf("dark ring = %q", got)
	}
}

func TestDefaultsReturnsFreshMap(t *testing.T) {
	a := Defaults(Light)
	a[Background.Var()] = "1 1% 1%"
	if Defaults(Light).Get(Background) != "0 0% 100%" {
		t.Fatal("Defaults shares state between calls")
	}
}

func TestDeriveSingleSeed(t *testing.T) {
	p := Derive("#3b82f6")

	light := map[TokenKey]string{
		Background:          "217 4.55% 99%",
		Foreground:          "217 86% 4.5%",
		Primary:             "217 100% 60%",
		PrimaryForeground:   "217 76% 98%",
		Secondary:           "217 81% 96.5%",
		SecondaryForeground: "217 96% 60%",
		MutedForeground:     "217 81% 48%",
		Accent:              "217 96% 96.5%",
		Border:              "217 81% 92%",
		Ring:                "217 100% 65%",
		Destructive:         "0 90% 65%",
		Chart1:              "247 85% 65%",
		Chart2:              "337 70% 45%",
		Chart3:              "37 60% 35%",
		Chart4:              "97 80% 70%",
		Chart5:              "157 90% 70%",
		GradientOne:         "299 100% 60%",
		GradientTwo:         "181 80% 60%",
	}
	for k, want := range light {
		if got := p.Light.Get(k); got != want {
			t.Errorf("light %s = %q, want %q", k, got, want)
		}
	}

	dark := map[TokenKey]string{
		Background:        "217 13.65% 4.5%",
		Foreground:        "217 76% 98%",
		Primary:           "217 100% 80%",
		PrimaryForeground: "217 96% 45%",
		Secondary:         "217 96% 18%",
		MutedForeground:   "217 81% 68%",
		Accent:            "217 100% 18%",
		Ring:              "217 81% 85%",
		Destructive:       "0 70% 35%",
		Chart1:            "257 80% 55%",
		Chart3:            "17 85% 60%",
		Chart5:            "137 85% 60%",
	}
	for k, want := range dark {
		if got := p.Dark.Get(k); got != want {
			t.Errorf("dark %s = %q, want %q", k, got, want)
		}
	}
}

func TestDeriveDuotone(t *testing.T) {
	p := DeriveDuotone("#3b82f6", "#f472b6")

	checks := []struct {
		mode Mode
		key  TokenKey
		want string
	}{
		{Light, Primary, "217 100% 60%"},
		{Light, Secondary, "329 91% 75%"},
		{Light, SecondaryForeground, "329 81% 10%"},
		{Light, Muted, "329 76% 96.5%"},
		{Light, Accent, "329 81% 90%"},
		{Light, Chart1, "217 85% 65%"},
		{Light, Chart2, "329 70% 45%"},
		{Light, Chart4, "149 80% 70%"},
		{Light, Chart5, "273 90% 70%"},
		{Light, GradientOne, "217 100% 60%"},
		{Light, GradientTwo, "329 80% 60%"},
		{Dark, Secondary, "329 96% 70%"},
		{Dark, Accent, "329 91% 25%"},
		{Dark, Chart5, "273 85% 60%"},
		{Dark, Border, "217 96% 18%"},
	}
	for _, c := range checks {
		if got := p.Colors(c.mode).Get(c.key); got != c.want {
			t.Errorf("%s %s = %q, want %q", c.mode, c.key, got, c.want)
		}
	}
}

func TestDerivedMapsCompleteAndInRange(t *testing.T) {
	seeds := []string{"#000000", "#ffffff", "#ff0000", "#3b82f6", "#000080", "#f0f", "bogus"}
	for _, seed := range seeds {
		for _, p := range []Palette{Derive(seed), DeriveDuotone(seed, "#f59e0b")} {
			for _, m := range []TokenMap{p.Light, p.Dark} {
				if missing := m.Complete(); missing != nil {
					t.Fatalf("seed %s missing %v", seed, missing)
				}
				for k, v := range m {
					if !colors.ValidTokenValue(v) {
						t.Errorf("seed %s: %s out of range: %q", seed, k, v)
					}
				}
			}
		}
	}
}

func TestDeriveInvalidSeedTreatedAsBlack(t *testing.T) {
	if !Derive("#12345").Light.Equal(Derive("#000000").Light) {
		t.Fatal("invalid seed should derive like black")
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	a := Derive("#14b8a6")
	b := Derive("#14b8a6")
	if !a.Light.Equal(b.Light) || !a.Dark.Equal(b.Dark) {
		t.Fatal("derivation should be deterministic")
	}
}

func TestPresetPalette(t *testing.T) {
	p := GetPreset("indigo")
	single := p.Palette(false)
	duo := p.Palette(true)
	if single.Light.Get(Secondary) == duo.Light.Get(Secondary) {
		t.Fatal("duotone preset should anchor secondary on the second seed")
	}
}

func TestContrastReportDefaults(t *testing.T) {
	report := ContrastReport(Defaults(Light))
	if len(report) == 0 {
		t.Fatal("empty report")
	}
	first := report[0]
	if first.Foreground != Foreground || first.Background != Background {
		t.Fatalf("unexpected first pair %s/%s", first.Foreground, first.Background)
	}
	if !first.Valid || !first.PassesAA {
		t.Errorf("default foreground on background should pass AA, ratio %.2f", first.Ratio)
	}
}

func TestContrastReportMissingToken(t *testing.T) {
	m := Defaults(Dark)
	delete(m, Primary.Var())
	for _, c := range ContrastReport(m) {
		if c.Background == Primary && c.Valid {
			t.Fatal("missing primary should not be measured")
		}
	}
}
