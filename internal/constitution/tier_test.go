package constitution

import "testing"

func TestTierLabelsRoundTrip(t *testing.T) {
	for _, tier := range Tiers() {
		got, ok := ParseTier(tier.Label())
		if !ok || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v", tier.Label(), got, ok)
		}
	}
	if _, ok := ParseTier("nope"); ok {
		t.Error("expected unknown label to fail")
	}
	if Tier(9).Label() != "unknown(9)" {
		t.Errorf("unexpected label %q", Tier(9).Label())
	}
}

func TestTierPrecedenceOrder(t *testing.T) {
	tiers := Tiers()
	for i := 1; i < len(tiers); i++ {
		if tiers[i] <= tiers[i-1] {
			t.Errorf("tiers out of order at %d: %v", i, tiers)
		}
	}
	if tiers[0] != TierHard {
		t.Errorf("first tier = %v, want hard", tiers[0])
	}
}

func TestRulesPerTier(t *testing.T) {
	tests := []struct {
		tier Tier
		want int
	}{
		{TierHard, 6},
		{TierPentestEthics, 4},
		{TierSoft, 4},
		{TierUserOverride, 1},
		{Tier(42), 0},
	}
	for _, tt := range tests {
		if got := len(Rules(tt.tier)); got != tt.want {
			t.Errorf("len(Rules(%s)) = %d, want %d", tt.tier.Label(), got, tt.want)
		}
	}
	if Rules(TierUserOverride)[0] != UserOverrideRule {
		t.Error("override tier should hold UserOverrideRule")
	}
}

func TestRuleAccessorsReturnCopies(t *testing.T) {
	rules := HardRules()
	rules[0] = "tampered"
	if HardRules()[0] == "tampered" {
		t.Error("HardRules must not expose the backing table")
	}

	soft := SoftGuidelines()
	soft[0] = "tampered"
	if SoftGuidelines()[0] == "tampered" {
		t.Error("SoftGuidelines must not expose the backing table")
	}
}

func TestRulesByLabel(t *testing.T) {
	rules, err := RulesByLabel(" Pentest ")
	if err != nil {
		t.Fatalf("RulesByLabel: %v", err)
	}
	if len(rules) != 1 || len(rules["pentest"]) != 4 {
		t.Errorf("unexpected rules %v", rules)
	}

	for _, label := range []string{"", "all", "ALL"} {
		all, err := RulesByLabel(label)
		if err != nil || len(all) != 4 {
			t.Errorf("RulesByLabel(%q) = %v, %v", label, all, err)
		}
	}

	if _, err := RulesByLabel("bogus"); err == nil {
		t.Error("expected error for unknown tier")
	}
}
