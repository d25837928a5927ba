package hero

import "testing"

func TestNewDefaultProfile(t *testing.T) {
	p := NewDefaultProfile("u1", "kid@example.com", "  ")
	if p.Entitled {
		t.Fatal("default profile must not be entitled")
	}
	if p.Inventory.XP != 0 || p.Inventory.Level != 1 {
		t.Fatalf("got xp=%d level=%d, want 0 and 1", p.Inventory.XP, p.Inventory.Level)
	}
	if p.HeroProfile.Name != DefaultHeroName {
		t.Fatalf("got name %q, want %q", p.HeroProfile.Name, DefaultHeroName)
	}
	if p.HeroProfile.Gender != GenderBoy {
		t.Fatalf("got gender %q, want boy", p.HeroProfile.Gender)
	}
	if p.TimeLimit != DefaultTimeLimit {
		t.Fatalf("got time limit %d, want %d", p.TimeLimit, DefaultTimeLimit)
	}

	named := NewDefaultProfile("u2", "a@example.com", "Sofía")
	if named.HeroProfile.Name != "Sofía" {
		t.Fatalf("got name %q, want display name", named.HeroProfile.Name)
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := NewDefaultProfile("u1", "kid@example.com", "Leo")
	cape := 1
	p.Inventory.Items = []int{1}
	p.EquippedItems[SlotCape] = &cape
	p.CompletedMissions[TrackSpeed] = 3
	p.Rewards[TrackSpeed] = Reward{RealReward: "Cine"}

	c := p.Clone()
	*c.EquippedItems[SlotCape] = 9
	c.Inventory.Items[0] = 9
	c.CompletedMissions[TrackSpeed] = 4
	c.Rewards[TrackSpeed] = Reward{RealReward: "Parque"}

	if id, _ := p.EquippedIn(SlotCape); id != 1 {
		t.Fatalf("original equipped changed to %d", id)
	}
	if p.Inventory.Items[0] != 1 {
		t.Fatal("original items changed")
	}
	if p.CompletedMissions[TrackSpeed] != 3 {
		t.Fatal("original missions changed")
	}
	if p.Rewards[TrackSpeed].RealReward != "Cine" {
		t.Fatal("original rewards changed")
	}
}

func TestValidTimeLimit(t *testing.T) {
	for _, m := range []int{15, 30, 45, 120} {
		if !ValidTimeLimit(m) {
			t.Fatalf("ValidTimeLimit(%d) = false, want true", m)
		}
	}
	for _, m := range []int{0, 10, 20, 135} {
		if ValidTimeLimit(m) {
			t.Fatalf("ValidTimeLimit(%d) = true, want false", m)
		}
	}
}
