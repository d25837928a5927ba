package hero

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderBoy  Gender = "boy"
	GenderGirl Gender = "girl"
)

// Slot is an equipment position on the hero.
type Slot string

const (
	SlotSuit Slot = "suit"
	SlotCape Slot = "cape"
	SlotAura Slot = "aura"
	SlotPet  Slot = "pet"
)

var Slots = []Slot{SlotSuit, SlotCape, SlotAura, SlotPet}

// Track is a category of timed physical activity.
type Track string

const (
	TrackStrength    Track = "strength"
	TrackSpeed       Track = "speed"
	TrackFlexibility Track = "flexibility"
)

const (
	DefaultHeroName  = "Héroe"
	DefaultAvatar    = 1
	MaxAvatar        = 10
	DefaultTimeLimit = 30
	MinTimeLimit     = 15
	MaxTimeLimit     = 120
	TimeLimitStep    = 15
)

type HeroProfile struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
	Avatar int    `json:"avatar"`
}

type Inventory struct {
	XP    int   `json:"xp"`
	Level int   `json:"level"`
	Items []int `json:"items"`
}

// Reward is the guardian-defined real-world reward attached to a track.
type Reward struct {
	RealReward      string `json:"realReward"`
	CyclesCompleted int    `json:"cyclesCompleted"`
	RewardDelivered bool   `json:"rewardDelivered"`
}

// Profile is the per-identity gameplay and entitlement record. Entitled is the
// normalized form of whatever was stored in the entitlement field.
type Profile struct {
	UID               string           `json:"uid"`
	Email             string           `json:"email"`
	Entitled          bool             `json:"entitlement"`
	HeroProfile       HeroProfile      `json:"heroProfile"`
	Inventory         Inventory        `json:"inventory"`
	Coins             int              `json:"coins"`
	EquippedItems     map[Slot]*int    `json:"equippedItems"`
	CompletedMissions map[Track]int    `json:"completedMissions"`
	Rewards           map[Track]Reward `json:"rewards"`
	TimeLimit         int              `json:"timeLimit"`
	ProfilePhoto      string           `json:"profilePhoto,omitempty"`
	Streak            int              `json:"streak"`
	LastStreakAt      time.Time        `json:"lastStreakAt"`
	HasParentPin      bool             `json:"hasParentPin"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// NewDefaultProfile builds the record created the first time an identity is
// seen without one.
func NewDefaultProfile(uid, email, displayName string) *Profile {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = DefaultHeroName
	}
	return &Profile{
		UID:      uid,
		Email:    email,
		Entitled: false,
		HeroProfile: HeroProfile{
			Name:   name,
			Gender: GenderBoy,
			Avatar: DefaultAvatar,
		},
		Inventory: Inventory{
			XP:    0,
			Level: 1,
			Items: []int{},
		},
		EquippedItems:     map[Slot]*int{},
		CompletedMissions: map[Track]int{},
		Rewards:           map[Track]Reward{},
		TimeLimit:         DefaultTimeLimit,
	}
}

// EnsureMaps replaces nil maps so callers can write into them.
func (p *Profile) EnsureMaps() {
	if p.EquippedItems == nil {
		p.EquippedItems = map[Slot]*int{}
	}
	if p.CompletedMissions == nil {
		p.CompletedMissions = map[Track]int{}
	}
	if p.Rewards == nil {
		p.Rewards = map[Track]Reward{}
	}
	if p.Inventory.Items == nil {
		p.Inventory.Items = []int{}
	}
	if p.Inventory.Level < 1 {
		p.Inventory.Level = 1
	}
}

func (p *Profile) Owns(itemID int) bool {
	for _, id := range p.Inventory.Items {
		if id == itemID {
			return true
		}
	}
	return false
}

// EquippedIn returns the item id occupying slot, if any.
func (p *Profile) EquippedIn(slot Slot) (int, bool) {
	id, ok := p.EquippedItems[slot]
	if !ok || id == nil {
		return 0, false
	}
	return *id, true
}

// Clone returns a deep copy safe to mutate.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Inventory.Items = append([]int(nil), p.Inventory.Items...)
	c.EquippedItems = make(map[Slot]*int, len(p.EquippedItems))
	for k, v := range p.EquippedItems {
		if v == nil {
			c.EquippedItems[k] = nil
			continue
		}
		id := *v
		c.EquippedItems[k] = &id
	}
	c.CompletedMissions = make(map[Track]int, len(p.CompletedMissions))
	for k, v := range p.CompletedMissions {
		c.CompletedMissions[k] = v
	}
	c.Rewards = make(map[Track]Reward, len(p.Rewards))
	for k, v := range p.Rewards {
		c.Rewards[k] = v
	}
	return &c
}

// TotalRealRewards sums completed cycles across every track.
func (p *Profile) TotalRealRewards() int {
	total := 0
	for _, r := range p.Rewards {
		total += r.CyclesCompleted
	}
	return total
}

func ValidTimeLimit(minutes int) bool {
	return minutes >= MinTimeLimit && minutes <= MaxTimeLimit && minutes%TimeLimitStep == 0
}

func ValidGender(g Gender) bool {
	return g == GenderBoy || g == GenderGirl
}

func ValidSlot(s Slot) bool {
	for _, slot := range Slots {
		if slot == s {
			return true
		}
	}
	return false
}
