package role

import "fmt"

// Role is a player's chosen career track. A player starts with RoleNone and
// commits to exactly one of the four playable roles.
type Role string

const (
	None        Role = "none"
	Police      Role = "police"
	Criminal    Role = "criminal"
	Businessman Role = "businessman"
	Politician  Role = "politician"
)

// Bonus is the one-time grant applied when a role is chosen.
type Bonus struct {
	Balance    int `json:"balance"`
	Reputation int `json:"reputation"`
}

var bonuses = map[Role]Bonus{
	Police:      {Balance: 500, Reputation: 50},
	Businessman: {Balance: 1000, Reputation: 25},
	Politician:  {Balance: 800, Reputation: 75},
	Criminal:    {Balance: 1500, Reputation: -50},
}

var startingSkills = map[Role][]string{
	Police:      {"law_enforcement", "investigation", "firearms", "physical"},
	Criminal:    {"stealth", "hacking", "lockpicking", "intimidation"},
	Businessman: {"negotiation", "management", "marketing", "finance"},
	Politician:  {"rhetoric", "diplomacy", "law", "public_relations"},
}

// Parse validates a raw role name coming from the API or bot.
func Parse(s string) (Role, error) {
	r := Role(s)
	switch r {
	case Police, Criminal, Businessman, Politician:
		return r, nil
	}
	return None, fmt.Errorf("unknown role: %q", s)
}

func (r Role) Valid() bool {
	_, ok := bonuses[r]
	return ok
}

// BonusFor returns the one-time signing bonus for a role.
func BonusFor(r Role) Bonus {
	return bonuses[r]
}

// StartingSkills returns the four skills seeded at level 1 when the role is
// chosen. The returned slice is a copy.
func StartingSkills(r Role) []string {
	src := startingSkills[r]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// All lists the playable roles in a stable order.
func All() []Role {
	return []Role{Police, Criminal, Businessman, Politician}
}
