package profession

import (
	"github.com/foxsi02/russian-world-game/internal/player"
	"github.com/foxsi02/russian-world-game/internal/role"
)

// Profession is a career rank unlocked by skill levels. SalaryBonus is a
// flat add applied on top of job salaries once unlocked (future use keeps
// the field on the wire already).
type Profession struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Role         role.Role      `json:"role"`
	Requirements map[string]int `json:"requirements"`
	SalaryBonus  int            `json:"salary_bonus"`
}

var catalog = []Profession{
	{ID: "beat_cop", Name: "Beat cop", Role: role.Police, Requirements: map[string]int{"law_enforcement": 1}, SalaryBonus: 0},
	{ID: "detective", Name: "Detective", Role: role.Police, Requirements: map[string]int{"law_enforcement": 3, "investigation": 2}, SalaryBonus: 150},
	{ID: "chief", Name: "Police chief", Role: role.Police, Requirements: map[string]int{"law_enforcement": 5, "investigation": 4}, SalaryBonus: 400},

	{ID: "pickpocket", Name: "Pickpocket", Role: role.Criminal, Requirements: map[string]int{"stealth": 1}, SalaryBonus: 0},
	{ID: "burglar", Name: "Burglar", Role: role.Criminal, Requirements: map[string]int{"stealth": 3, "lockpicking": 2}, SalaryBonus: 200},
	{ID: "crime_boss", Name: "Crime boss", Role: role.Criminal, Requirements: map[string]int{"stealth": 5, "intimidation": 4}, SalaryBonus: 500},

	{ID: "clerk", Name: "Clerk", Role: role.Businessman, Requirements: map[string]int{"management": 1}, SalaryBonus: 0},
	{ID: "manager", Name: "Manager", Role: role.Businessman, Requirements: map[string]int{"management": 3, "negotiation": 2}, SalaryBonus: 150},
	{ID: "magnate", Name: "Magnate", Role: role.Businessman, Requirements: map[string]int{"management": 5, "finance": 4}, SalaryBonus: 450},

	{ID: "activist", Name: "Activist", Role: role.Politician, Requirements: map[string]int{"rhetoric": 1}, SalaryBonus: 0},
	{ID: "deputy", Name: "Deputy", Role: role.Politician, Requirements: map[string]int{"rhetoric": 3, "diplomacy": 2}, SalaryBonus: 200},
	{ID: "mayor", Name: "Mayor", Role: role.Politician, Requirements: map[string]int{"rhetoric": 5, "law": 4}, SalaryBonus: 500},
}

// ForRole lists the professions belonging to one role track.
func ForRole(r role.Role) []Profession {
	out := make([]Profession, 0, 3)
	for _, p := range catalog {
		if p.Role == r {
			out = append(out, p)
		}
	}
	return out
}

// Status pairs a profession with whether a player meets its requirements.
type Status struct {
	Profession Profession `json:"profession"`
	Unlocked   bool       `json:"unlocked"`
}

// Evaluate checks a player's skills against their role's professions.
func Evaluate(p player.Player) []Status {
	profs := ForRole(p.Role)
	out := make([]Status, 0, len(profs))
	for _, pr := range profs {
		out = append(out, Status{Profession: pr, Unlocked: meets(p, pr)})
	}
	return out
}

func meets(p player.Player, pr Profession) bool {
	for skillID, lvl := range pr.Requirements {
		if p.SkillLevel(skillID) < lvl {
			return false
		}
	}
	return true
}
