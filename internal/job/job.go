package job

import (
	"time"

	"github.com/foxsi02/russian-world-game/internal/role"
)

// Job is one entry of the work catalog. RequiredRole of role.None means
// anyone can take it. Skill names the skill trained by working the job.
type Job struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Salary       int           `json:"salary"`
	EnergyCost   float64       `json:"energy_cost"`
	RequiredRole role.Role     `json:"required_role,omitempty"`
	Skill        string        `json:"skill"`
	Cooldown     time.Duration `json:"cooldown,omitempty"`
}

// WorkExpGain is the flat experience granted per completed shift.
const WorkExpGain = 10

// Defaults is the built-in catalog used to seed the repository.
func Defaults() []Job {
	return []Job{
		{ID: 1, Name: "Office clerk", Salary: 100, EnergyCost: 20, RequiredRole: role.None, Skill: "management"},
		{ID: 2, Name: "Taxi driver", Salary: 150, EnergyCost: 30, RequiredRole: role.None, Skill: "physical"},
		{ID: 3, Name: "Street patrol", Salary: 200, EnergyCost: 25, RequiredRole: role.Police, Skill: "law_enforcement"},
		{ID: 4, Name: "Department manager", Salary: 250, EnergyCost: 25, RequiredRole: role.Businessman, Skill: "management"},
		{ID: 5, Name: "Detective casework", Salary: 300, EnergyCost: 35, RequiredRole: role.Police, Skill: "investigation", Cooldown: 30 * time.Minute},
		{ID: 6, Name: "Night burglary", Salary: 400, EnergyCost: 40, RequiredRole: role.Criminal, Skill: "stealth", Cooldown: time.Hour},
		{ID: 7, Name: "Campaign speech", Salary: 350, EnergyCost: 30, RequiredRole: role.Politician, Skill: "rhetoric", Cooldown: 45 * time.Minute},
	}
}

// OpenTo reports whether a player with the given role may work the job.
// An unset RequiredRole counts as open, same as an explicit role.None.
func (j Job) OpenTo(r role.Role) bool {
	return j.RequiredRole == "" || j.RequiredRole == role.None || j.RequiredRole == r
}

// Available filters the catalog down to what a player with the given role
// may work.
func Available(jobs []Job, r role.Role) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j.OpenTo(r) {
			out = append(out, j)
		}
	}
	return out
}
