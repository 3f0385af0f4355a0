package job

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxsi02/russian-world-game/internal/role"
)

func TestOpenTo(t *testing.T) {
	open := Job{ID: 1, Name: "Office clerk"}
	explicit := Job{ID: 2, Name: "Taxi driver", RequiredRole: role.None}
	gated := Job{ID: 3, Name: "Street patrol", RequiredRole: role.Police}

	// Open jobs admit everyone, whether the requirement is left at the
	// zero value or spelled out.
	for _, r := range append(role.All(), role.None) {
		assert.True(t, open.OpenTo(r), "zero-value requirement, role %s", r)
		assert.True(t, explicit.OpenTo(r), "explicit none, role %s", r)
	}

	assert.True(t, gated.OpenTo(role.Police))
	assert.False(t, gated.OpenTo(role.Criminal))
	assert.False(t, gated.OpenTo(role.None))
}

func TestAvailable_FiltersByRole(t *testing.T) {
	jobs := Defaults()

	var openIDs []int
	for _, j := range Available(jobs, role.None) {
		openIDs = append(openIDs, j.ID)
	}
	assert.Equal(t, []int{1, 2}, openIDs)

	var policeIDs []int
	for _, j := range Available(jobs, role.Police) {
		policeIDs = append(policeIDs, j.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 5}, policeIDs)
}
