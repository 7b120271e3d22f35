package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	alice := Caller{ID: "alice", Role: RoleUser}
	bob := Caller{ID: "bob", Role: RoleUser}
	admin := Caller{ID: "root", Role: RoleAdmin}
	ghost := Caller{ID: "alice", Role: RoleAnonymous}

	own := Target{OwnerID: "alice"}

	tests := []struct {
		name   string
		caller Caller
		action Action
		target Target
		want   bool
	}{
		{"admin creates amenity", admin, CreateAmenity, Target{}, true},
		{"user creates amenity", alice, CreateAmenity, Target{}, false},
		{"user updates amenity", alice, UpdateAmenity, Target{}, false},
		{"anonymous creates place", Anonymous, CreatePlace, Target{}, false},
		{"user creates place", alice, CreatePlace, Target{}, true},
		{"user creates review", bob, CreateReview, Target{}, true},
		{"owner updates place", alice, UpdatePlace, own, true},
		{"stranger updates place", bob, UpdatePlace, own, false},
		{"admin updates any place", admin, UpdatePlace, own, true},
		{"owner deletes place", alice, DeletePlace, own, true},
		{"stranger deletes place", bob, DeletePlace, own, false},
		{"author updates review", alice, UpdateReview, own, true},
		{"stranger deletes review", bob, DeleteReview, own, false},
		{"anonymous claiming an id", ghost, UpdatePlace, own, false},
		{"self renames", alice, UpdateUser, Target{OwnerID: "alice", Fields: []string{"first_name", "last_name"}}, true},
		{"self changes email", alice, UpdateUser, Target{OwnerID: "alice", Fields: []string{"email"}}, false},
		{"self changes password", alice, UpdateUser, Target{OwnerID: "alice", Fields: []string{"password"}}, false},
		{"self promotes", alice, UpdateUser, Target{OwnerID: "alice", Fields: []string{"is_admin"}}, false},
		{"renames other", bob, UpdateUser, Target{OwnerID: "alice", Fields: []string{"first_name"}}, false},
		{"admin changes email", admin, UpdateUser, Target{OwnerID: "alice", Fields: []string{"email"}}, true},
		{"user grants admin", alice, CreateUserAsAdmin, Target{}, false},
		{"admin grants admin", admin, CreateUserAsAdmin, Target{}, true},
		{"owner id empty", Caller{Role: RoleUser}, UpdatePlace, Target{}, false},
		{"unknown action", alice, Action("launch"), Target{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Can(tt.caller, tt.action, tt.target)
			assert.Equal(t, tt.want, d.Allowed)
			if !tt.want {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}
