// Package policy holds the single authorization decision used by the
// application layer. It has no dependencies and performs no I/O.
package policy

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Caller is the verified identity presented by the transport layer.
type Caller struct {
	ID   string
	Role Role
}

// Anonymous is the caller used when no credentials were presented.
var Anonymous = Caller{Role: RoleAnonymous}

func (c Caller) IsAdmin() bool         { return c.Role == RoleAdmin }
func (c Caller) Authenticated() bool   { return c.Role == RoleUser || c.Role == RoleAdmin }
func (c Caller) Is(userID string) bool { return c.Authenticated() && c.ID != "" && c.ID == userID }

type Action string

const (
	CreateAmenity     Action = "create_amenity"
	UpdateAmenity     Action = "update_amenity"
	CreatePlace       Action = "create_place"
	UpdatePlace       Action = "update_place"
	DeletePlace       Action = "delete_place"
	CreateReview      Action = "create_review"
	UpdateReview      Action = "update_review"
	DeleteReview      Action = "delete_review"
	UpdateUser        Action = "update_user"
	CreateUserAsAdmin Action = "create_user_as_admin"
)

// Target describes the resource an action applies to. OwnerID is the owning
// user: the place owner, the review author, or the user being updated.
// Fields lists the attribute names an update touches.
type Target struct {
	OwnerID string
	Fields  []string
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// selfEditable are the user attributes a non-admin may change on their own
// account.
var selfEditable = map[string]bool{
	"first_name": true,
	"last_name":  true,
}

// Can decides whether caller may perform action on target.
func Can(caller Caller, action Action, target Target) Decision {
	if caller.IsAdmin() {
		return allow()
	}
	switch action {
	case CreateAmenity, UpdateAmenity, CreateUserAsAdmin:
		return deny("admin privileges required")
	}
	if !caller.Authenticated() {
		return deny("authentication required")
	}
	switch action {
	case CreatePlace, CreateReview:
		return allow()
	case UpdatePlace, DeletePlace:
		if !caller.Is(target.OwnerID) {
			return deny("only the place owner may modify this place")
		}
		return allow()
	case UpdateReview, DeleteReview:
		if !caller.Is(target.OwnerID) {
			return deny("only the review author may modify this review")
		}
		return allow()
	case UpdateUser:
		if !caller.Is(target.OwnerID) {
			return deny("users may only update their own account")
		}
		for _, f := range target.Fields {
			if !selfEditable[f] {
				return deny("only an admin may change " + f)
			}
		}
		return allow()
	}
	return deny("unknown action")
}
