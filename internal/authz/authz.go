// Package authz implements the authorization rules for the API as an explicit
// policy table. Each policy is a pure function of the request actor and the
// owner of the target resource; nothing in this package touches the database.
package authz

import (
	"errors"

	"github.com/emzola/recensio/data"
)

var (
	// ErrAuthenticationRequired means the action is only open to
	// authenticated users and the actor is anonymous.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrNotPermitted means the actor is authenticated but the policy
	// denies the action.
	ErrNotPermitted = errors.New("not permitted")
)

// Action names the operation an actor wants to perform on a resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Resource names a class of API resource subject to authorization.
type Resource string

const (
	ResourceCategories Resource = "categories"
	ResourceGenres     Resource = "genres"
	ResourceTitles     Resource = "titles"
	ResourceReviews    Resource = "reviews"
	ResourceComments   Resource = "comments"
	ResourceUsers      Resource = "users"
	ResourceAccount    Resource = "account"
)

// Policy decides whether an actor may perform an action. ownerID identifies
// the owner of the target resource and is zero for class-level actions.
type Policy func(actor *data.User, ownerID int64) error

// anyone allows every actor, including the anonymous user. Used for the
// safe read-only actions.
func anyone(actor *data.User, ownerID int64) error {
	return nil
}

// authenticated allows any non-anonymous actor.
func authenticated(actor *data.User, ownerID int64) error {
	if actor.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	return nil
}

// adminOnly allows administrators and superusers.
func adminOnly(actor *data.User, ownerID int64) error {
	if actor.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	if actor.IsAdmin() {
		return nil
	}
	return ErrNotPermitted
}

// authorOrStaff allows the resource owner, moderators, administrators and
// superusers.
func authorOrStaff(actor *data.User, ownerID int64) error {
	if actor.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	if actor.IsAdmin() || actor.IsModerator() {
		return nil
	}
	if actor.ID == ownerID {
		return nil
	}
	return ErrNotPermitted
}

// selfOnly allows an actor to act on its own user record.
func selfOnly(actor *data.User, ownerID int64) error {
	if actor.IsAnonymous() {
		return ErrAuthenticationRequired
	}
	if actor.ID == ownerID {
		return nil
	}
	return ErrNotPermitted
}

// catalogWrites is the policy set shared by the reference-data resources:
// open reads, administrator-only writes.
var catalogWrites = map[Action]Policy{
	ActionList:     anyone,
	ActionRetrieve: anyone,
	ActionCreate:   adminOnly,
	ActionUpdate:   adminOnly,
	ActionDelete:   adminOnly,
}

// userContent is the policy set for reviews and comments: open reads, any
// authenticated user may create, and only the author or staff may modify.
var userContent = map[Action]Policy{
	ActionList:     anyone,
	ActionRetrieve: anyone,
	ActionCreate:   authenticated,
	ActionUpdate:   authorOrStaff,
	ActionDelete:   authorOrStaff,
}

// policies is the authorization table. Absent entries deny by default.
var policies = map[Resource]map[Action]Policy{
	ResourceCategories: catalogWrites,
	ResourceGenres:     catalogWrites,
	ResourceTitles:     catalogWrites,
	ResourceReviews:    userContent,
	ResourceComments:   userContent,
	ResourceUsers: {
		ActionList:     adminOnly,
		ActionRetrieve: adminOnly,
		ActionCreate:   adminOnly,
		ActionUpdate:   adminOnly,
		ActionDelete:   adminOnly,
	},
	ResourceAccount: {
		ActionRetrieve: selfOnly,
		ActionUpdate:   selfOnly,
	},
}

// Authorize decides whether actor may perform action on a resource class.
// It returns nil on allow, ErrAuthenticationRequired when the actor must log
// in first, and ErrNotPermitted on a policy denial.
func Authorize(actor *data.User, action Action, resource Resource, ownerID int64) error {
	actions, ok := policies[resource]
	if !ok {
		return ErrNotPermitted
	}
	policy, ok := actions[action]
	if !ok {
		return ErrNotPermitted
	}
	return policy(actor, ownerID)
}
