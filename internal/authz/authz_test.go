package authz

import (
	"testing"

	"github.com/emzola/recensio/data"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	anonymous := data.AnonymousUser
	regular := &data.User{ID: 1, Username: "reader", Role: data.RoleUser}
	author := &data.User{ID: 2, Username: "author", Role: data.RoleUser}
	moderator := &data.User{ID: 3, Username: "mod", Role: data.RoleModerator}
	admin := &data.User{ID: 4, Username: "admin", Role: data.RoleAdmin}
	superuser := &data.User{ID: 5, Username: "root", Role: data.RoleUser, IsSuperuser: true}

	tests := []struct {
		name     string
		actor    *data.User
		action   Action
		resource Resource
		ownerID  int64
		want     error
	}{
		{"anonymous can list titles", anonymous, ActionList, ResourceTitles, 0, nil},
		{"anonymous can retrieve reviews", anonymous, ActionRetrieve, ResourceReviews, 0, nil},
		{"anonymous cannot create reviews", anonymous, ActionCreate, ResourceReviews, 0, ErrAuthenticationRequired},
		{"anonymous cannot create categories", anonymous, ActionCreate, ResourceCategories, 0, ErrAuthenticationRequired},

		{"user can create reviews", regular, ActionCreate, ResourceReviews, 0, nil},
		{"user cannot create titles", regular, ActionCreate, ResourceTitles, 0, ErrNotPermitted},
		{"user cannot delete genres", regular, ActionDelete, ResourceGenres, 0, ErrNotPermitted},
		{"user cannot manage users", regular, ActionList, ResourceUsers, 0, ErrNotPermitted},

		{"author can update own review", author, ActionUpdate, ResourceReviews, author.ID, nil},
		{"author can delete own comment", author, ActionDelete, ResourceComments, author.ID, nil},
		{"user cannot update another's review", regular, ActionUpdate, ResourceReviews, author.ID, ErrNotPermitted},
		{"user cannot delete another's comment", regular, ActionDelete, ResourceComments, author.ID, ErrNotPermitted},

		{"moderator can update any review", moderator, ActionUpdate, ResourceReviews, author.ID, nil},
		{"moderator can delete any comment", moderator, ActionDelete, ResourceComments, author.ID, nil},
		{"moderator cannot create categories", moderator, ActionCreate, ResourceCategories, 0, ErrNotPermitted},
		{"moderator cannot manage users", moderator, ActionCreate, ResourceUsers, 0, ErrNotPermitted},

		{"admin can create titles", admin, ActionCreate, ResourceTitles, 0, nil},
		{"admin can delete categories", admin, ActionDelete, ResourceCategories, 0, nil},
		{"admin can manage users", admin, ActionDelete, ResourceUsers, 0, nil},
		{"admin can delete any review", admin, ActionDelete, ResourceReviews, author.ID, nil},

		{"superuser acts as admin regardless of role", superuser, ActionCreate, ResourceGenres, 0, nil},
		{"superuser can manage users", superuser, ActionUpdate, ResourceUsers, 0, nil},

		{"actor can update own account", regular, ActionUpdate, ResourceAccount, regular.ID, nil},
		{"actor cannot update another account", regular, ActionUpdate, ResourceAccount, author.ID, ErrNotPermitted},
		{"anonymous cannot retrieve account", anonymous, ActionRetrieve, ResourceAccount, 0, ErrAuthenticationRequired},
		{"account deletion is not in the table", regular, ActionDelete, ResourceAccount, regular.ID, ErrNotPermitted},

		{"unknown resource denies by default", admin, ActionList, Resource("exports"), 0, ErrNotPermitted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.action, tc.resource, tc.ownerID)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
