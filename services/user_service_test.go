package services

import (
	"testing"

	"github.com/issuetrack-api/apperror"
	"github.com/issuetrack-api/dto"
	"github.com/issuetrack-api/models"
	"github.com/issuetrack-api/utils"
)

func TestUpdateUserRules(t *testing.T) {
	f := newFixture(t)
	admin := string(models.RoleAdmin)

	if _, err := f.c.Users.UpdateUser(f.bob, f.alice.UserID, dto.UpdateUserRequest{Email: strPtr("x@test.com")}); !apperror.Is(err, apperror.ReasonForbidden) {
		t.Errorf("editing someone else: expected Forbidden, got %v", err)
	}
	if _, err := f.c.Users.UpdateUser(f.bob, f.bob.UserID, dto.UpdateUserRequest{Role: &admin}); !apperror.Is(err, apperror.ReasonForbidden) {
		t.Errorf("self promotion: expected Forbidden, got %v", err)
	}
	if _, err := f.c.Users.UpdateUser(f.bob, f.bob.UserID, dto.UpdateUserRequest{Email: strPtr("alice@test.com")}); !apperror.Is(err, apperror.ReasonInvalidInput) {
		t.Errorf("taken email: expected InvalidInput, got %v", err)
	}

	updated, err := f.c.Users.UpdateUser(f.bob, f.bob.UserID, dto.UpdateUserRequest{Email: strPtr("Robert@Test.com"), Password: strPtr("new-password")})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.Email != "robert@test.com" || !utils.CheckPassword(updated.Password, "new-password") {
		t.Errorf("unexpected user after update: %+v", updated)
	}

	promoted, err := f.c.Users.UpdateUser(f.admin, f.bob.UserID, dto.UpdateUserRequest{Role: &admin})
	if err != nil {
		t.Fatalf("admin promotion: %v", err)
	}
	if promoted.Role != models.RoleAdmin {
		t.Errorf("role = %s, want admin", promoted.Role)
	}

	bogus := "superuser"
	if _, err := f.c.Users.UpdateUser(f.admin, f.bob.UserID, dto.UpdateUserRequest{Role: &bogus}); !apperror.Is(err, apperror.ReasonInvalidInput) {
		t.Errorf("unknown role: expected InvalidInput, got %v", err)
	}
}

func TestDeleteUserIsAdminOnly(t *testing.T) {
	f := newFixture(t)

	if err := f.c.Users.DeleteUser(f.alice, f.bob.UserID); !apperror.Is(err, apperror.ReasonForbidden) {
		t.Fatalf("member delete: expected Forbidden, got %v", err)
	}
	if err := f.c.Users.DeleteUser(f.admin, f.bob.UserID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := f.c.Users.GetUser(f.bob.UserID); !apperror.Is(err, apperror.ReasonNotFound) {
		t.Errorf("deleted user: expected NotFound, got %v", err)
	}

	member, err := f.c.Projects.projectRepo.IsMember(f.project.ID, f.bob.UserID)
	if err != nil || member {
		t.Errorf("membership should be removed with the user, got %v %v", member, err)
	}
	if err := f.c.Users.DeleteUser(f.admin, f.bob.UserID); !apperror.Is(err, apperror.ReasonNotFound) {
		t.Errorf("second delete: expected NotFound, got %v", err)
	}

	users, err := f.c.Users.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 remaining users, got %d", len(users))
	}
}
