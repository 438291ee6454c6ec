package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campus-events-api/internal/apperrors"
	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/mocks"
	"github.com/campus-events-api/internal/models"
	"github.com/campus-events-api/internal/repository"
	"github.com/campus-events-api/internal/service"
)

type fixture struct {
	services *service.Services
	users    *mocks.MockUserRepository
	profiles *mocks.MockProfileRepository
	events   *mocks.MockEventRepository
	posts    *mocks.MockPostRepository
}

func setup(adminEmails, eventHeadEmails []string) *fixture {
	users := mocks.NewMockUserRepository()
	profiles := mocks.NewMockProfileRepository()
	events := mocks.NewMockEventRepository()
	posts := mocks.NewMockPostRepository()

	repos := &repository.Repositories{
		User:    users,
		Profile: profiles,
		Event:   events,
		Post:    posts,
	}
	resolver := identity.NewRoleResolver(adminEmails, eventHeadEmails)
	services := service.NewServices(repos, resolver, zerolog.Nop())

	return &fixture{
		services: services,
		users:    users,
		profiles: profiles,
		events:   events,
		posts:    posts,
	}
}

func studentActor(subjectID, name, email string) service.Actor {
	return service.Actor{
		Identity: &identity.Identity{SubjectID: subjectID, DisplayName: name, Email: email},
		User: &models.User{
			SubjectID:   subjectID,
			DisplayName: name,
			Email:       email,
			Role:        models.RoleStudent,
		},
	}
}

func TestAccountSyncCreatesUserAndProfile(t *testing.T) {
	f := setup(nil, nil)
	ctx := context.Background()

	ident := &identity.Identity{
		SubjectID:   "sub-1",
		Email:       "Asha@Campus.EDU",
		DisplayName: "Asha",
		PictureURL:  "https://example.com/asha.png",
	}

	user, profile, err := f.services.Account.Sync(ctx, ident)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if user.Email != "asha@campus.edu" {
		t.Errorf("Expected lowercased email, got %q", user.Email)
	}
	if user.Role != models.RoleStudent {
		t.Errorf("Expected student role, got %s", user.Role)
	}
	if user.LastLoginAt.IsZero() {
		t.Error("LastLoginAt should be stamped")
	}

	if profile == nil {
		t.Fatal("Profile should be created alongside the user")
	}
	if profile.Name != "Asha" {
		t.Errorf("Profile name should come from the identity, got %q", profile.Name)
	}
	if profile.ContactEmail != "asha@campus.edu" {
		t.Errorf("Profile contact email should come from the user, got %q", profile.ContactEmail)
	}
}

func TestAccountSyncResolvesPrivilegedRoles(t *testing.T) {
	f := setup([]string{"dean@campus.edu"}, []string{"head@campus.edu"})
	ctx := context.Background()

	admin, _, err := f.services.Account.Sync(ctx, &identity.Identity{SubjectID: "sub-a", Email: "dean@campus.edu"})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("Expected admin role, got %s", admin.Role)
	}

	head, _, err := f.services.Account.Sync(ctx, &identity.Identity{SubjectID: "sub-h", Email: "head@campus.edu"})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if head.Role != models.RoleEventHead {
		t.Errorf("Expected eventHead role, got %s", head.Role)
	}
}

func TestAccountSyncMissingEmailAbortsBeforeWrite(t *testing.T) {
	f := setup(nil, nil)

	_, _, err := f.services.Account.Sync(context.Background(), &identity.Identity{SubjectID: "sub-1"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if f.users.UpsertCalls != 0 {
		t.Error("No write may happen when the identity has no email")
	}
	if len(f.profiles.Profiles) != 0 {
		t.Error("No profile may be created when the identity has no email")
	}
}

func TestAccountSyncRejectsMissingIdentity(t *testing.T) {
	f := setup(nil, nil)

	if _, _, err := f.services.Account.Sync(context.Background(), nil); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Expected an unauthorized error for nil identity, got %v", err)
	}
	if _, _, err := f.services.Account.Sync(context.Background(), &identity.Identity{Email: "x@campus.edu"}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("Expected an unauthorized error for empty subject, got %v", err)
	}
}

func TestAccountSyncNeverDowngradesRole(t *testing.T) {
	// first sync while on the admin list
	f := setup([]string{"dean@campus.edu"}, nil)
	ctx := context.Background()
	ident := &identity.Identity{SubjectID: "sub-a", Email: "dean@campus.edu"}

	user, _, err := f.services.Account.Sync(ctx, ident)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("Expected admin role, got %s", user.Role)
	}

	// the list no longer grants admin, but the stored role survives
	f.services = service.NewServices(&repository.Repositories{
		User:    f.users,
		Profile: f.profiles,
		Event:   f.events,
		Post:    f.posts,
	}, identity.NewRoleResolver(nil, nil), zerolog.Nop())

	user, _, err = f.services.Account.Sync(ctx, ident)
	if err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("Role must never be downgraded, got %s", user.Role)
	}
}

func TestAccountSyncElevatesExistingUser(t *testing.T) {
	f := setup(nil, nil)
	ctx := context.Background()
	ident := &identity.Identity{SubjectID: "sub-1", Email: "asha@campus.edu"}

	if _, _, err := f.services.Account.Sync(ctx, ident); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	// the email is later added to the eventHead list
	f.services = service.NewServices(&repository.Repositories{
		User:    f.users,
		Profile: f.profiles,
		Event:   f.events,
		Post:    f.posts,
	}, identity.NewRoleResolver(nil, []string{"asha@campus.edu"}), zerolog.Nop())

	user, _, err := f.services.Account.Sync(ctx, ident)
	if err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}
	if user.Role != models.RoleEventHead {
		t.Errorf("Expected elevation to eventHead, got %s", user.Role)
	}
}

func TestAccountSyncBackfillsOnlyEmptyProfileFields(t *testing.T) {
	f := setup(nil, nil)
	ctx := context.Background()
	ident := &identity.Identity{SubjectID: "sub-1", Email: "asha@campus.edu", DisplayName: "Asha"}

	if _, _, err := f.services.Account.Sync(ctx, ident); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	// the user customizes their profile
	stored := f.profiles.Profiles["sub-1"]
	stored.Name = "Custom Name"
	stored.ContactEmail = "personal@example.com"

	_, profile, err := f.services.Account.Sync(ctx, ident)
	if err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}
	if profile.Name != "Custom Name" {
		t.Errorf("Populated profile name must not be overwritten, got %q", profile.Name)
	}
	if profile.ContactEmail != "personal@example.com" {
		t.Errorf("Populated contact email must not be overwritten, got %q", profile.ContactEmail)
	}

	// but an emptied field is backfilled again
	stored = f.profiles.Profiles["sub-1"]
	stored.Name = ""

	_, profile, err = f.services.Account.Sync(ctx, ident)
	if err != nil {
		t.Fatalf("Third sync failed: %v", err)
	}
	if profile.Name != "Asha" {
		t.Errorf("Empty profile name should be backfilled, got %q", profile.Name)
	}
}

func TestAccountSyncKeepsPhotoWhenAssertionOmitsIt(t *testing.T) {
	f := setup(nil, nil)
	ctx := context.Background()

	withPhoto := &identity.Identity{SubjectID: "sub-1", Email: "asha@campus.edu", PictureURL: "https://example.com/asha.png"}
	if _, _, err := f.services.Account.Sync(ctx, withPhoto); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	withoutPhoto := &identity.Identity{SubjectID: "sub-1", Email: "asha@campus.edu"}
	user, _, err := f.services.Account.Sync(ctx, withoutPhoto)
	if err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}
	if user.PhotoURL != "https://example.com/asha.png" {
		t.Errorf("Photo URL should survive an assertion without one, got %q", user.PhotoURL)
	}
}

func TestEventSubmitStudentQueues(t *testing.T) {
	f := setup(nil, nil)

	event, err := f.services.Event.Submit(context.Background(), studentActor("sub-1", "Asha", "asha@campus.edu"), &models.EventInput{
		Title:            "Hack Night",
		Date:             "2026-04-10",
		Time:             "18:00",
		Department:       "CS",
		Description:      "An evening of hacking",
		RegistrationLink: "https://example.com/register",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if event.Status != models.StatusPending {
		t.Errorf("Expected pending status, got %s", event.Status)
	}
	if event.SubmittedBy == nil || event.SubmittedBy.Name != "Asha" {
		t.Error("Submitter snapshot should be stamped")
	}
	if event.ID == "" {
		t.Error("Repository should assign an id")
	}

	pending, _ := f.services.Event.ListPending(context.Background())
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending event, got %d", len(pending))
	}
	published, _ := f.services.Event.ListPublished(context.Background())
	if len(published) != 0 {
		t.Errorf("Pending submission must not be public, got %d", len(published))
	}
}

func TestEventSubmitAdminPublishesImmediately(t *testing.T) {
	f := setup(nil, nil)
	actor := service.Actor{
		Identity: &identity.Identity{SubjectID: "sub-a", Email: "dean@campus.edu"},
		User:     &models.User{SubjectID: "sub-a", Email: "dean@campus.edu", Role: models.RoleAdmin},
	}

	event, err := f.services.Event.Submit(context.Background(), actor, &models.EventInput{
		Title:            "Town Hall",
		Date:             "2026-04-12",
		Time:             "10:00",
		Department:       "Admin",
		Description:      "Campus town hall",
		RegistrationLink: "https://example.com/townhall",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if event.Status != models.StatusPublished {
		t.Errorf("Expected published status, got %s", event.Status)
	}
	if event.ApprovedBy == nil || event.ApprovedBy.SubjectID != "sub-a" {
		t.Error("Immediate publish should stamp the submitter as approver")
	}
}

func TestEventSubmitValidationError(t *testing.T) {
	f := setup(nil, nil)

	_, err := f.services.Event.Submit(context.Background(), studentActor("sub-1", "Asha", "asha@campus.edu"), &models.EventInput{})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if len(f.events.Events) != 0 {
		t.Error("Invalid submission must not be persisted")
	}
}

func TestEventApprove(t *testing.T) {
	f := setup(nil, nil)
	ctx := context.Background()

	event, err := f.services.Event.Submit(ctx, studentActor("sub-1", "Asha", "asha@campus.edu"), &models.EventInput{
		Title:            "Hack Night",
		Date:             "2026-04-10",
		Time:             "18:00",
		Department:       "CS",
		Description:      "An evening of hacking",
		RegistrationLink: "https://example.com/register",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	admin := service.Actor{User: &models.User{SubjectID: "sub-a", DisplayName: "Dean", Role: models.RoleAdmin}}
	approved, err := f.services.Event.Approve(ctx, admin, event.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != models.StatusPublished {
		t.Errorf("Expected published status, got %s", approved.Status)
	}
	if approved.ApprovedBy == nil || approved.ApprovedBy.Name != "Dean" {
		t.Error("Approver snapshot should be stamped")
	}

	// a second approval resolves to not found
	if _, err := f.services.Event.Approve(ctx, admin, event.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected not found on double approve, got %v", err)
	}
}

func TestEventRejectAndDelete(t *testing.T) {
	f := setup(nil, nil)
	ctx := context.Background()

	event, err := f.services.Event.Submit(ctx, studentActor("sub-1", "Asha", "asha@campus.edu"), &models.EventInput{
		Title:            "Hack Night",
		Date:             "2026-04-10",
		Time:             "18:00",
		Department:       "CS",
		Description:      "An evening of hacking",
		RegistrationLink: "https://example.com/register",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	rejected, err := f.services.Event.Reject(ctx, event.ID)
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != models.StatusRejected {
		t.Errorf("Expected rejected status, got %s", rejected.Status)
	}

	if _, err := f.services.Event.Reject(ctx, event.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected not found on double reject, got %v", err)
	}

	if _, err := f.services.Event.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := f.services.Event.Delete(ctx, event.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected not found on double delete, got %v", err)
	}
}

func TestPostSubmitNormalizesSkills(t *testing.T) {
	f := setup(nil, nil)

	post, err := f.services.Post.Submit(context.Background(), studentActor("sub-1", "Asha", "asha@campus.edu"), &models.HackFinderPostInput{
		Type:        "TEAM",
		Title:       "Need a designer",
		Description: "Team of three for the spring hackathon",
		Skills:      models.StringList{" Figma ", "", "CSS"},
		TeamSize:    "4",
		Contact:     "asha@campus.edu",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if post.Type != models.PostTypeTeam {
		t.Errorf("Expected type team, got %s", post.Type)
	}
	if len(post.Skills) != 2 || post.Skills[0] != "Figma" || post.Skills[1] != "CSS" {
		t.Errorf("Expected cleaned skills, got %v", post.Skills)
	}
	if post.Status != models.StatusPending {
		t.Errorf("Expected pending status, got %s", post.Status)
	}
}

func TestPostApproveNotFound(t *testing.T) {
	f := setup(nil, nil)
	admin := service.Actor{User: &models.User{SubjectID: "sub-a", Role: models.RoleAdmin}}

	if _, err := f.services.Post.Approve(context.Background(), admin, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestProfileGetOrCreate(t *testing.T) {
	f := setup(nil, nil)
	actor := studentActor("sub-1", "Asha", "asha@campus.edu")

	profile, err := f.services.Profile.GetOrCreate(context.Background(), actor)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if profile.SubjectID != "sub-1" {
		t.Errorf("Expected subject id, got %q", profile.SubjectID)
	}
	if profile.Name != "Asha" || profile.ContactEmail != "asha@campus.edu" {
		t.Errorf("Profile should be seeded from the actor snapshot, got %+v", profile)
	}

	again, err := f.services.Profile.GetOrCreate(context.Background(), actor)
	if err != nil {
		t.Fatalf("Second GetOrCreate failed: %v", err)
	}
	if again.ID != profile.ID {
		t.Error("Second access should return the same profile")
	}
}

func TestProfileUpdate(t *testing.T) {
	f := setup(nil, nil)
	actor := studentActor("sub-1", "Asha", "asha@campus.edu")

	year := "3"
	skills := models.StringList{"Go", "SQL"}
	profile, err := f.services.Profile.Update(context.Background(), actor, &models.ProfileUpdate{
		Year:   &year,
		Skills: &skills,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if profile.Year != "3" {
		t.Errorf("Expected year 3, got %q", profile.Year)
	}
	if len(profile.Skills) != 2 {
		t.Errorf("Expected 2 skills, got %v", profile.Skills)
	}
	// seeded fields survive a partial update
	if profile.Name != "Asha" {
		t.Errorf("Name should be untouched, got %q", profile.Name)
	}
}

func TestActorSnapshotFallbacks(t *testing.T) {
	// account record wins over the assertion
	actor := service.Actor{
		Identity: &identity.Identity{SubjectID: "sub-1", DisplayName: "Asserted", Email: "asserted@campus.edu"},
		User:     &models.User{SubjectID: "sub-1", DisplayName: "Stored", Email: "stored@campus.edu", Role: models.RoleEventHead},
	}
	snap := actor.Snapshot()
	if snap.Name != "Stored" || snap.Email != "stored@campus.edu" {
		t.Errorf("Account record should win, got %+v", snap)
	}
	if snap.Role != models.RoleEventHead {
		t.Errorf("Expected eventHead role, got %s", snap.Role)
	}

	// name falls back to the asserted name, then the email
	actor = service.Actor{Identity: &identity.Identity{SubjectID: "sub-1", Email: "asha@campus.edu"}}
	if snap := actor.Snapshot(); snap.Name != "asha@campus.edu" {
		t.Errorf("Name should fall back to the email, got %q", snap.Name)
	}

	// role defaults to student without an account record
	if actor.Role() != models.RoleStudent {
		t.Errorf("Expected student default, got %s", actor.Role())
	}
}
