package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

type teamFixture struct {
	svc           *TeamService
	users         *fakeUserRepo
	teams         *fakeTeamRepo
	hackathons    *fakeHackathonRepo
	registrations *fakeRegistrationRepo
	notifications *fakeNotificationRepo
	hackathonID   int64
	organizer     *models.User
}

func newTeamFixture(t *testing.T, teamSizeLimit int) *teamFixture {
	t.Helper()
	users := newFakeUserRepo()
	hackathons := newFakeHackathonRepo()
	registrations := newFakeRegistrationRepo()
	teams := newFakeTeamRepo(hackathons)
	notifications := newFakeNotificationRepo(teams, registrations)

	organizer := users.addUser("org@example.com", "organizer")
	h := &models.Hackathon{OrganizerID: organizer.ID, Title: "Hack", TeamSizeLimit: teamSizeLimit}
	if _, err := hackathons.CreateHackathon(context.Background(), h); err != nil {
		t.Fatalf("seeding hackathon: %v", err)
	}

	svc := NewTeamService(teams, users, notifications, hackathons, registrations, noopEmail{})
	return &teamFixture{
		svc:           svc,
		users:         users,
		teams:         teams,
		hackathons:    hackathons,
		registrations: registrations,
		notifications: notifications,
		hackathonID:   h.ID,
		organizer:     organizer,
	}
}

func TestCreateTeam(t *testing.T) {
	f := newTeamFixture(t, 4)
	member := f.users.addUser("ada@example.com", "ada")
	f.registrations.register(member.ID, f.hackathonID, "Go")

	team, err := f.svc.CreateTeam(context.Background(), member.ID, f.hackathonID, &dto.TeamRequest{Name: "Gophers"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if team.JoinCode == "" {
		t.Error("expected a join code")
	}

	isMember, err := f.teams.IsTeamMember(context.Background(), team.ID, member.ID)
	if err != nil {
		t.Fatalf("IsTeamMember: %v", err)
	}
	if !isMember {
		t.Error("creator should be auto-joined")
	}
}

func TestCreateTeamOrganizerBypassesRegistration(t *testing.T) {
	f := newTeamFixture(t, 4)

	_, err := f.svc.CreateTeam(context.Background(), f.organizer.ID, f.hackathonID, &dto.TeamRequest{Name: "Staff"})
	if err != nil {
		t.Fatalf("CreateTeam as organizer: %v", err)
	}
}

func TestCreateTeamGates(t *testing.T) {
	f := newTeamFixture(t, 4)
	outsider := f.users.addUser("out@example.com", "outsider")

	_, err := f.svc.CreateTeam(context.Background(), outsider.ID, f.hackathonID, &dto.TeamRequest{})
	if err == nil || err.Error() != "Team name is required" {
		t.Errorf("missing name: %v", err)
	}

	_, err = f.svc.CreateTeam(context.Background(), outsider.ID, 999, &dto.TeamRequest{Name: "X"})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("unknown hackathon: %v", err)
	}

	_, err = f.svc.CreateTeam(context.Background(), outsider.ID, f.hackathonID, &dto.TeamRequest{Name: "X"})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("unregistered creator error = %v, want permission denied", err)
	}
	if err == nil || err.Error() != "You must be registered for this hackathon to create a team" {
		t.Errorf("unregistered creator message = %v", err)
	}
}

func (f *teamFixture) createTeamAs(t *testing.T, user *models.User, name string) *models.Team {
	t.Helper()
	f.registrations.register(user.ID, f.hackathonID, "Go")
	team, err := f.svc.CreateTeam(context.Background(), user.ID, f.hackathonID, &dto.TeamRequest{Name: name})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	return team
}

func TestInvite(t *testing.T) {
	f := newTeamFixture(t, 4)
	captain := f.users.addUser("cap@example.com", "captain")
	invitee := f.users.addUser("inv@example.com", "invitee")
	team := f.createTeamAs(t, captain, "Gophers")

	resp, err := f.svc.Invite(context.Background(), captain.ID, team.ID, &dto.InviteRequest{Username: "invitee"})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if resp.Type != models.NotificationTeamInvite || resp.Status != models.NotificationPending {
		t.Errorf("invite response = %+v", resp)
	}

	pending, err := f.notifications.HasPendingInvite(context.Background(), invitee.ID, team.ID)
	if err != nil {
		t.Fatalf("HasPendingInvite: %v", err)
	}
	if !pending {
		t.Error("expected a pending notification for the invitee")
	}
}

func TestInviteGates(t *testing.T) {
	f := newTeamFixture(t, 4)
	captain := f.users.addUser("cap@example.com", "captain")
	outsider := f.users.addUser("out@example.com", "outsider")
	f.users.addUser("inv@example.com", "invitee")
	team := f.createTeamAs(t, captain, "Gophers")

	_, err := f.svc.Invite(context.Background(), captain.ID, team.ID, &dto.InviteRequest{})
	if err == nil || err.Error() != "Username is required" {
		t.Errorf("missing username: %v", err)
	}

	_, err = f.svc.Invite(context.Background(), captain.ID, 999, &dto.InviteRequest{Username: "invitee"})
	if err == nil || err.Error() != "Team not found" {
		t.Errorf("unknown team: %v", err)
	}

	_, err = f.svc.Invite(context.Background(), outsider.ID, team.ID, &dto.InviteRequest{Username: "invitee"})
	if err == nil || err.Error() != "You must be a team member to invite users" {
		t.Errorf("non-member inviter: %v", err)
	}

	_, err = f.svc.Invite(context.Background(), captain.ID, team.ID, &dto.InviteRequest{Username: "ghost"})
	if err == nil || err.Error() != "User not found" {
		t.Errorf("unknown invitee: %v", err)
	}

	_, err = f.svc.Invite(context.Background(), captain.ID, team.ID, &dto.InviteRequest{Username: "captain"})
	if err == nil || err.Error() != "User is already a team member" {
		t.Errorf("invitee already member: %v", err)
	}

	if _, err := f.svc.Invite(context.Background(), captain.ID, team.ID, &dto.InviteRequest{Username: "invitee"}); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	_, err = f.svc.Invite(context.Background(), captain.ID, team.ID, &dto.InviteRequest{Username: "invitee"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate invite error = %v, want conflict", err)
	}
	if err == nil || err.Error() != "Invitation already sent" {
		t.Errorf("duplicate invite message = %v", err)
	}
}

func TestJoin(t *testing.T) {
	f := newTeamFixture(t, 4)
	captain := f.users.addUser("cap@example.com", "captain")
	joiner := f.users.addUser("j@example.com", "joiner")
	team := f.createTeamAs(t, captain, "Gophers")

	resp, err := f.svc.Join(context.Background(), joiner.ID, &dto.JoinRequest{JoinCode: team.JoinCode})
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if resp.TeamID != team.ID || resp.UserID != joiner.ID {
		t.Errorf("join response = %+v", resp)
	}
}

func TestJoinGates(t *testing.T) {
	f := newTeamFixture(t, 1)
	captain := f.users.addUser("cap@example.com", "captain")
	joiner := f.users.addUser("j@example.com", "joiner")
	team := f.createTeamAs(t, captain, "Solo")

	_, err := f.svc.Join(context.Background(), joiner.ID, &dto.JoinRequest{})
	if err == nil || err.Error() != "Join code is required" {
		t.Errorf("missing code: %v", err)
	}

	_, err = f.svc.Join(context.Background(), joiner.ID, &dto.JoinRequest{JoinCode: "NOSUCH"})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("invalid code error = %v, want bad request", err)
	}
	if err == nil || err.Error() != "Invalid join code" {
		t.Errorf("invalid code message = %v", err)
	}

	_, err = f.svc.Join(context.Background(), captain.ID, &dto.JoinRequest{JoinCode: team.JoinCode})
	if err == nil || err.Error() != "You are already a team member" {
		t.Errorf("already member: %v", err)
	}

	// The captain fills the single slot, so any newcomer hits capacity.
	_, err = f.svc.Join(context.Background(), joiner.ID, &dto.JoinRequest{JoinCode: team.JoinCode})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("full team error = %v, want forbidden", err)
	}
	if err == nil || err.Error() != "Team is full" {
		t.Errorf("full team message = %v", err)
	}
}

func TestJoinConcurrentLastSlot(t *testing.T) {
	f := newTeamFixture(t, 2)
	captain := f.users.addUser("cap@example.com", "captain")
	team := f.createTeamAs(t, captain, "Duo")

	const racers = 20
	var winners, fullRejections atomic.Int32
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		racer := f.users.addUser(
			"racer"+string(rune('a'+i))+"@example.com",
			"racer"+string(rune('a'+i)),
		)
		go func(userID int64) {
			defer wg.Done()
			_, err := f.svc.Join(context.Background(), userID, &dto.JoinRequest{JoinCode: team.JoinCode})
			switch {
			case err == nil:
				winners.Add(1)
			case errors.Is(err, apperrors.ErrPermissionDenied):
				fullRejections.Add(1)
			default:
				t.Errorf("unexpected join error: %v", err)
			}
		}(racer.ID)
	}
	wg.Wait()

	if winners.Load() != 1 {
		t.Errorf("winners = %d, want exactly 1", winners.Load())
	}
	if fullRejections.Load() != racers-1 {
		t.Errorf("full rejections = %d, want %d", fullRejections.Load(), racers-1)
	}

	members, err := f.teams.GetTeamMembers(context.Background(), team.ID)
	if err != nil {
		t.Fatalf("GetTeamMembers: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("member count = %d, want 2", len(members))
	}
}
