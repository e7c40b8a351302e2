package services

// In-memory repository fakes. Each fake guards its maps with a mutex so the
// concurrency tests exercise the same exactly-one-winner guarantees the real
// repositories get from unique constraints and row locks.

import (
	"context"
	"fmt"
	"sync"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/repositories"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
	skills map[int64][]string
	teams  map[int64][]models.Team
	ideas  map[int64][]models.ProjectIdea
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[int64]*models.User{},
		skills: map[int64][]string{},
		teams:  map[int64][]models.Team{},
		ideas:  map[int64][]models.ProjectIdea{},
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, repositories.ErrEmailTaken
		}
		if u.Username == user.Username {
			return 0, repositories.ErrUsernameTaken
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetLatestSkills(_ context.Context, userID int64, limit uint64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	skills := f.skills[userID]
	if uint64(len(skills)) > limit {
		skills = skills[:limit]
	}
	return append([]string{}, skills...), nil
}

func (f *fakeUserRepo) GetUserTeams(_ context.Context, userID int64) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Team{}, f.teams[userID]...), nil
}

func (f *fakeUserRepo) GetUserIdeas(_ context.Context, userID int64) ([]models.ProjectIdea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProjectIdea{}, f.ideas[userID]...), nil
}

// addUser seeds a user directly, bypassing uniqueness checks.
func (f *fakeUserRepo) addUser(email, username string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := &models.User{ID: f.nextID, Email: email, Username: username, PasswordHash: "x"}
	f.users[u.ID] = u
	return u
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(user *models.User) (string, error) {
	return fmt.Sprintf("token-%d", user.ID), nil
}

type fakeHackathonRepo struct {
	mu         sync.Mutex
	nextID     int64
	hackathons map[int64]*models.Hackathon
}

func newFakeHackathonRepo() *fakeHackathonRepo {
	return &fakeHackathonRepo{hackathons: map[int64]*models.Hackathon{}}
}

func (f *fakeHackathonRepo) CreateHackathon(_ context.Context, h *models.Hackathon) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	h.ID = f.nextID
	stored := *h
	f.hackathons[h.ID] = &stored
	return h.ID, nil
}

func (f *fakeHackathonRepo) UpdateHackathon(_ context.Context, h *models.Hackathon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hackathons[h.ID]; !ok {
		return repositories.ErrHackathonNotFound
	}
	stored := *h
	f.hackathons[h.ID] = &stored
	return nil
}

func (f *fakeHackathonRepo) GetHackathonByID(_ context.Context, id int64) (*models.Hackathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hackathons[id]
	if !ok {
		return nil, repositories.ErrHackathonNotFound
	}
	copied := *h
	return &copied, nil
}

func (f *fakeHackathonRepo) ListHackathons(_ context.Context) ([]models.Hackathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Hackathon{}
	for _, h := range f.hackathons {
		out = append(out, *h)
	}
	return out, nil
}

type regKey struct{ userID, hackathonID int64 }

type fakeRegistrationRepo struct {
	mu     sync.Mutex
	nextID int64
	regs   map[regKey][]string
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: map[regKey][]string{}}
}

func (f *fakeRegistrationRepo) CreateRegistration(_ context.Context, r *models.Registration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := regKey{r.UserID, r.HackathonID}
	if _, ok := f.regs[key]; ok {
		return 0, repositories.ErrAlreadyRegistered
	}
	f.nextID++
	r.ID = f.nextID
	f.regs[key] = append([]string{}, r.Skills...)
	return r.ID, nil
}

func (f *fakeRegistrationRepo) IsRegistered(_ context.Context, userID, hackathonID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.regs[regKey{userID, hackathonID}]
	return ok, nil
}

func (f *fakeRegistrationRepo) RegisteredHackathonIDs(_ context.Context, userID int64) (map[int64]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := map[int64]bool{}
	for key := range f.regs {
		if key.userID == userID {
			ids[key.hackathonID] = true
		}
	}
	return ids, nil
}

func (f *fakeRegistrationRepo) register(userID, hackathonID int64, skills ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[regKey{userID, hackathonID}] = skills
}

type fakeTeamRepo struct {
	mu         sync.Mutex
	nextID     int64
	teams      map[int64]*models.Team
	members    map[int64]map[int64]bool
	hackathons *fakeHackathonRepo
}

func newFakeTeamRepo(hackathons *fakeHackathonRepo) *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:      map[int64]*models.Team{},
		members:    map[int64]map[int64]bool{},
		hackathons: hackathons,
	}
}

func (f *fakeTeamRepo) CreateTeam(_ context.Context, team *models.Team, creatorID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	team.ID = f.nextID
	team.JoinCode = fmt.Sprintf("CODE%02d", f.nextID)
	stored := *team
	f.teams[team.ID] = &stored
	f.members[team.ID] = map[int64]bool{creatorID: true}
	return team.ID, nil
}

func (f *fakeTeamRepo) GetTeamByID(_ context.Context, id int64) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeamRepo) GetTeamMembers(_ context.Context, teamID int64) ([]models.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.TeamMember{}
	for userID := range f.members[teamID] {
		out = append(out, models.TeamMember{TeamID: teamID, UserID: userID})
	}
	return out, nil
}

func (f *fakeTeamRepo) IsTeamMember(_ context.Context, teamID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[teamID][userID], nil
}

// tryAddMember enforces membership uniqueness and capacity under the lock,
// mirroring the row-locked transaction in the real repository. Callers must
// hold f.mu.
func (f *fakeTeamRepo) tryAddMember(teamID, userID int64) error {
	team, ok := f.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	if f.members[teamID][userID] {
		return repositories.ErrAlreadyMember
	}
	h, ok := f.hackathons.hackathons[team.HackathonID]
	if !ok {
		return repositories.ErrHackathonNotFound
	}
	if len(f.members[teamID]) >= h.TeamSizeLimit {
		return repositories.ErrTeamFull
	}
	f.members[teamID][userID] = true
	return nil
}

func (f *fakeTeamRepo) JoinByCode(_ context.Context, joinCode string, userID int64) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.teams {
		if t.JoinCode == joinCode {
			if err := f.tryAddMember(t.ID, userID); err != nil {
				return nil, err
			}
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

type endorseKey struct{ ideaID, userID int64 }

type fakeIdeaRepo struct {
	mu           sync.Mutex
	nextID       int64
	ideas        map[int64]*models.ProjectIdea
	teamNames    map[int64]string
	comments     map[int64][]models.Comment
	endorsements map[endorseKey]bool
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{
		ideas:        map[int64]*models.ProjectIdea{},
		teamNames:    map[int64]string{},
		comments:     map[int64][]models.Comment{},
		endorsements: map[endorseKey]bool{},
	}
}

func (f *fakeIdeaRepo) CreateIdea(_ context.Context, idea *models.ProjectIdea) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	idea.ID = f.nextID
	stored := *idea
	f.ideas[idea.ID] = &stored
	return idea.ID, nil
}

func (f *fakeIdeaRepo) countEndorsements(ideaID int64) int {
	count := 0
	for key := range f.endorsements {
		if key.ideaID == ideaID {
			count++
		}
	}
	return count
}

func (f *fakeIdeaRepo) listing(idea *models.ProjectIdea, requesterID int64) repositories.IdeaListing {
	return repositories.IdeaListing{
		ProjectIdea:      *idea,
		TeamName:         f.teamNames[idea.TeamID],
		EndorsementCount: f.countEndorsements(idea.ID),
		UserHasEndorsed:  f.endorsements[endorseKey{idea.ID, requesterID}],
	}
}

func (f *fakeIdeaRepo) ListIdeas(_ context.Context, requesterID int64) ([]repositories.IdeaListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []repositories.IdeaListing{}
	for _, idea := range f.ideas {
		out = append(out, f.listing(idea, requesterID))
	}
	return out, nil
}

func (f *fakeIdeaRepo) GetIdeaByID(_ context.Context, id, requesterID int64) (*repositories.IdeaListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idea, ok := f.ideas[id]
	if !ok {
		return nil, repositories.ErrIdeaNotFound
	}
	l := f.listing(idea, requesterID)
	return &l, nil
}

func (f *fakeIdeaRepo) CreateComment(_ context.Context, comment *models.Comment) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.IdeaID] = append(f.comments[comment.IdeaID], *comment)
	return comment.ID, nil
}

func (f *fakeIdeaRepo) ListComments(_ context.Context, ideaID int64) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Comment{}, f.comments[ideaID]...), nil
}

func (f *fakeIdeaRepo) Endorse(_ context.Context, ideaID, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := endorseKey{ideaID, userID}
	if f.endorsements[key] {
		return 0, repositories.ErrAlreadyEndorsed
	}
	f.endorsements[key] = true
	return f.countEndorsements(ideaID), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        int64
	notifications map[int64]*models.Notification
	teams         *fakeTeamRepo
	registrations *fakeRegistrationRepo
}

func newFakeNotificationRepo(teams *fakeTeamRepo, registrations *fakeRegistrationRepo) *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: map[int64]*models.Notification{},
		teams:         teams,
		registrations: registrations,
	}
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n.ID = f.nextID
	n.Status = models.NotificationPending
	stored := *n
	f.notifications[n.ID] = &stored
	return n.ID, nil
}

func (f *fakeNotificationRepo) HasPendingInvite(_ context.Context, userID, teamID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID && n.TeamID == teamID &&
			n.Type == models.NotificationTeamInvite && n.Status == models.NotificationPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) GetNotificationByID(_ context.Context, id int64) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNotificationRepo) ListNotifications(_ context.Context, userID int64) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Notification{}
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) setStatusIfPending(id int64, status models.NotificationStatus) error {
	n, ok := f.notifications[id]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	if n.Status != models.NotificationPending {
		return repositories.ErrAlreadyResponded
	}
	n.Status = status
	return nil
}

func (f *fakeNotificationRepo) Decline(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setStatusIfPending(id, models.NotificationDeclined)
}

func (f *fakeNotificationRepo) AcceptStatusOnly(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setStatusIfPending(id, models.NotificationAccepted)
}

func (f *fakeNotificationRepo) AcceptTeamInvite(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams.mu.Lock()
	defer f.teams.mu.Unlock()

	stored, ok := f.notifications[n.ID]
	if !ok {
		return repositories.ErrNotificationNotFound
	}
	if stored.Status != models.NotificationPending {
		return repositories.ErrAlreadyResponded
	}

	err := f.teams.tryAddMember(n.TeamID, n.UserID)
	if err != nil {
		if err == repositories.ErrTeamFull {
			stored.Status = models.NotificationDeclined
		}
		return err
	}

	team := f.teams.teams[n.TeamID]
	if registered, _ := f.registrations.IsRegistered(context.Background(), n.UserID, team.HackathonID); !registered {
		f.registrations.register(n.UserID, team.HackathonID, "Team Member")
	}

	stored.Status = models.NotificationAccepted
	return nil
}

type noopEmail struct{}

func (noopEmail) SendTeamInviteEmail(toEmail, inviterName, teamName string) error { return nil }
