package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/teams/domain"
)

// buildRoster creates a team with an owner, an admin, and a member, and
// returns the three users plus the team.
func buildRoster(t *testing.T, env *testEnv) (owner, admin, member domain.User, team domain.Team) {
	t.Helper()
	ctx := context.Background()

	owner = env.createUser(t, "Owner", "owner@example.com")
	admin = env.createUser(t, "Admin", "admin@example.com")
	member = env.createUser(t, "Member", "member@example.com")

	team, err := env.teams.CreateTeam(ctx, owner.ID, "Platform", "")
	require.NoError(t, err)

	for _, inv := range []struct {
		user domain.User
		role domain.Role
	}{
		{admin, domain.RoleAdmin},
		{member, domain.RoleMember},
	} {
		created, err := env.invitations.Invite(ctx, owner, team.ID, inv.user.Email, inv.role)
		require.NoError(t, err)
		_, err = env.invitations.Accept(ctx, inv.user, created.ID)
		require.NoError(t, err)
	}
	return owner, admin, member, team
}

func TestListMembersRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, member, team := buildRoster(t, env)
	outsider := env.createUser(t, "Outsider", "outsider@example.com")

	members, err := env.memberships.ListMembers(ctx, member.ID, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 3)
	require.Equal(t, domain.RoleOwner, members[0].Membership.Role)

	_, err = env.memberships.ListMembers(ctx, outsider.ID, team.ID)
	require.ErrorIs(t, err, ErrNotTeamMember)
}

func TestUpdateRoleOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner, admin, member, team := buildRoster(t, env)

	memberRow, err := env.store.Memberships().GetMembership(ctx, team.ID, member.ID)
	require.NoError(t, err)
	ownerRow, err := env.store.Memberships().GetMembership(ctx, team.ID, owner.ID)
	require.NoError(t, err)

	t.Run("admin cannot change roles", func(t *testing.T) {
		_, err := env.memberships.UpdateRole(ctx, admin.ID, team.ID, memberRow.ID, domain.RoleAdmin)
		require.ErrorIs(t, err, ErrInsufficientRole)
	})

	t.Run("owner promotes member to admin", func(t *testing.T) {
		updated, err := env.memberships.UpdateRole(ctx, owner.ID, team.ID, memberRow.ID, domain.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, updated.Role)
	})

	t.Run("owner membership is immutable", func(t *testing.T) {
		_, err := env.memberships.UpdateRole(ctx, owner.ID, team.ID, ownerRow.ID, domain.RoleMember)
		require.ErrorIs(t, err, ErrOwnerImmutable)
	})

	t.Run("membership from another team conflicts", func(t *testing.T) {
		otherTeam, err := env.teams.CreateTeam(ctx, owner.ID, "Other", "")
		require.NoError(t, err)
		otherRow, err := env.store.Memberships().GetMembership(ctx, otherTeam.ID, owner.ID)
		require.NoError(t, err)

		_, err = env.memberships.UpdateRole(ctx, owner.ID, team.ID, otherRow.ID, domain.RoleMember)
		require.ErrorIs(t, err, ErrMemberNotOnTeam)
	})
}

func TestRemoveMemberSeniorityRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner, admin, member, team := buildRoster(t, env)

	ownerRow, err := env.store.Memberships().GetMembership(ctx, team.ID, owner.ID)
	require.NoError(t, err)
	adminRow, err := env.store.Memberships().GetMembership(ctx, team.ID, admin.ID)
	require.NoError(t, err)
	memberRow, err := env.store.Memberships().GetMembership(ctx, team.ID, member.ID)
	require.NoError(t, err)

	t.Run("member cannot remove anyone", func(t *testing.T) {
		err := env.memberships.RemoveMember(ctx, member.ID, team.ID, adminRow.ID)
		require.ErrorIs(t, err, ErrInsufficientRole)
	})

	t.Run("admin cannot remove the owner", func(t *testing.T) {
		err := env.memberships.RemoveMember(ctx, admin.ID, team.ID, ownerRow.ID)
		require.ErrorIs(t, err, ErrInsufficientRole)
	})

	t.Run("admin cannot remove another admin", func(t *testing.T) {
		err := env.memberships.RemoveMember(ctx, admin.ID, team.ID, adminRow.ID)
		require.ErrorIs(t, err, ErrInsufficientRole)
	})

	t.Run("admin removes a plain member", func(t *testing.T) {
		require.NoError(t, env.memberships.RemoveMember(ctx, admin.ID, team.ID, memberRow.ID))
	})

	t.Run("owner removes an admin", func(t *testing.T) {
		require.NoError(t, env.memberships.RemoveMember(ctx, owner.ID, team.ID, adminRow.ID))
	})

	t.Run("owner membership is never removable", func(t *testing.T) {
		err := env.memberships.RemoveMember(ctx, owner.ID, team.ID, ownerRow.ID)
		require.ErrorIs(t, err, ErrInsufficientRole)
	})
}

func TestRemoveMemberLeavesInvitationsAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner, _, member, team := buildRoster(t, env)

	// A second team invites the same member; removing them from the first
	// team must not touch that pending invitation.
	second, err := env.teams.CreateTeam(ctx, owner.ID, "Second", "")
	require.NoError(t, err)
	pending, err := env.invitations.Invite(ctx, owner, second.ID, member.Email, domain.RoleMember)
	require.NoError(t, err)

	memberRow, err := env.store.Memberships().GetMembership(ctx, team.ID, member.ID)
	require.NoError(t, err)
	require.NoError(t, env.memberships.RemoveMember(ctx, owner.ID, team.ID, memberRow.ID))

	stored, err := env.store.Invitations().GetInvitationByID(ctx, pending.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, stored.Status)
}
