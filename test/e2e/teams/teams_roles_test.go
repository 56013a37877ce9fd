package teams_test

import (
	"net/http"
	"testing"

	"github.com/huddlehq/huddle/pkg/teamsdk"
	"github.com/stretchr/testify/require"
)

// setupRoster creates a team owned by alice with bob as admin and carol as
// member, returning the team.
func setupRoster(t *testing.T, owner, admin, member *teamsdk.Client) teamsdk.Team {
	t.Helper()

	team, err := owner.CreateTeam(t.Context(), teamsdk.CreateTeamRequest{Name: "Roster"})
	require.NoError(t, err)

	inv, err := owner.Invite(t.Context(), team.ID, teamsdk.InviteRequest{Email: bob.Email, Role: "admin"})
	require.NoError(t, err)
	require.NoError(t, admin.AcceptInvitation(t.Context(), inv.ID))

	inv, err = owner.Invite(t.Context(), team.ID, teamsdk.InviteRequest{Email: carol.Email, Role: "member"})
	require.NoError(t, err)
	require.NoError(t, member.AcceptInvitation(t.Context(), inv.ID))

	return team
}

// TestInviteAuthorization verifies who may invite and with which role.
func TestInviteAuthorization(t *testing.T) {
	baseURL, signer, cleanup := setupTeamsContainer(t)
	defer cleanup()

	owner := clientFor(t, baseURL, signer, alice)
	admin := clientFor(t, baseURL, signer, bob)
	member := clientFor(t, baseURL, signer, carol)

	team := setupRoster(t, owner, admin, member)

	// Members cannot invite at all.
	_, err := member.Invite(t.Context(), team.ID, teamsdk.InviteRequest{Email: dave.Email, Role: "member"})
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)

	// Admins can invite members but cannot grant admin.
	_, err = admin.Invite(t.Context(), team.ID, teamsdk.InviteRequest{Email: dave.Email, Role: "admin"})
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)

	inv, err := admin.Invite(t.Context(), team.ID, teamsdk.InviteRequest{Email: dave.Email, Role: "member"})
	require.NoError(t, err)
	require.Equal(t, "member", inv.Role)

	t.Logf("Invite authorization matrix holds")
}

// TestUpdateMemberRole verifies role changes are owner-only and the owner
// role is immutable.
func TestUpdateMemberRole(t *testing.T) {
	baseURL, signer, cleanup := setupTeamsContainer(t)
	defer cleanup()

	owner := clientFor(t, baseURL, signer, alice)
	admin := clientFor(t, baseURL, signer, bob)
	member := clientFor(t, baseURL, signer, carol)

	team := setupRoster(t, owner, admin, member)

	members, err := owner.ListMembers(t.Context(), team.ID)
	require.NoError(t, err)
	ownerRow := findMemberByUserID(t, members, alice.ID)
	adminRow := findMemberByUserID(t, members, bob.ID)
	memberRow := findMemberByUserID(t, members, carol.ID)

	// Only the owner changes roles.
	_, err = admin.UpdateMemberRole(t.Context(), team.ID, memberRow.ID, "admin")
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)

	_, err = member.UpdateMemberRole(t.Context(), team.ID, adminRow.ID, "member")
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)

	// Promote carol to admin.
	updated, err := owner.UpdateMemberRole(t.Context(), team.ID, memberRow.ID, "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", updated.Role)

	// Demote bob to member.
	updated, err = owner.UpdateMemberRole(t.Context(), team.ID, adminRow.ID, "member")
	require.NoError(t, err)
	require.Equal(t, "member", updated.Role)

	// The owner role cannot be granted or taken.
	_, err = owner.UpdateMemberRole(t.Context(), team.ID, memberRow.ID, "owner")
	requireAPIError(t, err, http.StatusConflict, teamsdk.ErrorCodeConflict)

	_, err = owner.UpdateMemberRole(t.Context(), team.ID, ownerRow.ID, "member")
	requireAPIError(t, err, http.StatusConflict, teamsdk.ErrorCodeConflict)

	// Unknown role values are rejected outright.
	_, err = owner.UpdateMemberRole(t.Context(), team.ID, memberRow.ID, "superuser")
	requireAPIError(t, err, http.StatusBadRequest, teamsdk.ErrorCodeInvalidRequest)

	t.Logf("Role update matrix holds")
}

// TestRemoveMember verifies removal requires outranking the target.
func TestRemoveMember(t *testing.T) {
	baseURL, signer, cleanup := setupTeamsContainer(t)
	defer cleanup()

	owner := clientFor(t, baseURL, signer, alice)
	admin := clientFor(t, baseURL, signer, bob)
	member := clientFor(t, baseURL, signer, carol)

	team := setupRoster(t, owner, admin, member)

	members, err := owner.ListMembers(t.Context(), team.ID)
	require.NoError(t, err)
	ownerRow := findMemberByUserID(t, members, alice.ID)
	adminRow := findMemberByUserID(t, members, bob.ID)
	memberRow := findMemberByUserID(t, members, carol.ID)

	// Members remove nobody.
	err = member.RemoveMember(t.Context(), team.ID, adminRow.ID)
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)

	// Nobody removes the owner.
	err = admin.RemoveMember(t.Context(), team.ID, ownerRow.ID)
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)

	err = owner.RemoveMember(t.Context(), team.ID, ownerRow.ID)
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)

	// Admins remove members.
	require.NoError(t, admin.RemoveMember(t.Context(), team.ID, memberRow.ID))

	// Removing an already-removed member is a 404.
	err = admin.RemoveMember(t.Context(), team.ID, memberRow.ID)
	requireAPIError(t, err, http.StatusNotFound, teamsdk.ErrorCodeNotFound)

	// Owner removes admins.
	require.NoError(t, owner.RemoveMember(t.Context(), team.ID, adminRow.ID))

	members, err = owner.ListMembers(t.Context(), team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	// Removed users lose access.
	_, err = member.GetTeam(t.Context(), team.ID)
	requireAPIError(t, err, http.StatusNotFound, teamsdk.ErrorCodeNotFound)

	t.Logf("Removal matrix holds")
}

// TestTeamInvitationListVisibility verifies only admins and the owner can
// read a team's invitation list.
func TestTeamInvitationListVisibility(t *testing.T) {
	baseURL, signer, cleanup := setupTeamsContainer(t)
	defer cleanup()

	owner := clientFor(t, baseURL, signer, alice)
	admin := clientFor(t, baseURL, signer, bob)
	member := clientFor(t, baseURL, signer, carol)

	team := setupRoster(t, owner, admin, member)

	_, err := owner.ListTeamInvitations(t.Context(), team.ID)
	require.NoError(t, err)

	_, err = admin.ListTeamInvitations(t.Context(), team.ID)
	require.NoError(t, err)

	_, err = member.ListTeamInvitations(t.Context(), team.ID)
	requireAPIError(t, err, http.StatusForbidden, teamsdk.ErrorCodeForbidden)
}
