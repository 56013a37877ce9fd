package http

import (
	"time"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/pkg/teamsdk"
)

// View conversions from domain records to the wire types shared with the
// client SDK. Timestamps travel as RFC3339 UTC.

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toTeam(t domain.Team, role domain.Role) teamsdk.Team {
	return teamsdk.Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		Role:        string(role),
		CreatedAt:   timestamp(t.CreatedAt),
		UpdatedAt:   timestamp(t.UpdatedAt),
	}
}

func toMember(m service.MemberInfo) teamsdk.Member {
	return teamsdk.Member{
		ID:        m.Membership.ID,
		UserID:    m.User.ID,
		Role:      string(m.Membership.Role),
		UserName:  m.User.Name,
		UserEmail: m.User.Email,
	}
}

func toInvitation(inv domain.Invitation) teamsdk.Invitation {
	return teamsdk.Invitation{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      string(inv.Role),
		Status:    string(inv.Status),
		CreatedAt: timestamp(inv.CreatedAt),
	}
}

func toUserInvitation(info service.UserInvitationInfo) teamsdk.UserInvitation {
	return teamsdk.UserInvitation{
		ID: info.Invitation.ID,
		Team: teamsdk.TeamRef{
			ID:   info.Team.ID,
			Name: info.Team.Name,
		},
		Role: string(info.Invitation.Role),
		InvitedBy: teamsdk.UserRef{
			Name:  info.InvitedBy.Name,
			Email: info.InvitedBy.Email,
		},
		CreatedAt: timestamp(info.Invitation.CreatedAt),
	}
}
