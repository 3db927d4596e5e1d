package discord

import (
	"context"
	"errors"
	"fmt"
)

var ErrRoleNotFound = errors.New("role not found in guild")

// RoleGranter 以 Discord 角色实现能力授予
type RoleGranter struct {
	Client *Client
}

func NewRoleGranter(client *Client) *RoleGranter {
	return &RoleGranter{Client: client}
}

// GrantCapability 按名称精确匹配角色，并与成员现有角色取并集后写回
func (g *RoleGranter) GrantCapability(ctx context.Context, guildID, userID, roleName string) error {
	guild, err := g.Client.GetGuild(ctx, guildID)
	if err != nil {
		return fmt.Errorf("fetch guild: %w", err)
	}

	roleID := ""
	for _, r := range guild.Roles {
		if r.Name == roleName {
			roleID = r.ID
			break
		}
	}
	if roleID == "" {
		return fmt.Errorf("%w: %q", ErrRoleNotFound, roleName)
	}

	member, err := g.Client.GetMember(ctx, guildID, userID)
	if err != nil {
		return fmt.Errorf("fetch member: %w", err)
	}

	if err := g.Client.SetMemberRoles(ctx, guildID, userID, unionRoles(member.Roles, roleID)); err != nil {
		return fmt.Errorf("modify member: %w", err)
	}
	return nil
}

func unionRoles(current []string, roleID string) []string {
	roles := make([]string, 0, len(current)+1)
	seen := make(map[string]struct{}, len(current)+1)
	add := func(r string) {
		if _, ok := seen[r]; ok {
			return
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}
	for _, r := range current {
		add(r)
	}
	add(roleID)
	return roles
}
