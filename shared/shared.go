package shared

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"renthubber/shared/cache"
	"renthubber/shared/constant"
	"renthubber/shared/dto"
)

// CalculateTotalPage returns the number of pages needed for total rows. An
// empty result still has one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByFields builds an AND group of equality filters, ordered by field name.
func FilterByFields(table string, fields map[string]any) dto.FilterGroup {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	for _, name := range slices.Sorted(maps.Keys(fields)) {
		group.Filters = append(group.Filters, dto.Filter{
			Field:    name,
			Value:    fields[name],
			Operator: dto.FilterOperatorEq,
			Table:    table,
		})
	}

	return group
}

// BuildCacheKey joins the prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery derives a list cache key from paging params and the scoping parts.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, parts ...string) string {
	query := fmt.Sprintf("page=%d&limit=%d&sort_by=%s&sort_dir=%s", params.Page, params.Limit, params.SortBy, params.SortDir)

	return BuildCacheKey(prefix, append(parts, query)...)
}

// InvalidateCaches clears every key under each prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}

// Actor returns the authenticated user id and role carried by ctx.
func Actor(ctx context.Context) (userID, role string) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, role
}

// SystemContext marks work started by the platform itself, such as the worker.
func SystemContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func IsAdmin(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleSuperAdmin
}
