package permissions

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one chi route pattern. An endpoint
// with no roles is open to any authenticated caller; Skip also drops authentication.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func key(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		r.index[key(endpoint.Path, endpoint.Method)] = endpoint
	}
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index != nil {
		return r.index[key(path, method)]
	}

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

var knownMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// Get decodes the embedded permissions. Entries with an unknown method or a
// duplicate route are dropped and logged.
func Get() *PermissionData {
	var decoded PermissionData

	err := json.Unmarshal(permissionsData, &decoded)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	permissions := PermissionData{Skip: decoded.Skip}
	seen := map[string]bool{}

	for _, endpoint := range decoded.Endpoints {
		k := key(endpoint.Path, endpoint.Method)

		if !slices.Contains(knownMethods, strings.ToUpper(endpoint.Method)) || seen[k] {
			log.Warn().Str("path", endpoint.Path).Str("method", endpoint.Method).Msg("Ignoring invalid permission entry")

			continue
		}

		seen[k] = true

		permissions.Endpoints = append(permissions.Endpoints, endpoint)
	}

	permissions.buildIndex()

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
