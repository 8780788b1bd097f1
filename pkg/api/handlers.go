package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ncaufield/devportal/pkg/core/model"
	"github.com/ncaufield/devportal/pkg/core/services"
	"github.com/ncaufield/devportal/pkg/db"
)

// Server holds the dependencies shared by the portal's HTTP handlers
type Server struct {
	store    db.Store
	cache    services.StatusCache // nil when redis is not configured
	fetcher  services.HealthFetcher
	hub      *Hub
	tokens   *TokenService
	logger   *zap.Logger
	years    []int
	validate *validator.Validate
}

func NewServer(store db.Store, statusCache services.StatusCache, fetcher services.HealthFetcher, hub *Hub, tokens *TokenService, logger *zap.Logger, years []int) *Server {
	return &Server{
		store:    store,
		cache:    statusCache,
		fetcher:  fetcher,
		hub:      hub,
		tokens:   tokens,
		logger:   logger,
		years:    years,
		validate: validator.New(),
	}
}

// LoginHandler issues a token for a known roster member
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"memberId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "memberId is required")
		return
	}

	members, err := s.store.ListMembers(r.Context())
	if err != nil {
		s.logger.Error("Failed to list members", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to load roster")
		return
	}

	for _, m := range members {
		if m.ID == req.MemberID {
			token, err := s.tokens.GenerateToken(m.ID, m.FullName)
			if err != nil {
				s.logger.Error("Failed to issue token", zap.Error(err))
				RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
				return
			}
			RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
			return
		}
	}

	RespondWithError(w, http.StatusUnauthorized, "unknown member")
}

// ListMembersHandler returns the roster
func (s *Server) ListMembersHandler(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.ListMembers(r.Context())
	if err != nil {
		s.logger.Error("Failed to list members", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to load roster")
		return
	}
	RespondWithJSON(w, http.StatusOK, members)
}

// CreateMemberHandler adds a roster member
func (s *Server) CreateMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName" validate:"required"`
		Role     string `json:"role"`
		Avatar   string `json:"avatar" validate:"omitempty,url"`
		Team     string `json:"team"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid member: %v", err))
		return
	}

	member := model.Member{
		ID:       uuid.NewString(),
		FullName: req.FullName,
		Role:     req.Role,
		Avatar:   req.Avatar,
		Team:     req.Team,
	}
	if err := s.store.InsertMember(r.Context(), &member); err != nil {
		s.logger.Error("Failed to insert member", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to store member")
		return
	}

	s.logger.Info("Member created", zap.String("member_id", member.ID))
	RespondWithJSON(w, http.StatusCreated, member)
}

// DeleteMemberHandler removes a roster member
func (s *Server) DeleteMemberHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteMember(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete member", zap.String("member_id", id), zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to delete member")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetScheduleHandler returns the stored list for a track and year
func (s *Server) GetScheduleHandler(w http.ResponseWriter, r *http.Request) {
	track, year, ok := s.trackAndYear(w, r)
	if !ok {
		return
	}

	switch track {
	case model.TrackOnDuty:
		shifts, err := s.store.GetOnDutyShifts(r.Context(), year)
		if err != nil {
			s.logger.Error("Failed to load schedule", zap.Error(err))
			RespondWithError(w, http.StatusInternalServerError, "failed to load schedule")
			return
		}
		RespondWithJSON(w, http.StatusOK, shifts)
	case model.TrackOnCall:
		shifts, err := s.store.GetOnCallShifts(r.Context(), year)
		if err != nil {
			s.logger.Error("Failed to load schedule", zap.Error(err))
			RespondWithError(w, http.StatusInternalServerError, "failed to load schedule")
			return
		}
		RespondWithJSON(w, http.StatusOK, shifts)
	}
}

// PutScheduleHandler replaces the stored list for a track and year
func (s *Server) PutScheduleHandler(w http.ResponseWriter, r *http.Request) {
	track, year, ok := s.trackAndYear(w, r)
	if !ok {
		return
	}

	switch track {
	case model.TrackOnDuty:
		var shifts []model.OnDutyShift
		if err := json.NewDecoder(r.Body).Decode(&shifts); err != nil {
			RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.store.ReplaceOnDutyShifts(r.Context(), year, shifts); err != nil {
			s.logger.Error("Failed to save schedule", zap.Error(err))
			RespondWithError(w, http.StatusInternalServerError, "failed to save schedule")
			return
		}
	case model.TrackOnCall:
		var shifts []model.OnCallShift
		if err := json.NewDecoder(r.Body).Decode(&shifts); err != nil {
			RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.store.ReplaceOnCallShifts(r.Context(), year, shifts); err != nil {
			s.logger.Error("Failed to save schedule", zap.Error(err))
			RespondWithError(w, http.StatusInternalServerError, "failed to save schedule")
			return
		}
	}

	s.hub.BroadcastScheduleSaved(string(track), year)
	w.WriteHeader(http.StatusNoContent)
}

// ImportScheduleHandler replaces the stored list from an uploaded workbook
func (s *Server) ImportScheduleHandler(w http.ResponseWriter, r *http.Request) {
	track, year, ok := s.trackAndYear(w, r)
	if !ok {
		return
	}

	count, err := services.ImportSchedule(r.Context(), s.store, s.logger, track, year, r.Body)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("import failed: %v", err))
		return
	}

	s.hub.BroadcastScheduleSaved(string(track), year)
	RespondWithJSON(w, http.StatusOK, map[string]int{"imported": count})
}

// ExportScheduleHandler streams the stored list as a workbook download
func (s *Server) ExportScheduleHandler(w http.ResponseWriter, r *http.Request) {
	track, year, ok := s.trackAndYear(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%d.xlsx", track, year))
	if err := services.ExportSchedule(r.Context(), s.store, s.store, s.logger, track, year, w); err != nil {
		s.logger.Error("Failed to export schedule", zap.Error(err))
	}
}

// ListQuickLinksHandler returns all pinned links
func (s *Server) ListQuickLinksHandler(w http.ResponseWriter, r *http.Request) {
	links, err := s.store.ListQuickLinks(r.Context())
	if err != nil {
		s.logger.Error("Failed to list quick links", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to load quick links")
		return
	}
	RespondWithJSON(w, http.StatusOK, links)
}

// CreateQuickLinkHandler pins a new link for the authenticated member
func (s *Server) CreateQuickLinkHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title" validate:"required"`
		URL   string `json:"url" validate:"required,url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "title and a valid url are required")
		return
	}

	owner, _ := MemberIDFromContext(r.Context())
	link := model.QuickLink{
		ID:    uuid.NewString(),
		Title: req.Title,
		URL:   req.URL,
		Owner: owner,
	}
	if err := s.store.InsertQuickLink(r.Context(), &link); err != nil {
		s.logger.Error("Failed to insert quick link", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to store quick link")
		return
	}
	RespondWithJSON(w, http.StatusCreated, link)
}

// DeleteQuickLinkHandler removes a pinned link
func (s *Server) DeleteQuickLinkHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteQuickLink(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete quick link", zap.String("link_id", id), zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to delete quick link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPluginsHandler returns the plugin registry
func (s *Server) ListPluginsHandler(w http.ResponseWriter, r *http.Request) {
	plugins, err := s.store.ListPlugins(r.Context())
	if err != nil {
		s.logger.Error("Failed to list plugins", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to load plugins")
		return
	}
	RespondWithJSON(w, http.StatusOK, plugins)
}

// SetPluginEnabledHandler toggles a plugin on or off
func (s *Server) SetPluginEnabledHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.SetPluginEnabled(r.Context(), id, req.Enabled); err != nil {
		s.logger.Error("Failed to toggle plugin", zap.String("plugin_id", id), zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to update plugin")
		return
	}

	s.logger.Info("Plugin toggled", zap.String("plugin_id", id), zap.Bool("enabled", req.Enabled))
	w.WriteHeader(http.StatusNoContent)
}

// ListSettingsHandler returns every portal setting
func (s *Server) ListSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.ListSettings(r.Context())
	if err != nil {
		s.logger.Error("Failed to list settings", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	RespondWithJSON(w, http.StatusOK, settings)
}

// PutSettingHandler creates or updates one setting
func (s *Server) PutSettingHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.store.PutSetting(r.Context(), key, req.Value); err != nil {
		s.logger.Error("Failed to store setting", zap.String("key", key), zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "failed to store setting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ComponentHealthHandler returns the flattened health rows for a component
func (s *Server) ComponentHealthHandler(w http.ResponseWriter, r *http.Request) {
	component := chi.URLParam(r, "component")
	landscape := r.URL.Query().Get("landscape")
	if landscape == "" {
		RespondWithError(w, http.StatusBadRequest, "landscape query parameter is required")
		return
	}

	rows, err := services.ComponentHealth(r.Context(), s.fetcher, s.cache, s.logger, component, landscape)
	if err != nil {
		s.logger.Error("Failed to fetch component health",
			zap.String("component", component),
			zap.String("landscape", landscape),
			zap.Error(err))
		RespondWithError(w, http.StatusBadGateway, "failed to fetch component health")
		return
	}
	RespondWithJSON(w, http.StatusOK, rows)
}

// trackAndYear pulls the track URL param and year query param, writing
// the error response itself when either is invalid
func (s *Server) trackAndYear(w http.ResponseWriter, r *http.Request) (model.Track, int, bool) {
	track := model.Track(chi.URLParam(r, "track"))
	if !track.IsValid() {
		RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("unknown track: %s", track))
		return "", 0, false
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "year query parameter is required")
		return "", 0, false
	}
	for _, y := range s.years {
		if y == year {
			return track, year, true
		}
	}
	RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("year %d is not selectable", year))
	return "", 0, false
}
