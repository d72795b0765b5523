package watchapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/poundbot/gamewatch/types"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type registry interface {
	Add(ctx context.Context, kind types.ProtocolKind, address, guildID, channelID string) (types.MonitoredServer, error)
	Remove(ctx context.Context, guildID, address string) ([]types.MonitoredServer, error)
	List(guildID string) ([]types.MonitoredServer, error)
}

type addRequest struct {
	Kind      types.ProtocolKind `json:"kind"`
	Address   string             `json:"address"`
	GuildID   string             `json:"guild_id"`
	ChannelID string             `json:"channel_id"`
}

type servers struct {
	reg registry
}

func initServers(api *mux.Router, path string, reg registry) {
	s := servers{reg: reg}

	api.HandleFunc(path, s.list).Methods(http.MethodGet)
	api.HandleFunc(path, s.add).Methods(http.MethodPost)
	api.HandleFunc(path, s.remove).Methods(http.MethodDelete)
}

func (s servers) list(w http.ResponseWriter, r *http.Request) {
	guildID := r.URL.Query().Get("guild")
	if guildID == "" {
		handleError(w, r, types.RESTError{StatusCode: http.StatusBadRequest, Error: "guild is required"})
		return
	}

	list, err := s.reg.List(guildID)
	if err != nil {
		handleRegistryError(w, r, err)
		return
	}
	if list == nil {
		list = []types.MonitoredServer{}
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (s servers) add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logWithRequest(r).WithError(err).Info("Could not decode server")
		handleError(w, r, types.RESTError{StatusCode: http.StatusBadRequest, Error: "Could not decode server"})
		return
	}

	server, err := s.reg.Add(r.Context(), req.Kind, req.Address, req.GuildID, req.ChannelID)
	if err != nil {
		handleRegistryError(w, r, err)
		return
	}

	logWithRequest(r).WithFields(logrus.Fields{
		"kind":     server.Kind.String(),
		"endpoint": server.Endpoint.String(),
		"gID":      server.GuildID,
		"cID":      server.ChannelID,
	}).Info("Server added")
	writeJSON(w, r, http.StatusCreated, server)
}

func (s servers) remove(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	guildID, address := q.Get("guild"), q.Get("address")
	if guildID == "" || address == "" {
		handleError(w, r, types.RESTError{StatusCode: http.StatusBadRequest, Error: "guild and address are required"})
		return
	}

	removed, err := s.reg.Remove(r.Context(), guildID, address)
	if err != nil {
		handleRegistryError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, removed)
}
