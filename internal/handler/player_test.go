package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/event"
	"github.com/novatale/armory/internal/inventory"
	"github.com/novatale/armory/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayerService(t *testing.T) (player.Service, *inventory.FakeRepository) {
	t.Helper()
	repo := inventory.NewFakeRepository()
	return player.NewService(repo, testCatalog(), event.NewMemoryBus()), repo
}

func TestHandleRegisterPlayer(t *testing.T) {
	svc, repo := newPlayerService(t)

	rec := postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: "alice"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.Stored("alice"))

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.PlayerID)
	assert.Equal(t, domain.StartingGold, profile.Gold)
}

func TestHandleRegisterPlayer_Duplicate(t *testing.T) {
	svc, _ := newPlayerService(t)

	first := postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: "alice"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: "alice"})
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestHandleRegisterPlayer_MissingID(t *testing.T) {
	svc, _ := newPlayerService(t)

	rec := postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLogin_UnknownPlayer(t *testing.T) {
	svc, _ := newPlayerService(t)

	rec := postJSON(t, HandleLogin(svc), "/player/login", PlayerRequest{PlayerID: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleLogoutAndDelete(t *testing.T) {
	svc, repo := newPlayerService(t)

	require.Equal(t, http.StatusCreated,
		postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: "alice"}).Code)

	assert.Equal(t, http.StatusOK,
		postJSON(t, HandleLogout(svc), "/player/logout", PlayerRequest{PlayerID: "alice"}).Code)

	assert.Equal(t, http.StatusOK,
		postJSON(t, HandleDeletePlayer(svc), "/player/delete", PlayerRequest{PlayerID: "alice"}).Code)
	assert.Nil(t, repo.Stored("alice"))
}

func TestHandleListPlayers(t *testing.T) {
	svc, _ := newPlayerService(t)

	for _, id := range []string{"bob", "alice"} {
		require.Equal(t, http.StatusCreated,
			postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: id}).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	rec := httptest.NewRecorder()
	HandleListPlayers(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp PlayersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"alice", "bob"}, resp.Players)
}

func TestHandleGetStats(t *testing.T) {
	svc, repo := newPlayerService(t)

	repo.Seed(&domain.Profile{
		PlayerID:   "alice",
		Level:      1,
		BaseAttack: 10, BaseDefense: 5, BaseHealth: 100, BaseSpeed: 10,
		Equipped: []int{1, 8},
	})

	req := httptest.NewRequest(http.MethodGet, "/player/stats?player_id=alice", nil)
	rec := httptest.NewRecorder()
	HandleGetStats(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// weapon 10 + accessory 50/2
	assert.Equal(t, 35, resp.BonusAttack)
	assert.Equal(t, 45, resp.TotalAttack)
	assert.Equal(t, 25, resp.BonusDefense)
	assert.Equal(t, 30, resp.TotalDefense)
}

func TestHandleAddExperience(t *testing.T) {
	svc, _ := newPlayerService(t)

	require.Equal(t, http.StatusCreated,
		postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: "alice"}).Code)

	rec := postJSON(t, HandleAddExperience(svc), "/player/experience", AmountRequest{PlayerID: "alice", Amount: 150})
	assert.Equal(t, http.StatusOK, rec.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, 2, profile.Level)
	assert.Equal(t, 50, profile.CurrentExperience)
}

func TestHandleAddExperience_InvalidAmount(t *testing.T) {
	svc, _ := newPlayerService(t)

	rec := postJSON(t, HandleAddExperience(svc), "/player/experience", AmountRequest{PlayerID: "alice", Amount: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSpendGold_InsufficientFunds(t *testing.T) {
	svc, _ := newPlayerService(t)

	require.Equal(t, http.StatusCreated,
		postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: "alice"}).Code)

	rec := postJSON(t, HandleSpendGold(svc), "/player/gold/spend", AmountRequest{PlayerID: "alice", Amount: domain.StartingGold + 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgNotEnoughGoldError, resp.Error)
}

func TestHandleAddGold(t *testing.T) {
	svc, _ := newPlayerService(t)

	require.Equal(t, http.StatusCreated,
		postJSON(t, HandleRegisterPlayer(svc), "/player/register", PlayerRequest{PlayerID: "alice"}).Code)

	rec := postJSON(t, HandleAddGold(svc), "/player/gold/add", AmountRequest{PlayerID: "alice", Amount: 500})
	assert.Equal(t, http.StatusOK, rec.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, domain.StartingGold+500, profile.Gold)
}
