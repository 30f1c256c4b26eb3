package roster

import (
	"fmt"
	"testing"

	"github.com/nurd-os/team-sorter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePlayers(n int) []*models.Player {
	players := make([]*models.Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, &models.Player{
			ID:        fmt.Sprintf("player-%d", i),
			FirstName: fmt.Sprintf("Player %d", i),
		})
	}
	return players
}

func TestDivideTeamsCompleteness(t *testing.T) {
	tests := []struct {
		name      string
		players   int
		teamCount int
		perTeam   int
	}{
		{name: "exact fit", players: 12, teamCount: 2, perTeam: 6},
		{name: "leftovers benched", players: 14, teamCount: 2, perTeam: 6},
		{name: "three teams", players: 18, teamCount: 3, perTeam: 5},
		{name: "one team", players: 5, teamCount: 1, perTeam: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := makePlayers(tt.players)
			teams := divideTeams(players, tt.teamCount, tt.perTeam)

			require.Len(t, teams, tt.teamCount)

			seen := make(map[string]bool)
			for i, team := range teams {
				assert.Equal(t, i+1, team.Number)
				require.Len(t, team.Players, tt.perTeam)
				for _, p := range team.Players {
					assert.False(t, seen[p.ID], "player %s assigned twice", p.ID)
					seen[p.ID] = true
				}
			}

			// Exactly teamCount*perTeam players assigned, all from the input
			assert.Len(t, seen, tt.teamCount*tt.perTeam)
			for id := range seen {
				found := false
				for _, p := range players {
					if p.ID == id {
						found = true
						break
					}
				}
				assert.True(t, found, "assigned player %s not in input", id)
			}
		})
	}
}

func TestDivideTeamsDeterminism(t *testing.T) {
	players := makePlayers(17)

	first := divideTeams(players, 3, 5)
	second := divideTeams(players, 3, 5)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Number, second[i].Number)
		require.Len(t, second[i].Players, len(first[i].Players))
		for j := range first[i].Players {
			assert.Equal(t, first[i].Players[j].ID, second[i].Players[j].ID)
		}
	}
}

func TestDivideTeamsPreservesOrder(t *testing.T) {
	players := makePlayers(6)
	teams := divideTeams(players, 2, 3)

	// Contiguous blocks in join order
	assert.Equal(t, "player-1", teams[0].Players[0].ID)
	assert.Equal(t, "player-2", teams[0].Players[1].ID)
	assert.Equal(t, "player-3", teams[0].Players[2].ID)
	assert.Equal(t, "player-4", teams[1].Players[0].ID)
	assert.Equal(t, "player-5", teams[1].Players[1].ID)
	assert.Equal(t, "player-6", teams[1].Players[2].ID)
}
