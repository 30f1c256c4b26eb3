package roster

import "github.com/nurd-os/team-sorter/internal/models"

// divideTeams partitions the given players into teamCount contiguous
// blocks of perTeam players each, numbered 1..teamCount. Players beyond
// teamCount*perTeam are not assigned. The caller guarantees
// teamCount*perTeam <= len(players), so every team comes out full.
// Given the same slice the result is always identical.
func divideTeams(players []*models.Player, teamCount, perTeam int) []*models.Team {
	teams := make([]*models.Team, 0, teamCount)

	for i := 0; i < teamCount; i++ {
		start := i * perTeam
		members := make([]*models.Player, perTeam)
		copy(members, players[start:start+perTeam])

		teams = append(teams, &models.Team{
			Number:  i + 1,
			Players: members,
		})
	}

	return teams
}
