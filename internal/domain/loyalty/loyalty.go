// Package loyalty implements the punch-card program: one point per completed
// appointment, and the counter restarts once the reward threshold is reached.
package loyalty

import "github.com/BruksfildServices01/barbershop-manager/internal/models"

const RewardThreshold = 8

type Progress struct {
	Points    int  `json:"points"`
	Threshold int  `json:"threshold"`
	Remaining int  `json:"remaining"`
	Percent   int  `json:"percent"`
	Enabled   bool `json:"enabled"`
}

// Accrue devolve a nova pontuação e se o cliente ganhou a recompensa.
// Clientes fora do programa não pontuam.
func Accrue(points int, enabled bool) (int, bool) {
	if !enabled {
		return points, false
	}
	next := points + 1
	if next >= RewardThreshold {
		return 0, true
	}
	return next, false
}

// AccrueClient aplica Accrue diretamente no cliente.
func AccrueClient(c *models.Client) bool {
	points, rewarded := Accrue(c.LoyaltyPoints, c.LoyaltyEnabled)
	c.LoyaltyPoints = points
	return rewarded
}

func Reset(c *models.Client) {
	c.LoyaltyPoints = 0
}

func ProgressOf(c *models.Client) Progress {
	points := c.LoyaltyPoints
	if points < 0 {
		points = 0
	}
	remaining := RewardThreshold - points
	if remaining < 0 {
		remaining = 0
	}
	percent := points * 100 / RewardThreshold
	if percent > 100 {
		percent = 100
	}
	return Progress{
		Points:    points,
		Threshold: RewardThreshold,
		Remaining: remaining,
		Percent:   percent,
		Enabled:   c.LoyaltyEnabled,
	}
}
