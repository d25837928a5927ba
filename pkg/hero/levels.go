package hero

type Level struct {
	Number int
	MinXP  int
}

// Levels is ordered by ascending MinXP.
var Levels = []Level{
	{Number: 1, MinXP: 0},
	{Number: 2, MinXP: 100},
	{Number: 3, MinXP: 250},
	{Number: 4, MinXP: 500},
	{Number: 5, MinXP: 850},
	{Number: 6, MinXP: 1300},
	{Number: 7, MinXP: 1900},
	{Number: 8, MinXP: 2650},
	{Number: 9, MinXP: 3500},
	{Number: 10, MinXP: 4500},
}

// LevelFor returns the highest level whose threshold xp has reached.
func LevelFor(xp int) int {
	level := 1
	for _, l := range Levels {
		if l.MinXP > xp {
			break
		}
		level = l.Number
	}
	return level
}
