package tags

import "github.com/yohamta/donburi"

var (
	Bot      = donburi.NewTag().SetName("Bot")
	Obstacle = donburi.NewTag().SetName("Obstacle")
)

// Resolv tags for footprint collision
const (
	ResolvSolid = "solid"
	ResolvBot   = "bot"
)
