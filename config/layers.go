package config

import "github.com/yohamta/donburi/ecs"

// Default is the only ECS layer the headless host uses.
const Default ecs.LayerID = 0
