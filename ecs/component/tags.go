package component

type TankTag struct{}

var TankTagComponent = NewComponent[TankTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type ShellTag struct{}

var ShellTagComponent = NewComponent[ShellTag]()

type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()
